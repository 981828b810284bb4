package listing

import (
	"fmt"
	"strconv"
	"strings"
)

type SortOrder string

const (
	SortNewest       SortOrder = "newest"
	SortPriceLow     SortOrder = "price-low"
	SortPriceHigh    SortOrder = "price-high"
	SortSizeLarge    SortOrder = "size-large"
	SortPopular      SortOrder = "popular"
	SortHandoverSoon SortOrder = "handover-soon"
)

var sortOrders = map[SortOrder]bool{
	SortNewest:       true,
	SortPriceLow:     true,
	SortPriceHigh:    true,
	SortSizeLarge:    true,
	SortPopular:      true,
	SortHandoverSoon: true,
}

// Query is the active filter state of one listing browser. The zero value
// matches every listing.
type Query struct {
	Search       string
	PriceBucket  string
	PropertyType string
	Bedrooms     *int
	Furnished    string
	Developer    string
	Sort         SortOrder
}

// Beds returns a pointer for Query.Bedrooms.
func Beds(n int) *int {
	return &n
}

// ParseBedrooms turns a UI selection into a Query.Bedrooms value.
// The empty string means "any".
func ParseBedrooms(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid bedroom count %q", s)
	}
	return &n, nil
}

// Validate checks the bucket and sort names against the kind's tables.
func (q Query) Validate(buckets BucketSet) error {
	if q.PriceBucket != "" {
		if _, ok := buckets.Lookup(q.PriceBucket); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBucket, q.PriceBucket)
		}
	}
	if q.Sort != "" && !sortOrders[q.Sort] {
		return fmt.Errorf("%w: %q", ErrUnknownSort, q.Sort)
	}
	return nil
}

// Equal reports whether two queries select the same listings in the same order.
func (q Query) Equal(o Query) bool {
	if q.Search != o.Search || q.PriceBucket != o.PriceBucket || q.PropertyType != o.PropertyType ||
		q.Furnished != o.Furnished || q.Developer != o.Developer || q.Sort != o.Sort {
		return false
	}
	if (q.Bedrooms == nil) != (o.Bedrooms == nil) {
		return false
	}
	return q.Bedrooms == nil || *q.Bedrooms == *o.Bedrooms
}

// String is used in log lines.
func (q Query) String() string {
	var parts []string
	if q.Search != "" {
		parts = append(parts, "search="+q.Search)
	}
	if q.PriceBucket != "" {
		parts = append(parts, "price="+q.PriceBucket)
	}
	if q.PropertyType != "" {
		parts = append(parts, "type="+q.PropertyType)
	}
	if q.Bedrooms != nil {
		parts = append(parts, "beds="+strconv.Itoa(*q.Bedrooms))
	}
	if q.Furnished != "" {
		parts = append(parts, "furnished="+q.Furnished)
	}
	if q.Developer != "" {
		parts = append(parts, "developer="+q.Developer)
	}
	if q.Sort != "" {
		parts = append(parts, "sort="+string(q.Sort))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}
