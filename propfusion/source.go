package propfusion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"asp_listings/config"
	"asp_listings/listing"
)

// Source fetches pages of one listing kind. T is the JSON shape of the items
// under the kind's items key.
type Source[T listing.Listing] struct {
	kind    *config.KindConfig
	client  *Client
	limiter *rate.Limiter
}

func NewSource[T listing.Listing](client *Client, kind *config.KindConfig) *Source[T] {
	s := &Source[T]{kind: kind, client: client}
	if kind.RateLimitMS > 0 {
		s.limiter = rate.NewLimiter(rate.Every(time.Duration(kind.RateLimitMS)*time.Millisecond), 1)
	}
	return s
}

func (s *Source[T]) Kind() *config.KindConfig {
	return s.kind
}

// PageURL builds the request URL for one page of q. The price bucket,
// furnished status and developer are never sent; they are applied locally.
func (s *Source[T]) PageURL(q listing.Query, pageNumber, pageSize int) (string, error) {
	u, err := url.Parse(s.kind.Endpoint)
	if err != nil {
		return "", fmt.Errorf("endpoint %q: %w", s.kind.Endpoint, err)
	}

	params := u.Query()
	params.Set("size", strconv.Itoa(pageSize))
	switch s.kind.Paging {
	case config.PagingPage:
		params.Set("page", strconv.Itoa(pageNumber))
	default:
		params.Set("offset", strconv.Itoa((pageNumber-1)*pageSize))
	}
	if s.kind.Status != "" {
		params.Set("status", s.kind.Status)
	}
	if s.kind.ListingType != "" {
		params.Set("listing_type", s.kind.ListingType)
	}

	if q.PropertyType != "" && s.kind.SendsParam("property_type") {
		params.Set("property_type", q.PropertyType)
	}
	if q.Bedrooms != nil && s.kind.SendsParam("bedrooms") {
		params.Set("bedrooms", strconv.Itoa(*q.Bedrooms))
	}
	if q.Search != "" && s.kind.SendsParam("search") {
		params.Set("search", q.Search)
	}

	u.RawQuery = params.Encode()
	return u.String(), nil
}

func (s *Source[T]) FetchPage(ctx context.Context, q listing.Query, pageNumber, pageSize int) (listing.Page[T], error) {
	pageURL, err := s.PageURL(q, pageNumber, pageSize)
	if err != nil {
		return listing.Page[T]{}, err
	}

	body, err := s.client.get(ctx, pageURL, s.limiter)
	if err != nil {
		return listing.Page[T]{}, s.fetchError(pageNumber, err)
	}

	items, total, ok, err := decodeEnvelope[T](body, s.kind.ItemsKey, s.kind.TotalKey)
	if err != nil {
		return listing.Page[T]{}, s.fetchError(pageNumber, fmt.Errorf("decode page %d: %w", pageNumber, err))
	}
	if !ok {
		// Without a total the page itself is the end of the result set.
		total = (pageNumber-1)*pageSize + len(items)
		log.Printf("PropFusion[%s]: response has no %s, assuming total %d", s.kind.ID, s.kind.TotalKey, total)
	}

	log.Printf("PropFusion[%s]: page %d: %d items (total %d)", s.kind.ID, pageNumber, len(items), total)
	return listing.Page[T]{Items: items, Total: total, PageSize: pageSize}, nil
}

// Lookup finds one listing by id. Kinds in scan mode search a single large
// page; kinds in id mode ask the endpoint for the id directly.
func (s *Source[T]) Lookup(ctx context.Context, id string) (T, error) {
	var zero T

	var lookupURL string
	switch s.kind.Detail.Mode {
	case config.DetailByID:
		u, err := url.Parse(s.kind.Endpoint)
		if err != nil {
			return zero, fmt.Errorf("endpoint %q: %w", s.kind.Endpoint, err)
		}
		params := u.Query()
		params.Set("id", id)
		u.RawQuery = params.Encode()
		lookupURL = u.String()
	default:
		size := s.kind.Detail.ScanSize
		if size <= 0 {
			size = 100
		}
		var err error
		if lookupURL, err = s.PageURL(listing.Query{}, 1, size); err != nil {
			return zero, err
		}
	}

	body, err := s.client.get(ctx, lookupURL, s.limiter)
	if err != nil {
		return zero, s.fetchError(1, err)
	}

	items, _, _, err := decodeEnvelope[T](body, s.kind.ItemsKey, s.kind.TotalKey)
	if err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", s.kind.ID, id, err)
	}
	for _, item := range items {
		if item.ListingID() == id {
			return item, nil
		}
	}
	if s.kind.Detail.Mode == config.DetailByID && len(items) > 0 {
		return items[0], nil
	}
	return zero, fmt.Errorf("%s %s: %w", s.kind.ID, id, listing.ErrNotFound)
}

func (s *Source[T]) fetchError(pageNumber int, err error) *listing.FetchError {
	fe := &listing.FetchError{
		Kind:    s.kind.ID,
		Page:    pageNumber,
		Message: fmt.Sprintf("Failed to fetch %s", s.kind.ID),
		Err:     err,
	}
	var se *StatusError
	if errors.As(err, &se) {
		fe.StatusCode = se.StatusCode
	}
	return fe
}

// decodeEnvelope pulls the items array and the total out of a response
// object. ok is false when the total key is absent.
func decodeEnvelope[T any](body []byte, itemsKey, totalKey string) (items []T, total int, ok bool, err error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, false, err
	}

	if raw, found := envelope[itemsKey]; found && string(raw) != "null" {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, 0, false, fmt.Errorf("%s: %w", itemsKey, err)
		}
	}
	if items == nil {
		items = []T{}
	}

	raw, found := envelope[totalKey]
	if !found || string(raw) == "null" {
		return items, 0, false, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, 0, false, fmt.Errorf("%s: %w", totalKey, err)
	}
	f, err := n.Float64()
	if err != nil {
		return nil, 0, false, fmt.Errorf("%s: %w", totalKey, err)
	}
	return items, int(f), true, nil
}
