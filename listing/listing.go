// Package listing holds the incremental fetch-and-filter controller shared by
// the property, rental and project listings.
package listing

import "context"

// Listing is the view of a listing record that filtering and sorting need.
// models.Property, models.Rental and models.Project implement it.
type Listing interface {
	ListingID() string
	ListingTitle() string
	CommunityName() string
	HasPropertyType(propertyType string) bool
	HasBedrooms(n int) bool
	FurnishedStatus() string
	DeveloperName() string
	PriceAED() float64
	AreaSqFt() float64
	// HandoverAt returns a sortable handover key ("2027-01-01") or "" when unknown.
	HandoverAt() string
}

// Page is one page of results as returned by a Source.
type Page[T Listing] struct {
	Items    []T
	Total    int
	PageSize int
}

// Source performs one remote page fetch. pageNumber starts at 1.
type Source[T Listing] interface {
	FetchPage(ctx context.Context, q Query, pageNumber, pageSize int) (Page[T], error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T Listing] func(ctx context.Context, q Query, pageNumber, pageSize int) (Page[T], error)

func (f SourceFunc[T]) FetchPage(ctx context.Context, q Query, pageNumber, pageSize int) (Page[T], error) {
	return f(ctx, q, pageNumber, pageSize)
}
