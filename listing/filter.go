package listing

import "strings"

// ApplyFilters returns the listings of items that satisfy every criterion of
// q, in their original order. items is never modified and the result never
// aliases it. buckets resolves q.PriceBucket; an unknown bucket name matches
// every price.
func ApplyFilters[T Listing](items []T, q Query, buckets BucketSet) []T {
	search := strings.ToLower(q.Search)
	developer := strings.ToLower(q.Developer)

	var bucket *Bucket
	if q.PriceBucket != "" {
		if b, ok := buckets.Lookup(q.PriceBucket); ok {
			bucket = &b
		}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesSearch(item, search) {
			continue
		}
		if q.PropertyType != "" && !item.HasPropertyType(q.PropertyType) {
			continue
		}
		if q.Bedrooms != nil && !item.HasBedrooms(*q.Bedrooms) {
			continue
		}
		if q.Furnished != "" && !strings.EqualFold(item.FurnishedStatus(), q.Furnished) {
			continue
		}
		if developer != "" && !strings.Contains(strings.ToLower(item.DeveloperName()), developer) {
			continue
		}
		if bucket != nil && !bucket.Contains(item.PriceAED()) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(item Listing, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.ListingTitle()), search) {
		return true
	}
	return strings.Contains(strings.ToLower(item.CommunityName()), search)
}
