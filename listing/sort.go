package listing

import "sort"

// SortListings returns a sorted copy of items. Newest and popular keep the
// server order. The sort is stable so ties keep their relative order.
func SortListings[T Listing](items []T, order SortOrder) []T {
	out := make([]T, len(items))
	copy(out, items)

	switch order {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceAED() < out[j].PriceAED() })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceAED() > out[j].PriceAED() })
	case SortSizeLarge:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AreaSqFt() > out[j].AreaSqFt() })
	case SortHandoverSoon:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].HandoverAt(), out[j].HandoverAt()
			if a == "" || b == "" {
				return a != "" && b == ""
			}
			return a < b
		})
	}
	return out
}
