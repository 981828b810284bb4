package listing

import (
	"strconv"
	"strings"
)

type item struct {
	id        string
	title     string
	community string
	types     []string
	bedsMin   int
	bedsMax   int
	furnished string
	developer string
	price     float64
	size      float64
	handover  string
}

func (i item) ListingID() string       { return i.id }
func (i item) ListingTitle() string    { return i.title }
func (i item) CommunityName() string   { return i.community }
func (i item) FurnishedStatus() string { return i.furnished }
func (i item) DeveloperName() string   { return i.developer }
func (i item) PriceAED() float64       { return i.price }
func (i item) AreaSqFt() float64       { return i.size }
func (i item) HandoverAt() string      { return i.handover }

func (i item) HasPropertyType(t string) bool {
	for _, have := range i.types {
		if have == t {
			return true
		}
	}
	return false
}

func (i item) HasBedrooms(n int) bool {
	return n >= i.bedsMin && n <= i.bedsMax
}

func priced(id string, price float64) item {
	return item{id: id, title: "Listing " + id, price: price}
}

// numbered returns listings with ids from..to inclusive.
func numbered(from, to int) []item {
	var out []item
	for n := from; n <= to; n++ {
		out = append(out, item{id: strconv.Itoa(n), title: "Listing " + strconv.Itoa(n), price: float64(n) * 100_000})
	}
	return out
}

func ids(items []item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.id
	}
	return strings.Join(parts, ",")
}
