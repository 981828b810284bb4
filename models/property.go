package models

import (
	"strconv"
	"strings"
)

// Location is the community hierarchy PropFusion attaches to a listing.
type Location struct {
	City         string  `json:"city"`
	Community    string  `json:"community"`
	SubCommunity string  `json:"sub_community"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

type Developer struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

// Agent is the listing agent's contact card. Any field may be empty.
type Agent struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// Property is a sale listing (listing_type=SELL) from get_properties_for_main_site.
type Property struct {
	ID               int64      `json:"id"`
	PropertyID       string     `json:"propertyId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Photos           []string   `json:"photos"`
	ListingType      string     `json:"listingType"`
	PropertyType     string     `json:"property_type"`
	Location         Location   `json:"location"`
	Price            float64    `json:"price"`
	Size             float64    `json:"size"`
	BedRooms         int        `json:"bedRooms"`
	Bathrooms        string     `json:"bathrooms"`
	Parking          int        `json:"parking"`
	BuildYear        string     `json:"buildYear"`
	CompletionStatus string     `json:"completionStatus"`
	Developer        *Developer `json:"developer,omitempty"`
	Agent            *Agent     `json:"agent,omitempty"`
	Amenities        []string   `json:"amenities"`
	VideoLink        string     `json:"videoLink,omitempty"`
}

func (p Property) ListingID() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p Property) ListingTitle() string  { return p.Title }
func (p Property) CommunityName() string { return p.Location.Community }
func (p Property) FurnishedStatus() string {
	return ""
}

func (p Property) HasPropertyType(propertyType string) bool {
	return p.PropertyType == propertyType
}

func (p Property) HasBedrooms(n int) bool {
	return p.BedRooms == n
}

func (p Property) DeveloperName() string {
	if p.Developer == nil {
		return ""
	}
	return p.Developer.Name
}

func (p Property) PriceAED() float64  { return p.Price }
func (p Property) AreaSqFt() float64  { return p.Size }
func (p Property) HandoverAt() string { return "" }

// CoverPhoto returns the first photo URL or "".
func (p Property) CoverPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0]
}

// LocationLine joins sub-community, community and city, skipping blanks.
func (p Property) LocationLine() string {
	var parts []string
	for _, s := range []string{p.Location.SubCommunity, p.Location.Community, p.Location.City} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Rental is a rent listing (listing_type=RENT). Rental-only fields are strings
// because PropFusion sends them as free text.
type Rental struct {
	Property

	Cheques          string `json:"cheques"`
	Deposit          string `json:"deposit"`
	IsFurnished      string `json:"isFurnished"`
	AvailabilityDate string `json:"availabilityDate"`
	Occupancy        string `json:"occupancy"`
	Floor            string `json:"floor"`
	ACFee            string `json:"acFee,omitempty"`
	ServiceCharge    string `json:"serviceCharge,omitempty"`
	PriceType        string `json:"priceType"`
}

func (r Rental) FurnishedStatus() string {
	return r.IsFurnished
}
