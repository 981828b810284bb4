package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalDecodesEmbeddedProperty(t *testing.T) {
	raw := `{
		"id": 4411,
		"title": "Furnished 2BR in Marina Gate",
		"property_type": "APARTMENT",
		"location": {"city": "Dubai", "community": "Dubai Marina", "sub_community": "Marina Gate"},
		"price": 185000,
		"size": 1320,
		"bedRooms": 2,
		"developer": {"name": "Select Group"},
		"isFurnished": "yes",
		"cheques": "4"
	}`

	var r Rental
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, "4411", r.ListingID())
	assert.Equal(t, "Dubai Marina", r.CommunityName())
	assert.Equal(t, "yes", r.FurnishedStatus())
	assert.Equal(t, "Select Group", r.DeveloperName())
	assert.True(t, r.HasPropertyType("APARTMENT"))
	assert.False(t, r.HasPropertyType("VILLA"))
	assert.True(t, r.HasBedrooms(2))
	assert.False(t, r.HasBedrooms(3))
	assert.Equal(t, 185000.0, r.PriceAED())
	assert.Equal(t, "Marina Gate, Dubai Marina, Dubai", r.LocationLine())
	assert.Equal(t, "", r.CoverPhoto())
}

func TestPropertyWithoutDeveloper(t *testing.T) {
	p := Property{ID: 7, Photos: []string{"a.jpg", "b.jpg"}}
	assert.Equal(t, "", p.DeveloperName())
	assert.Equal(t, "", p.FurnishedStatus())
	assert.Equal(t, "", p.HandoverAt())
	assert.Equal(t, "a.jpg", p.CoverPhoto())
	assert.Equal(t, "", p.LocationLine())
}

func TestProjectBedroomRangeAndTypes(t *testing.T) {
	p := Project{
		ID:            12,
		Name:          "Creek Vista",
		PropertyTypes: []string{"APARTMENT", "TOWNHOUSE"},
		Params:        ProjectParams{Price: 1_800_000, SizeMin: 700, SizeMax: 2100, BedroomMin: 1, BedroomMax: 3},
	}

	assert.True(t, p.HasBedrooms(1))
	assert.True(t, p.HasBedrooms(3))
	assert.False(t, p.HasBedrooms(4))
	assert.False(t, p.HasBedrooms(0))
	assert.True(t, p.HasPropertyType("TOWNHOUSE"))
	assert.False(t, p.HasPropertyType("VILLA"))
	assert.Equal(t, "", p.CommunityName())
	assert.Equal(t, 2100.0, p.AreaSqFt())
}

func TestProjectHandover(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2027-06-30T00:00:00Z", "2027-06-30"},
		{"2027-06-30T10:00:00", "2027-06-30"},
		{"2028-01-15", "2028-01-15"},
		{"2026-12", "2026-12-01"},
		{"Q4 2027", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := Project{Params: ProjectParams{HandoverTime: tt.in}}
			assert.Equal(t, tt.want, p.HandoverAt())
		})
	}
}

func TestContactFormValidate(t *testing.T) {
	ok := ContactForm{Name: "Sara", Email: "sara@example.com", Message: "Viewing please"}
	assert.NoError(t, ok.Validate())

	missing := ok
	missing.Message = "   "
	err := missing.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "message", ve.Field)
	assert.Equal(t, "Please fill out all required fields.", ve.Message)

	bad := ok
	bad.Email = "not-an-email"
	require.ErrorAs(t, bad.Validate(), &ve)
	assert.Equal(t, "email", ve.Field)
}

func TestContactFormToLead(t *testing.T) {
	lead := ContactForm{Name: " Sara ", Email: "sara@example.com", Message: "Hi"}.ToLead()
	assert.Equal(t, "Sara", lead.Name)
	assert.Equal(t, "Hi", lead.Message)
	assert.Equal(t, "Hi", lead.Body)
	assert.Equal(t, LeadSourceWebsite, lead.ClientSource)
	assert.Equal(t, LeadStatusActive, lead.Status)
	assert.Equal(t, LeadTypeEnquiry, lead.ClientType)
	assert.Equal(t, LeadProjectGeneral, lead.Project)
	assert.Empty(t, lead.Phone)

	data, err := json.Marshal(lead)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "phone")
	assert.NotContains(t, string(data), "clientSubSource")

	lead = ContactForm{Name: "Sara", Email: "s@example.com", Message: "Hi", Phone: "+971 50 000 0000", Subject: "Villa"}.ToLead()
	assert.Equal(t, "+971 50 000 0000", lead.Phone)
	assert.Equal(t, "Villa", lead.ClientSubSource)
}
