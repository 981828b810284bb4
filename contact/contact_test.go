package contact

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asp_listings/config"
	"asp_listings/models"
)

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "Hi%2C%20I'm%20here%20(now)!", EncodeComponent("Hi, I'm here (now)!"))
	assert.Equal(t, "a%26b%3Dc", EncodeComponent("a&b=c"))
	assert.Equal(t, "line%0Anext", EncodeComponent("line\nnext"))
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+971 (50) 123-4567", "Hi there")
	assert.Equal(t, "https://wa.me/971501234567?text=Hi%20there", link)

	link = WhatsAppLink("+971 ٥٠ 123", "Hi")
	assert.Equal(t, "https://wa.me/971123?text=Hi", link)
}

func TestForListing(t *testing.T) {
	agent := &models.Agent{Name: "Sara", Email: "sara@example.com", Phone: "+971 50 123 4567"}

	links := ForListing(config.KindRentals, "Downtown Studio", agent)
	assert.Equal(t, "tel:+971 50 123 4567", links.Call)
	assert.True(t, strings.HasPrefix(links.WhatsApp, "https://wa.me/971501234567?text="))
	assert.Contains(t, links.WhatsApp, "rental%20property%20listing")

	u, err := url.Parse(links.Email)
	require.NoError(t, err)
	assert.Equal(t, "mailto", u.Scheme)
	assert.Equal(t, "sara@example.com", u.Opaque)
	q, err := url.ParseQuery(u.RawQuery)
	require.NoError(t, err)
	assert.Equal(t, "Rental Inquiry: Downtown Studio", q.Get("subject"))
	assert.Contains(t, q.Get("body"), "renting the property: Downtown Studio")
	assert.NotContains(t, links.Email, "+")
}

func TestForListing_MissingAgentFields(t *testing.T) {
	assert.Equal(t, Links{}, ForListing(config.KindProjects, "X", nil))

	links := ForListing(config.KindProjects, "Creek Horizon", &models.Agent{Email: "a@example.com"})
	assert.Empty(t, links.Call)
	assert.Empty(t, links.WhatsApp)
	assert.Contains(t, links.Email, "Project%20Inquiry%3A%20Creek%20Horizon")
}

func TestViewingRequestValidate(t *testing.T) {
	v := ViewingRequest{Date: "2026-11-02", Time: "10:30", Name: "Omar", Phone: "0501234567"}
	assert.NoError(t, v.Validate())

	twelveHour := v
	twelveHour.Time = "09:00 AM"
	assert.NoError(t, twelveHour.Validate())

	missing := v
	missing.Phone = " "
	var ve *models.ValidationError
	require.True(t, errors.As(missing.Validate(), &ve))
	assert.Equal(t, "phone", ve.Field)
	assert.Equal(t, "Please fill in all required fields", ve.Message)

	badDate := v
	badDate.Date = "02/11/2026"
	require.True(t, errors.As(badDate.Validate(), &ve))
	assert.Equal(t, "date", ve.Field)

	badTime := v
	badTime.Time = "half ten"
	require.True(t, errors.As(badTime.Validate(), &ve))
	assert.Equal(t, "time", ve.Field)
}

func TestViewingRequestBody(t *testing.T) {
	sale := ViewingRequest{
		Kind: config.KindProperties, ListingTitle: "Marina View",
		Date: "2026-11-02", Time: "10:30", Name: "Omar", Phone: "050", Email: "o@example.com",
		Message: "ignored",
	}
	assert.Equal(t, "Property Viewing Request: Marina View", sale.Subject())
	assert.Equal(t, "Hi,\n\nI would like to schedule a viewing for the property: Marina View\n\n"+
		"Preferred Date: 2026-11-02\nPreferred Time: 10:30\n\n"+
		"Contact Details:\nName: Omar\nPhone: 050\nEmail: o@example.com\n\n"+
		"Please confirm the viewing appointment.\n\nThank you.", sale.Body())

	project := sale
	project.Kind = config.KindProjects
	project.ListingTitle = "Creek Horizon"
	project.Message = "Morning preferred"
	assert.Equal(t, "Viewing Request: Creek Horizon", project.Subject())
	assert.Equal(t, "Hi,\n\nI would like to schedule a viewing for the project: Creek Horizon\n\n"+
		"Preferred Date: 2026-11-02\nPreferred Time: 10:30\n"+
		"Name: Omar\nPhone: 050\nEmail: o@example.com\n\n"+
		"Additional Message: Morning preferred\n\nThank you.", project.Body())
}

func TestViewingRequestMailto(t *testing.T) {
	v := ViewingRequest{
		Kind: config.KindRentals, ListingTitle: "Downtown Studio", AgentEmail: "sara@example.com",
		Date: "2026-11-02", Time: "10:30", Name: "Omar", Phone: "050",
	}
	link, err := v.MailtoLink()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "mailto:sara@example.com?subject=Viewing%20Request%3A%20Downtown%20Studio&body="))

	v.AgentEmail = ""
	_, err = v.MailtoLink()
	assert.Error(t, err)

	v.AgentEmail = "sara@example.com"
	v.Name = ""
	_, err = v.MailtoLink()
	var ve *models.ValidationError
	assert.True(t, errors.As(err, &ve))
}
