package contact

import (
	"fmt"
	"strings"
	"time"

	"asp_listings/models"
)

const viewingRequiredMessage = "Please fill in all required fields"

// ViewingRequest asks the listing agent for a viewing appointment by email.
type ViewingRequest struct {
	Kind         string
	ListingTitle string
	AgentEmail   string
	Date         string // YYYY-MM-DD
	Time         string // "15:04" or "03:04 PM"
	Name         string
	Phone        string
	Email        string
	Message      string
}

func (v ViewingRequest) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"date", v.Date},
		{"time", v.Time},
		{"name", v.Name},
		{"phone", v.Phone},
	} {
		if strings.TrimSpace(field.value) == "" {
			return &models.ValidationError{Field: field.name, Message: viewingRequiredMessage}
		}
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(v.Date)); err != nil {
		return &models.ValidationError{Field: "date", Message: "Please pick a valid date."}
	}
	if !validTime(strings.TrimSpace(v.Time)) {
		return &models.ValidationError{Field: "time", Message: "Please pick a valid time."}
	}
	return nil
}

func validTime(s string) bool {
	for _, layout := range []string{"15:04", "03:04 PM", "3:04 PM"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func (v ViewingRequest) Subject() string {
	t := TemplatesFor(v.Kind)
	return fmt.Sprintf("%s: %s", t.ViewingPrefix, v.ListingTitle)
}

// Body is the email text sent to the agent. Sale listings group the
// visitor's details under a heading; rentals and projects carry the
// visitor's message.
func (v ViewingRequest) Body() string {
	t := TemplatesFor(v.Kind)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\nI would like to schedule a viewing for the %s: %s\n\n", t.ViewingNoun, v.ListingTitle)
	fmt.Fprintf(&b, "Preferred Date: %s\nPreferred Time: %s\n", v.Date, v.Time)

	if t.ContactBlock {
		fmt.Fprintf(&b, "\nContact Details:\nName: %s\nPhone: %s\nEmail: %s\n\n", v.Name, v.Phone, v.Email)
		b.WriteString("Please confirm the viewing appointment.\n\nThank you.")
		return b.String()
	}

	fmt.Fprintf(&b, "Name: %s\nPhone: %s\nEmail: %s\n\n", v.Name, v.Phone, v.Email)
	fmt.Fprintf(&b, "Additional Message: %s\n\nThank you.", v.Message)
	return b.String()
}

// MailtoLink validates the request and returns the mailto: link addressed
// to the agent.
func (v ViewingRequest) MailtoLink() (string, error) {
	if err := v.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(v.AgentEmail) == "" {
		return "", fmt.Errorf("listing %q has no agent email", v.ListingTitle)
	}
	return MailtoLink(strings.TrimSpace(v.AgentEmail), v.Subject(), v.Body()), nil
}
