package contact

import (
	"fmt"
	"net/url"
	"strings"

	"asp_listings/config"
	"asp_listings/models"
)

// Templates holds the canned messages for one listing kind.
type Templates struct {
	WhatsApp      string
	EmailSubject  string // %s is the listing title
	EmailBody     string // %s is the listing title
	ViewingNoun   string
	ViewingPrefix string
	// ContactBlock puts the visitor's details under "Contact Details:" and
	// leaves out their message.
	ContactBlock bool
}

var templates = map[string]Templates{
	config.KindProperties: {
		WhatsApp:      "Hi, I'm interested in your property listing. Can you provide more details?",
		EmailSubject:  "Inquiry about: %s",
		EmailBody:     "Hi,\n\nI'm interested in the property: %s\n\nPlease provide more details.\n\nThank you.",
		ViewingNoun:   "property",
		ViewingPrefix: "Property Viewing Request",
		ContactBlock:  true,
	},
	config.KindRentals: {
		WhatsApp:      "Hi, I'm interested in your rental property listing. Can you provide more details?",
		EmailSubject:  "Rental Inquiry: %s",
		EmailBody:     "Hi,\n\nI'm interested in renting the property: %s\n\nPlease provide more details about availability and viewing arrangements.\n\nThank you.",
		ViewingNoun:   "property",
		ViewingPrefix: "Viewing Request",
	},
	config.KindProjects: {
		WhatsApp:      "Hi, I'm interested in your project. Can you provide more details?",
		EmailSubject:  "Project Inquiry: %s",
		EmailBody:     "Hi,\n\nI'm interested in the project: %s\n\nPlease provide more details about pricing, floor plans, and availability.\n\nThank you.",
		ViewingNoun:   "project",
		ViewingPrefix: "Viewing Request",
	},
}

// TemplatesFor falls back to the sale templates for unknown kinds.
func TemplatesFor(kind string) Templates {
	if t, ok := templates[kind]; ok {
		return t
	}
	return templates[config.KindProperties]
}

// Links are the agent deep links for one listing. Empty when the agent has
// no phone or email.
type Links struct {
	Call     string
	WhatsApp string
	Email    string
}

func ForListing(kind, title string, agent *models.Agent) Links {
	if agent == nil {
		return Links{}
	}
	t := TemplatesFor(kind)
	var links Links
	if phone := strings.TrimSpace(agent.Phone); phone != "" {
		links.Call = CallLink(phone)
		links.WhatsApp = WhatsAppLink(phone, t.WhatsApp)
	}
	if email := strings.TrimSpace(agent.Email); email != "" {
		links.Email = MailtoLink(email,
			fmt.Sprintf(t.EmailSubject, title),
			fmt.Sprintf(t.EmailBody, title))
	}
	return links
}

func CallLink(phone string) string {
	return "tel:" + phone
}

// WhatsAppLink keeps only the ASCII digits of phone.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + EncodeComponent(message)
}

func MailtoLink(email, subject, body string) string {
	return "mailto:" + email + "?subject=" + EncodeComponent(subject) + "&body=" + EncodeComponent(body)
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way browsers encode URI components:
// spaces become %20 and !'()* stay literal.
func EncodeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
