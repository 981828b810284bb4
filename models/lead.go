package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// Lead sources and types PropFusion expects from the website contact form.
const (
	LeadSourceWebsite  = "website"
	LeadStatusActive   = "ACTIVE"
	LeadTypeEnquiry    = "ENQUIRY"
	LeadProjectGeneral = "general_inquiry"
)

// Lead is the payload of create_leads_for_website.
type Lead struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Message         string `json:"leads_message"`
	ClientSource    string `json:"clientSource"`
	Status          string `json:"status"`
	ClientType      string `json:"clientType"`
	Project         string `json:"project"`
	Body            string `json:"body"`
	ClientSubSource string `json:"clientSubSource,omitempty"`
	IPAddress       string `json:"ip_address,omitempty"`
}

// ContactForm is what a visitor fills in.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const requiredFieldsMessage = "Please fill out all required fields."

func (f ContactForm) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"name", f.Name},
		{"email", f.Email},
		{"message", f.Message},
	} {
		if strings.TrimSpace(field.value) == "" {
			return &ValidationError{Field: field.name, Message: requiredFieldsMessage}
		}
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(f.Email)); err != nil {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address."}
	}
	return nil
}

// ToLead builds the lead payload. Optional fields are only set when filled.
func (f ContactForm) ToLead() Lead {
	lead := Lead{
		Name:         strings.TrimSpace(f.Name),
		Email:        strings.TrimSpace(f.Email),
		Message:      f.Message,
		ClientSource: LeadSourceWebsite,
		Status:       LeadStatusActive,
		ClientType:   LeadTypeEnquiry,
		Project:      LeadProjectGeneral,
		Body:         f.Message,
	}
	if phone := strings.TrimSpace(f.Phone); phone != "" {
		lead.Phone = phone
	}
	if subject := strings.TrimSpace(f.Subject); subject != "" {
		lead.ClientSubSource = subject
	}
	return lead
}
