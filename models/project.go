package models

import (
	"strconv"
	"time"
)

// ProjectParams carries the headline numbers of an off-plan project.
type ProjectParams struct {
	Price        float64 `json:"price"`
	SizeMin      float64 `json:"size_min"`
	SizeMax      float64 `json:"size_max"`
	BedroomMin   int     `json:"bedroomMin"`
	BedroomMax   int     `json:"bedroomMax"`
	HandoverTime string  `json:"handoverTime,omitempty"`
}

// PaymentPlan holds percentages of the purchase price per milestone.
type PaymentPlan struct {
	FirstInstallment  float64 `json:"first_installment,omitempty"`
	UnderConstruction float64 `json:"under_construction,omitempty"`
	OnHandover        float64 `json:"on_handover,omitempty"`
	PostHandover      float64 `json:"post_handover,omitempty"`
}

type FloorPlan struct {
	Title        string  `json:"title"`
	Bedroom      string  `json:"Bedroom"`
	Price        float64 `json:"price"`
	Size         float64 `json:"size"`
	PropertyType string  `json:"property_type"`
}

// Project is an off-plan development from the projects endpoint.
type Project struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Photos        []string      `json:"photos"`
	Description   string        `json:"description"`
	Location      *Location     `json:"location,omitempty"`
	Developer     *Developer    `json:"developer,omitempty"`
	Agent         Agent         `json:"agent"`
	Params        ProjectParams `json:"newParam"`
	PropertyTypes []string      `json:"propertyTypes,omitempty"`
	PaymentPlan   PaymentPlan   `json:"payment_planParam"`
	BrochureURL   string        `json:"brochureUrl,omitempty"`
	ProjectStatus string        `json:"projectStatus"`
	FloorPlans    []FloorPlan   `json:"floor_plans,omitempty"`
}

func (p Project) ListingID() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p Project) ListingTitle() string { return p.Name }

func (p Project) CommunityName() string {
	if p.Location == nil {
		return ""
	}
	return p.Location.Community
}

func (p Project) HasPropertyType(propertyType string) bool {
	for _, t := range p.PropertyTypes {
		if t == propertyType {
			return true
		}
	}
	return false
}

// HasBedrooms reports whether n falls inside the project's bedroom range.
func (p Project) HasBedrooms(n int) bool {
	return n >= p.Params.BedroomMin && n <= p.Params.BedroomMax
}

func (p Project) FurnishedStatus() string { return "" }

func (p Project) DeveloperName() string {
	if p.Developer == nil {
		return ""
	}
	return p.Developer.Name
}

func (p Project) PriceAED() float64 { return p.Params.Price }
func (p Project) AreaSqFt() float64 { return p.Params.SizeMax }

// HandoverAt normalises the handover timestamp to YYYY-MM-DD.
func (p Project) HandoverAt() string {
	t, ok := p.Handover()
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

var handoverLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
}

// Handover parses the project's handover time.
func (p Project) Handover() (time.Time, bool) {
	if p.Params.HandoverTime == "" {
		return time.Time{}, false
	}
	for _, layout := range handoverLayouts {
		if t, err := time.Parse(layout, p.Params.HandoverTime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
