package services

import (
	"fmt"
	"strconv"
	"strings"

	"asp_listings/config"
	"asp_listings/contact"
	"asp_listings/format"
	"asp_listings/models"
)

func PropertyRow(p models.Property) Row {
	return Row{
		ID:       p.ListingID(),
		Title:    p.Title,
		Location: format.OrDash(p.LocationLine()),
		Price:    format.Price(p.Price),
		Beds:     format.Bedrooms(p.BedRooms),
		Area:     format.Area(p.Size),
		Badges:   []format.Badge{format.CompletionBadge(p.CompletionStatus)},
	}
}

func RentalRow(r models.Rental) Row {
	return Row{
		ID:       r.ListingID(),
		Title:    r.Title,
		Location: format.OrDash(r.LocationLine()),
		Price:    format.RentPrice(r.Price, r.PriceType),
		Beds:     format.Bedrooms(r.BedRooms),
		Area:     format.Area(r.Size),
		Badges: []format.Badge{
			format.FurnishedBadge(r.IsFurnished),
			format.OccupancyBadge(r.Occupancy),
		},
	}
}

func ProjectRow(p models.Project) Row {
	return Row{
		ID:       p.ListingID(),
		Title:    p.Name,
		Location: format.ProjectLocation(p.Location),
		Price:    format.ProjectPrice(p.Params.Price),
		Beds:     format.BedroomRange(p.Params.BedroomMin, p.Params.BedroomMax),
		Area:     format.AreaRange(p.Params.SizeMin, p.Params.SizeMax),
		Badges:   []format.Badge{format.ProjectStatusBadge(p.ProjectStatus)},
	}
}

func propertyFacts(p models.Property) []Fact {
	facts := []Fact{
		{"Reference", format.OrDash(p.PropertyID)},
		{"Type", format.OrDash(p.PropertyType)},
		{"Bedrooms", format.Bedrooms(p.BedRooms)},
		{"Bathrooms", format.OrDash(p.Bathrooms)},
		{"Area", format.Area(p.Size)},
		{"Parking", strconv.Itoa(p.Parking)},
	}
	if p.BuildYear != "" {
		facts = append(facts, Fact{"Build year", p.BuildYear})
	}
	if p.DeveloperName() != "" {
		facts = append(facts, Fact{"Developer", p.DeveloperName()})
	}
	return facts
}

func PropertyDetail(p models.Property) *Detail {
	return &Detail{
		Row:         PropertyRow(p),
		Description: format.PlainText(p.Description),
		Facts:       propertyFacts(p),
		Amenities:   p.Amenities,
		Photos:      p.Photos,
		Agent:       p.Agent,
		Links:       contact.ForListing(config.KindProperties, p.Title, p.Agent),
	}
}

func RentalDetail(r models.Rental) *Detail {
	facts := propertyFacts(r.Property)
	facts = append(facts,
		Fact{"Available from", format.OrDash(format.Date(r.AvailabilityDate))},
		Fact{"Cheques", format.OrDash(r.Cheques)},
		Fact{"Deposit", format.OrDash(r.Deposit)},
		Fact{"Floor", format.OrDash(r.Floor)},
	)
	if r.ServiceCharge != "" {
		facts = append(facts, Fact{"Service charge", r.ServiceCharge})
	}
	if r.ACFee != "" {
		facts = append(facts, Fact{"AC fee", r.ACFee})
	}

	return &Detail{
		Row:         RentalRow(r),
		Description: format.PlainText(r.Description),
		Facts:       facts,
		Amenities:   r.Amenities,
		Photos:      r.Photos,
		Agent:       r.Agent,
		Links:       contact.ForListing(config.KindRentals, r.Title, r.Agent),
	}
}

func ProjectDetail(p models.Project) *Detail {
	facts := []Fact{
		{"Developer", format.OrDash(p.DeveloperName())},
		{"Handover", format.Handover(p)},
		{"Property types", format.OrDash(strings.Join(p.PropertyTypes, ", "))},
		{"Bedrooms", format.BedroomRange(p.Params.BedroomMin, p.Params.BedroomMax)},
		{"Size", format.AreaRange(p.Params.SizeMin, p.Params.SizeMax)},
	}
	if plan := paymentPlan(p.PaymentPlan); plan != "" {
		facts = append(facts, Fact{"Payment plan", plan})
	}
	for _, fp := range p.FloorPlans {
		facts = append(facts, Fact{
			Label: "Floor plan",
			Value: fmt.Sprintf("%s (%s, %s)", fp.Title, format.ProjectPrice(fp.Price), format.Area(fp.Size)),
		})
	}
	if p.BrochureURL != "" {
		facts = append(facts, Fact{"Brochure", p.BrochureURL})
	}

	agent := p.Agent
	return &Detail{
		Row:         ProjectRow(p),
		Description: format.PlainText(p.Description),
		Facts:       facts,
		Photos:      p.Photos,
		Agent:       &agent,
		Links:       contact.ForListing(config.KindProjects, p.Name, &agent),
	}
}

func paymentPlan(pp models.PaymentPlan) string {
	var parts []string
	for _, step := range []struct {
		label string
		pct   float64
	}{
		{"down payment", pp.FirstInstallment},
		{"during construction", pp.UnderConstruction},
		{"on handover", pp.OnHandover},
		{"post handover", pp.PostHandover},
	} {
		if step.pct > 0 {
			parts = append(parts, fmt.Sprintf("%s%% %s", format.Number(step.pct), step.label))
		}
	}
	return strings.Join(parts, ", ")
}
