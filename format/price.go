package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"asp_listings/models"
)

var printer = message.NewPrinter(language.English)

// Number groups thousands and keeps up to three fraction digits:
// 1234567.5 -> "1,234,567.5".
func Number(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// Price renders an AED amount: millions with one decimal, smaller amounts
// grouped in full.
func Price(price float64) string {
	if price >= 1_000_000 {
		return fmt.Sprintf("AED %.1fM", price/1_000_000)
	}
	return "AED " + Number(price)
}

// RentPrice appends the payment period, "/year" unless the listing says otherwise.
func RentPrice(price float64, priceType string) string {
	period := "/year"
	if priceType != "" {
		period = "/" + strings.ToLower(priceType)
	}
	return Price(price) + period
}

// ProjectPrice is Price with "Price on Request" for projects without a price.
func ProjectPrice(price float64) string {
	if price == 0 {
		return "Price on Request"
	}
	return Price(price)
}

func Area(size float64) string {
	return Number(size) + " sq ft"
}

func AreaRange(min, max float64) string {
	if min == 0 && max == 0 {
		return "Size varies"
	}
	if min == max {
		return Area(min)
	}
	return Number(min) + " - " + Number(max) + " sq ft"
}

func BedroomRange(min, max int) string {
	if min == max {
		return fmt.Sprintf("%d BR", min)
	}
	return fmt.Sprintf("%d-%d BR", min, max)
}

// Bedrooms is the single-unit form used by sale and rent listings.
func Bedrooms(n int) string {
	if n == 0 {
		return "Studio"
	}
	return fmt.Sprintf("%d BR", n)
}

// ProjectLocation prefers the sub-community and falls back to Dubai.
func ProjectLocation(loc *models.Location) string {
	if loc == nil {
		return "Dubai"
	}
	if loc.SubCommunity != "" {
		return loc.SubCommunity + ", " + loc.Community
	}
	if loc.Community == "" && loc.City == "" {
		return "Dubai"
	}
	return strings.Trim(loc.Community+", "+loc.City, ", ")
}

// Handover renders a project's handover as "Jan 2027", or "TBA".
func Handover(p models.Project) string {
	t, ok := p.Handover()
	if !ok {
		return "TBA"
	}
	return t.Format("Jan 2006")
}

// Date renders an availability date as "15 Jan 2026". Unparseable input is
// returned unchanged.
func Date(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2 Jan 2006")
		}
	}
	return s
}

// OrDash substitutes the placeholder for empty values.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
