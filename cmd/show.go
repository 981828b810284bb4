package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"asp_listings/amenity"
	"asp_listings/listing"
	"asp_listings/services"
)

var showKind string

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one listing with its facts, amenities and agent links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := browserFor(showKind)
		if err != nil {
			return err
		}

		d, err := b.Lookup(cmd.Context(), args[0])
		if errors.Is(err, listing.ErrNotFound) {
			pterm.Warning.Printfln("%s %s is no longer available", showKind, args[0])
			return err
		}
		if err != nil {
			return err
		}

		renderDetail(d)
		return nil
	},
}

func renderDetail(d *services.Detail) {
	pterm.DefaultSection.Println(d.Title)
	pterm.Println(pterm.Gray(d.Location))
	pterm.Println(pterm.Bold.Sprint(d.Price))

	var badges []string
	for _, b := range d.Badges {
		badges = append(badges, b.Text)
	}
	if len(badges) > 0 {
		pterm.Println(strings.Join(badges, " · "))
	}
	pterm.Println()

	facts := pterm.TableData{}
	for _, f := range d.Facts {
		facts = append(facts, []string{f.Label, f.Value})
	}
	if len(facts) > 0 {
		if err := pterm.DefaultTable.WithData(facts).Render(); err != nil {
			pterm.Warning.Printfln("Failed to render facts: %v", err)
		}
	}

	if d.Description != "" {
		pterm.DefaultSection.WithLevel(2).Println("Description")
		pterm.Println(d.Description)
	}

	if groups := amenity.Categorize(d.Amenities); len(groups) > 0 {
		pterm.DefaultSection.WithLevel(2).Println("Amenities")
		for _, g := range groups {
			pterm.Printfln("%s: %s", pterm.Bold.Sprint(amenity.Title(g.Category)), strings.Join(g.Amenities, ", "))
		}
	}

	pterm.DefaultSection.WithLevel(2).Println("Contact")
	if d.Agent != nil && d.Agent.Name != "" {
		pterm.Printfln("Agent: %s", d.Agent.Name)
	}
	printed := false
	for _, link := range []struct{ label, url string }{
		{"Call", d.Links.Call},
		{"WhatsApp", d.Links.WhatsApp},
		{"Email", d.Links.Email},
	} {
		if link.url != "" {
			pterm.Printfln("%-9s %s", link.label+":", link.url)
			printed = true
		}
	}
	if !printed {
		pterm.Println(pterm.Gray("No agent contact details"))
	}
	if len(d.Photos) > 0 {
		pterm.Println(pterm.Gray(fmt.Sprintf("%d photos, first: %s", len(d.Photos), d.Photos[0])))
	}
}

func init() {
	showCmd.Flags().StringVarP(&showKind, "kind", "k", "properties", "Listing kind (properties, rentals, projects)")
}
