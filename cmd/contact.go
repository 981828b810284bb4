package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"asp_listings/contact"
)

var contactOpts struct {
	kind    string
	only    string
	viewing contact.ViewingRequest
}

var contactCmd = &cobra.Command{
	Use:   "contact ID",
	Short: "Print the agent call, WhatsApp and email links for a listing",
	Long: `Print the agent deep links for a listing. With --date and --time a viewing
request email link is printed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := browserFor(contactOpts.kind)
		if err != nil {
			return err
		}
		d, err := b.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		links := map[string]string{
			"call":     d.Links.Call,
			"whatsapp": d.Links.WhatsApp,
			"email":    d.Links.Email,
		}
		if contactOpts.only != "" {
			link, ok := links[contactOpts.only]
			if !ok {
				return fmt.Errorf("unknown link %q (call, whatsapp, email)", contactOpts.only)
			}
			if link == "" {
				return fmt.Errorf("the agent has no %s contact", contactOpts.only)
			}
			fmt.Println(link)
			return nil
		}

		for _, name := range []string{"call", "whatsapp", "email"} {
			if links[name] != "" {
				fmt.Printf("%-9s %s\n", name, links[name])
			}
		}

		v := contactOpts.viewing
		if v.Date == "" && v.Time == "" {
			return nil
		}
		v.Kind = b.Kind()
		v.ListingTitle = d.Title
		if d.Agent != nil {
			v.AgentEmail = d.Agent.Email
		}
		link, err := v.MailtoLink()
		if err != nil {
			pterm.Error.Println(err)
			return err
		}
		fmt.Printf("%-9s %s\n", "viewing", link)
		return nil
	},
}

func init() {
	f := contactCmd.Flags()
	f.StringVarP(&contactOpts.kind, "kind", "k", "properties", "Listing kind (properties, rentals, projects)")
	f.StringVar(&contactOpts.only, "link", "", "Print only this link (call, whatsapp, email)")
	f.StringVar(&contactOpts.viewing.Date, "date", "", "Viewing date, YYYY-MM-DD")
	f.StringVar(&contactOpts.viewing.Time, "time", "", "Viewing time, e.g. 15:30 or 03:30 PM")
	f.StringVar(&contactOpts.viewing.Name, "name", "", "Your name")
	f.StringVar(&contactOpts.viewing.Phone, "phone", "", "Your phone")
	f.StringVar(&contactOpts.viewing.Email, "email", "", "Your email")
	f.StringVar(&contactOpts.viewing.Message, "message", "", "Message for the agent")
}
