package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"asp_listings/models"
	"asp_listings/propfusion"
)

var leadForm models.ContactForm

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Send a website enquiry to PropFusion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := leadForm.Validate(); err != nil {
			pterm.Error.Println(err)
			return err
		}

		_, clients := newPropFusion()
		leads := propfusion.NewLeadsClient(clients.Leads, cfg.PropFusion)

		receipt, err := leads.Submit(cmd.Context(), leadForm)
		if err != nil {
			pterm.Error.Println("There was a problem submitting your message. Please try again.")
			return err
		}

		pterm.Success.Printfln("Thank you! Your message has been sent successfully. (request %s)", receipt.RequestID)
		return nil
	},
}

func init() {
	f := leadCmd.Flags()
	f.StringVar(&leadForm.Name, "name", "", "Your name (required)")
	f.StringVar(&leadForm.Email, "email", "", "Your email (required)")
	f.StringVar(&leadForm.Message, "message", "", "Your message (required)")
	f.StringVar(&leadForm.Phone, "phone", "", "Phone number")
	f.StringVar(&leadForm.Subject, "subject", "", "Subject")
}
