package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"asp_listings/services"
	"asp_listings/tui"
)

var browseKind string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the full-screen listing browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if browseKind != "" {
			if _, err := cfg.Kind(browseKind); err != nil {
				return err
			}
		}

		client, _ := newPropFusion()
		browsers, err := services.Browsers(cfg, client)
		if err != nil {
			return err
		}
		featured, err := services.NewFeaturedService(cfg, client)
		if err != nil {
			return err
		}

		refresh := cfg.Scheduler.Interval
		if refresh <= 0 {
			refresh = 5 * time.Minute
		}
		return tui.Run(cmd.Context(), services.OrderedKinds(browsers), featured, browseKind, refresh)
	},
}

func init() {
	browseCmd.Flags().StringVarP(&browseKind, "kind", "k", "", "Open on this listing kind (properties, rentals, projects)")
}
