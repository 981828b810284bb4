package cmd

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"asp_listings/scheduler"
	"asp_listings/services"
)

var featuredWatch bool

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Print the featured listings of every kind",
	Long: `Print the first listings of every kind as shown on the home page.
With --watch the snapshot is refreshed on FEATURED_CRON or FEATURED_INTERVAL
(every 5 minutes when neither is set) until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newPropFusion()
		svc, err := services.NewFeaturedService(cfg, client)
		if err != nil {
			return err
		}

		job := &featuredPrinter{svc: svc}
		if !featuredWatch {
			return job.Refresh(cmd.Context())
		}

		schedCfg := cfg.Scheduler
		if schedCfg.Cron == "" && schedCfg.Interval <= 0 {
			schedCfg.Interval = 5 * time.Minute
		}
		sched := scheduler.New(schedCfg, job)
		if err := sched.Start(cmd.Context()); err != nil {
			return err
		}
		defer sched.Stop()

		if err := sched.TriggerNow(cmd.Context()); err != nil {
			pterm.Warning.Printfln("Initial refresh failed: %v", err)
		}
		<-cmd.Context().Done()
		pterm.Info.Println("Stopping")
		return nil
	},
}

// featuredPrinter refreshes the featured snapshot and prints it.
type featuredPrinter struct {
	svc *services.FeaturedService
}

func (p *featuredPrinter) Refresh(ctx context.Context) error {
	if err := p.svc.Refresh(ctx); err != nil {
		pterm.Error.Printfln("Featured refresh failed: %v", err)
		return err
	}
	for _, kind := range p.svc.Kinds() {
		name := kind
		if k, err := cfg.Kind(kind); err == nil {
			name = k.Name
		}
		pterm.DefaultSection.Println(name)
		renderRows(p.svc.Rows(kind))
	}
	pterm.Info.Printfln("Updated %s", p.svc.RefreshedAt().Format("15:04:05"))
	return nil
}

func init() {
	featuredCmd.Flags().BoolVarP(&featuredWatch, "watch", "w", false, "Keep refreshing until interrupted")
}
