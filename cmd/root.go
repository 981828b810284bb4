// Package cmd provides the command-line interface for asp_listings
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"asp_listings/config"
	"asp_listings/httputil"
	"asp_listings/logging"
	"asp_listings/propfusion"
	"asp_listings/services"
)

var (
	logLevel string
	verbose  bool

	cfg     *config.Config
	logFile *logging.RotatingWriter
)

var rootCmd = &cobra.Command{
	Use:   "asp_listings",
	Short: "Browse Dubai property, rental and off-plan listings",
	Long:  "Browse PropFusion sale, rental and off-plan project listings from the terminal, and send enquiries to agents.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		if verbose {
			logFile, err = logging.Setup(cfg.LogPath, os.Stderr)
		} else {
			logFile, err = logging.Setup(cfg.LogPath, nil)
		}
		if err != nil {
			pterm.Warning.Printfln("Could not set up file logging: %v", err)
		}
		logging.SetLevel(cfg.LogLevel)

		log.Printf("asp_listings %s: %d kinds, API %s", cmd.Name(), len(cfg.Kinds), cfg.PropFusion.BaseURL)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return rootCmd.ExecuteContext(ctx)
}

func Execute() error {
	return ExecuteContext(context.Background())
}

// initPterm keeps stdout for tables and detail output; diagnostics go to
// stderr.
func initPterm() {
	pterm.Info.Writer = os.Stderr
	pterm.Success.Writer = os.Stderr
	pterm.Warning.Writer = os.Stderr
	pterm.Error.Writer = os.Stderr
	pterm.Debug.Writer = os.Stderr
}

func init() {
	initPterm()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also write log lines to stderr")

	rootCmd.AddCommand(browseCmd, listCmd, showCmd, leadCmd, featuredCmd, contactCmd)
}

// newPropFusion builds the shared API client from the loaded config.
func newPropFusion() (*propfusion.Client, *httputil.Clients) {
	clients := httputil.NewClients(cfg.HTTP)
	return propfusion.NewClient(clients.API, cfg.Cache), clients
}

func browserFor(kindID string) (services.Browser, error) {
	kind, err := cfg.Kind(kindID)
	if err != nil {
		return nil, err
	}
	client, _ := newPropFusion()
	return services.NewBrowser(kind, client)
}
