// Package cli implements the celestial command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/app"
	"github.com/chrishayuk/chuk-mcp-celestial/pkg/config"
	"github.com/chrishayuk/chuk-mcp-celestial/pkg/observability"
)

var (
	verbose bool
	logger  *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "celestial",
	Short: "Astronomical data from the US Navy API or a local ephemeris",
	Long: `celestial answers astronomy questions: moon phases, sun and moon
rise/set times, solar eclipses, seasons, planet positions and whole-sky
summaries. Data comes from the US Navy Astronomical Applications API or
from local VSOP87 ephemeris calculations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = observability.LoggerFromEnv()
		if verbose {
			logger = observability.NewLogger(observability.LogConfig{
				Level:  observability.LogLevelDebug,
				Format: observability.LogFormatText,
			})
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newContainer loads configuration and assembles the service graph for a
// command invocation.
func newContainer() (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return app.NewContainer(cfg, logger)
}
