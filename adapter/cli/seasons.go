package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
)

var (
	seasonsYear     int
	seasonsTZ       float64
	seasonsDST      bool
	seasonsProvider string
)

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "Show equinoxes, solstices and orbital milestones for a year",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer()
		if err != nil {
			return err
		}

		if seasonsYear == 0 {
			seasonsYear = time.Now().UTC().Year()
		}

		req := provider.SeasonsRequest{Year: seasonsYear}
		if cmd.Flags().Changed("tz") {
			req.TZ = &seasonsTZ
		}
		if cmd.Flags().Changed("dst") {
			req.DST = &seasonsDST
		}

		p, err := container.Providers.Resolve("get_earth_seasons", seasonsProvider)
		if err != nil {
			return err
		}
		result, err := p.Seasons(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	seasonsCmd.Flags().IntVar(&seasonsYear, "year", 0, "year (default current)")
	seasonsCmd.Flags().Float64Var(&seasonsTZ, "tz", 0, "timezone offset from UTC in hours")
	seasonsCmd.Flags().BoolVar(&seasonsDST, "dst", false, "apply daylight saving time")
	seasonsCmd.Flags().StringVar(&seasonsProvider, "provider", "", "backend: navy_api or ephemeris")
	rootCmd.AddCommand(seasonsCmd)
}
