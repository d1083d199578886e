package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
)

var (
	phasesDate     string
	phasesCount    int
	phasesProvider string
)

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "List upcoming moon phases",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer()
		if err != nil {
			return err
		}

		if phasesDate == "" {
			phasesDate = time.Now().UTC().Format("2006-01-02")
		}
		date, err := domain.ParseDate(phasesDate)
		if err != nil {
			return err
		}

		p, err := container.Providers.Resolve("get_moon_phases", phasesProvider)
		if err != nil {
			return err
		}
		result, err := p.MoonPhases(cmd.Context(), date, phasesCount)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	phasesCmd.Flags().StringVar(&phasesDate, "date", "", "start date YYYY-MM-DD (default today)")
	phasesCmd.Flags().IntVar(&phasesCount, "count", 12, "number of phase events (1-99)")
	phasesCmd.Flags().StringVar(&phasesProvider, "provider", "", "backend: navy_api or ephemeris")
	rootCmd.AddCommand(phasesCmd)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
