package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
)

var (
	skyDate string
	skyTime string
	skyLat  float64
	skyLon  float64
)

var skyCmd = &cobra.Command{
	Use:   "sky",
	Short: "Summarize the sky: visible planets, moon state, darkness",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if skyDate == "" {
			skyDate = now.Format("2006-01-02")
		}
		if skyTime == "" {
			skyTime = now.Format("15:04")
		}

		date, err := domain.ParseDate(skyDate)
		if err != nil {
			return err
		}
		hour, minute, _, err := domain.ParseTime(skyTime)
		if err != nil {
			return err
		}

		result, err := container.Sky.Summarize(cmd.Context(), provider.SkyRequest{
			Date:      date,
			Hour:      hour,
			Minute:    minute,
			Latitude:  skyLat,
			Longitude: skyLon,
		}, skyDate, skyTime)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	skyCmd.Flags().StringVar(&skyDate, "date", "", "date YYYY-MM-DD (default today)")
	skyCmd.Flags().StringVar(&skyTime, "time", "", "time HH:MM UTC (default now)")
	skyCmd.Flags().Float64Var(&skyLat, "lat", 0, "latitude in decimal degrees")
	skyCmd.Flags().Float64Var(&skyLon, "lon", 0, "longitude in decimal degrees, east-positive")
	_ = skyCmd.MarkFlagRequired("lat")
	_ = skyCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(skyCmd)
}
