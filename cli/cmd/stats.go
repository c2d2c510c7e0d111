package cmd

import (
	"fmt"

	"github.com/MarinusJvRe/TrophyVault/cli/internal/api"
	"github.com/MarinusJvRe/TrophyVault/cli/internal/output"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var resp api.Response[api.Stats]
		if err := apiClient.Get("/stats", nil, &resp); err != nil {
			return fmt.Errorf("fetching stats: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.StatsView(resp.Data)
		return nil
	},
}

var ratingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Show community votes on your own room",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var resp api.Response[api.RatingSummary]
		if err := apiClient.Get("/my-room-rating", nil, &resp); err != nil {
			return fmt.Errorf("fetching rating: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.RatingView(resp.Data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd, ratingCmd)
}
