package cmd

import (
	"fmt"
	"strconv"

	"github.com/MarinusJvRe/TrophyVault/cli/internal/api"
	"github.com/MarinusJvRe/TrophyVault/cli/internal/output"
	"github.com/spf13/cobra"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Browse public trophy rooms",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp api.Response[[]api.PublicRoom]
		if err := apiClient.Get("/community/rooms", nil, &resp); err != nil {
			return fmt.Errorf("listing rooms: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.RoomTable(resp.Data)
		return nil
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate <user-id> <1-5>",
	Short: "Rate another hunter's public room",
	Long: `Rate a public room from 1 to 5. Rating the same room again replaces
your earlier vote.

  trophyvault rate 6f1c... 4`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		score, err := parseScore(args[1])
		if err != nil {
			return err
		}

		var resp api.Response[api.Rating]
		if err := apiClient.Post("/community/rate", api.RateRequest{RoomOwnerID: args[0], Score: score}, &resp); err != nil {
			return fmt.Errorf("rating room: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		fmt.Printf("Rated room %s: %d/5\n", resp.Data.RoomOwnerID, resp.Data.Score)
		return nil
	},
}

func parseScore(raw string) (int, error) {
	score, err := strconv.Atoi(raw)
	if err != nil || score < 1 || score > 5 {
		return 0, fmt.Errorf("score must be a whole number from 1 to 5, got %q", raw)
	}
	return score, nil
}

func init() {
	rootCmd.AddCommand(roomsCmd, rateCmd)
}
