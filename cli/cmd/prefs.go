package cmd

import (
	"fmt"

	"github.com/MarinusJvRe/TrophyVault/cli/internal/api"
	"github.com/MarinusJvRe/TrophyVault/cli/internal/output"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show your room preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var resp api.Response[*api.Preferences]
		if err := apiClient.Get("/preferences", nil, &resp); err != nil {
			return fmt.Errorf("fetching preferences: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.PreferencesView(resp.Data)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change room preferences",
	Long: `Change one or more preferences. Only the flags you pass are sent.

  trophyvault prefs set --theme manor --visibility public`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		update := preferencesUpdate(cmd)
		if update == (api.PreferencesUpdate{}) {
			return fmt.Errorf("nothing to change, pass at least one flag")
		}

		var resp api.Response[api.Preferences]
		if err := apiClient.Put("/preferences", update, &resp); err != nil {
			return fmt.Errorf("saving preferences: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.PreferencesView(&resp.Data)
		return nil
	},
}

// preferencesUpdate includes only flags the user actually set, so an empty
// --pursuit "" clears the field while an omitted one leaves it alone.
func preferencesUpdate(cmd *cobra.Command) api.PreferencesUpdate {
	var update api.PreferencesUpdate
	flags := map[string]**string{
		"theme":      &update.Theme,
		"units":      &update.Units,
		"visibility": &update.RoomVisibility,
		"scoring":    &update.ScoringSystem,
		"pursuit":    &update.Pursuit,
	}
	for name, target := range flags {
		if cmd.Flags().Changed(name) {
			value, _ := cmd.Flags().GetString(name)
			*target = &value
		}
	}
	return update
}

func init() {
	prefsSetCmd.Flags().String("theme", "", "Room theme: lodge, manor or minimal")
	prefsSetCmd.Flags().String("units", "", "Units: imperial or metric")
	prefsSetCmd.Flags().String("visibility", "", "Room visibility: public or private")
	prefsSetCmd.Flags().String("scoring", "", "Scoring system, e.g. SCI or Rowland Ward")
	prefsSetCmd.Flags().String("pursuit", "", "What you mostly hunt")
	prefsCmd.AddCommand(prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}
