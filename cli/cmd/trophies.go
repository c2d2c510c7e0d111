package cmd

import (
	"fmt"
	"net/url"

	"github.com/MarinusJvRe/TrophyVault/cli/internal/api"
	"github.com/MarinusJvRe/TrophyVault/cli/internal/output"
	"github.com/spf13/cobra"
)

var (
	flagSpecies  string
	flagFeatured bool
)

var trophiesCmd = &cobra.Command{
	Use:     "trophies",
	Aliases: []string{"ls"},
	Short:   "List your trophies, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		params := url.Values{}
		if flagSpecies != "" {
			params.Set("species", flagSpecies)
		}
		if flagFeatured {
			params.Set("featured", "true")
		}

		var resp api.Response[[]api.Trophy]
		if err := apiClient.Get("/trophies", params, &resp); err != nil {
			return fmt.Errorf("listing trophies: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.TrophyTable(resp.Data)
		return nil
	},
}

var weaponsCmd = &cobra.Command{
	Use:   "weapons",
	Short: "List your weapons",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var resp api.Response[[]api.Weapon]
		if err := apiClient.Get("/weapons", nil, &resp); err != nil {
			return fmt.Errorf("listing weapons: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.WeaponTable(resp.Data)
		return nil
	},
}

func init() {
	trophiesCmd.Flags().StringVar(&flagSpecies, "species", "", "Only trophies of this species")
	trophiesCmd.Flags().BoolVar(&flagFeatured, "featured", false, "Only featured trophies")
	rootCmd.AddCommand(trophiesCmd, weaponsCmd)
}
