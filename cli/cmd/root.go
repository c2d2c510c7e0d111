package cmd

import (
	"fmt"
	"os"

	"github.com/MarinusJvRe/TrophyVault/cli/internal/api"
	"github.com/MarinusJvRe/TrophyVault/cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagJSON      bool
	flagServerURL string

	cfg       *config.Config
	apiClient *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "trophyvault",
	Short: "Your TrophyVault trophy room from the terminal",
	Long: `TrophyVault CLI lets you browse your trophies and weapons, check your
room rating and visit other hunters' public rooms.

Get started:
  trophyvault login --token X   Store a session token
  trophyvault trophies          List your trophies
  trophyvault rooms             Browse public trophy rooms`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServerURL != "" {
			cfg.ServerURL = flagServerURL
		}
		apiClient = api.NewClient(cfg.ServerURL, cfg.Token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from config or http://localhost:8080)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func requireAuth() error {
	if cfg == nil || !cfg.HasToken() {
		return fmt.Errorf("not signed in, run \"trophyvault login --token <jwt>\" first")
	}
	return nil
}
