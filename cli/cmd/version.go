package cmd

import (
	"github.com/MarinusJvRe/TrophyVault/cli/internal/api"
	"github.com/MarinusJvRe/TrophyVault/cli/internal/output"
	"github.com/spf13/cobra"
)

// Version is set at build time with
// -ldflags "-X github.com/MarinusJvRe/TrophyVault/cli/cmd.Version=1.2.3".
var Version = "dev"

type versionReport struct {
	CLI        string           `json:"cli"`
	APIVersion string           `json:"apiVersion"`
	Server     *api.VersionInfo `json:"server,omitempty"`
	Compatible bool             `json:"compatible"`
	ServerErr  string           `json:"serverError,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the CLI version and check it against the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp api.Response[api.VersionInfo]
		report := versionReport{CLI: Version, APIVersion: api.APIVersion}
		if err := apiClient.Get("/version", nil, &resp); err != nil {
			report.ServerErr = err.Error()
		} else {
			report.Server = &resp.Data
			report.Compatible = resp.Data.Compatible()
		}

		if flagJSON {
			output.JSON(report)
			return nil
		}
		output.VersionInfo(Version, report.Server)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
