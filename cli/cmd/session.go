package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MarinusJvRe/TrophyVault/cli/internal/api"
	"github.com/MarinusJvRe/TrophyVault/cli/internal/config"
	"github.com/MarinusJvRe/TrophyVault/cli/internal/output"
	"github.com/spf13/cobra"
)

var flagToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a session token for your TrophyVault server",
	Long: `Sign in through the web app, copy the session token and hand it to the CLI:

  trophyvault login --token eyJhbGciOi...

The token is checked against the server before it is saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagToken == "" {
			return fmt.Errorf("--token is required")
		}

		user, err := currentUser(api.NewClient(cfg.ServerURL, flagToken))
		if err != nil {
			return err
		}

		cfg.Token = flagToken
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Signed in to %s as %s %s\n", cfg.ServerURL, user.FirstName, user.LastName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Long:  "Forget the stored session token. The server URL stays saved for the next login.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ForgetToken(); err != nil {
			return fmt.Errorf("updating config: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in hunter and whether their room is public",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		user, err := currentUser(apiClient)
		if err != nil {
			return err
		}
		var prefs api.Response[*api.Preferences]
		if err := apiClient.Get("/preferences", nil, &prefs); err != nil {
			return fmt.Errorf("fetching preferences: %w", err)
		}

		if flagJSON {
			output.JSON(map[string]any{"user": user, "preferences": prefs.Data})
			return nil
		}
		output.UserInfo(*user, prefs.Data)
		return nil
	},
}

// currentUser resolves the token's owner, turning a 401 into a hint to log in again.
func currentUser(client *api.Client) (*api.User, error) {
	var resp api.Response[api.User]
	if err := client.Get("/auth/user", nil, &resp); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, fmt.Errorf("session token rejected by the server, sign in on the web app and run login again")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return &resp.Data, nil
}

func init() {
	loginCmd.Flags().StringVar(&flagToken, "token", "", "Session token (JWT) issued by the server")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
