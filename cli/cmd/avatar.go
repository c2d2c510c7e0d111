package cmd

import (
	"fmt"
	"os"

	"github.com/MarinusJvRe/TrophyVault/cli/internal/api"
	"github.com/MarinusJvRe/TrophyVault/cli/internal/output"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var avatarCmd = &cobra.Command{
	Use:   "avatar <image-file>",
	Short: "Upload a profile picture (JPEG, PNG, WebP or GIF)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		path := args[0]
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}

		var resp api.Response[api.UploadResult]
		if err := apiClient.Upload("/profile/upload-image", "image", path, &resp); err != nil {
			return fmt.Errorf("uploading avatar: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		fmt.Printf("Uploaded %s (%s) → %s\n", info.Name(), humanize.IBytes(uint64(info.Size())), resp.Data.ImageURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(avatarCmd)
}
