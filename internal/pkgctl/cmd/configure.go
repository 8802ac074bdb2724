package cmd

import (
	"github.com/sorenmh/infrastructure-shared/package-browser/internal/shared/config"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the packages API connection",
	Long: `Configure the packages API URL and token interactively or via flags.

This command will prompt for the settings that are not provided as flags. The
token is read without echo. Settings are saved to ~/.pkgdeck/config.yaml by
default; configured applications are kept.

Example:
  pkgctl configure
  pkgctl configure --url https://privatecloud.mendixcloud.com --token <token>`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	flagURL, _ := cmd.Flags().GetString("url")
	flagToken, _ := cmd.Flags().GetString("token")

	// Get current values from the config file
	current, err := config.ReadFile()
	if err != nil {
		return err
	}

	var req *config.ConfigureRequest

	// If flags provided, use them directly
	if flagURL != "" && flagToken != "" {
		req = &config.ConfigureRequest{
			URL:   flagURL,
			Token: flagToken,
		}
	} else {
		// Run interactive configuration
		req, err = config.ConfigureInteractive(current.URL, current.Token)
		if err != nil {
			return err
		}

		// Override with any provided flags
		if flagURL != "" {
			req.URL = flagURL
		}
		if flagToken != "" {
			req.Token = flagToken
		}
	}

	return config.SaveConfig(cmd.OutOrStdout(), *req)
}
