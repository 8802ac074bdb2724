package cmd

import (
	"go.uber.org/zap"

	"github.com/sorenmh/infrastructure-shared/package-browser/internal/pkgctl/output"
	"github.com/sorenmh/infrastructure-shared/package-browser/internal/shared/config"
	"github.com/sorenmh/infrastructure-shared/package-browser/logging"
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	debug        bool
)

var rootCmd = &cobra.Command{
	Use:   "pkgctl",
	Short: "Browse deployment packages of your applications",
	Long: `pkgctl is a command-line tool for looking up the deployment packages
built for your applications.

It allows you to:
  - Keep a list of applications by name
  - List the latest packages of an application with size and expiry
  - Export package listings as JSON or YAML

Configuration:
  Environment variables:
    PKGDECK_URL    - packages API base URL (required)
    PKGDECK_TOKEN  - packages API token (required)

  Config file (~/.pkgdeck/config.yaml):
    url: https://privatecloud.mendixcloud.com
    token: <personal access token>
    apps:
      ms-emprestimo-pessoal: ac763fd5-d025-40cf-8b05-14bfc3cc299a

  CLI flags override environment variables and config file.

Example usage:
  pkgctl configure
  pkgctl app add ms-emprestimo-pessoal ac763fd5-d025-40cf-8b05-14bfc3cc299a
  pkgctl packages ms-emprestimo-pessoal --limit 10`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.InitConfig()
	config.AddFlags(rootCmd)

	// Add pkgctl-specific flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log API calls to stderr")
}

// getOutputFormat returns the validated output format
func getOutputFormat() (output.Format, error) {
	return output.ParseFormat(outputFormat)
}

// newLogger returns a console logger on stderr when --debug is set
func newLogger() *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := logging.New(logging.Config{
		ServiceName: "pkgctl",
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
