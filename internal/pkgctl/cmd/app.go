package cmd

import (
	"fmt"

	"github.com/sorenmh/infrastructure-shared/package-browser/internal/pkgctl/output"
	"github.com/sorenmh/infrastructure-shared/package-browser/internal/shared/config"
	"github.com/sorenmh/infrastructure-shared/package-browser/models"
	"github.com/spf13/cobra"
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Manage applications",
	Long:  `Add, list, and remove the applications pkgctl knows by name.`,
}

var appAddCmd = &cobra.Command{
	Use:   "add [name] [app-id]",
	Short: "Add an application",
	Long: `Add an application under a short name. Adding an existing name replaces its app ID.

Example:
  pkgctl app add ms-emprestimo-pessoal ac763fd5-d025-40cf-8b05-14bfc3cc299a`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.RegisterAppRequest{Name: args[0], AppID: args[1]}
		req.Normalize()
		if err := models.Validate(&req); err != nil {
			return err
		}

		if err := config.SetApp(req.Name, req.AppID); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		output.Success(out, "Application added successfully")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Name:   %s\n", req.Name)
		fmt.Fprintf(out, "  App ID: %s\n", req.AppID)

		return nil
	},
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications",
	Long:  `List all configured applications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := getOutputFormat()
		if err != nil {
			return err
		}

		apps, err := config.Apps()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		// Check if there are no applications
		if len(apps) == 0 && format == output.FormatTable {
			output.Info(out, "No applications configured")
			return nil
		}

		return output.Print(out, format, apps, func() {
			headers := []string{"NAME", "APP ID"}
			rows := make([][]string, 0, len(apps))

			for _, app := range apps {
				rows = append(rows, []string{app.Name, app.AppID})
			}

			output.PrintTable(out, headers, rows)
		})
	},
}

var appRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.RemoveApp(args[0]); err != nil {
			return err
		}

		output.Success(cmd.OutOrStdout(), fmt.Sprintf("Application %s removed", args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(appCmd)
	appCmd.AddCommand(appAddCmd)
	appCmd.AddCommand(appListCmd)
	appCmd.AddCommand(appRemoveCmd)
}
