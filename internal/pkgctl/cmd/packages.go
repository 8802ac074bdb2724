package cmd

import (
	"fmt"
	"time"

	"github.com/sorenmh/infrastructure-shared/package-browser/display"
	"github.com/sorenmh/infrastructure-shared/package-browser/internal/pkgctl/output"
	"github.com/sorenmh/infrastructure-shared/package-browser/internal/shared/config"
	"github.com/sorenmh/infrastructure-shared/package-browser/mendix"
	"github.com/sorenmh/infrastructure-shared/package-browser/models"
	"github.com/spf13/cobra"
)

// packagesResult is the json/yaml shape of a package listing
type packagesResult struct {
	App        config.App           `json:"app"`
	Packages   []models.PackageView `json:"packages"`
	Pagination models.Pagination    `json:"pagination"`
	Message    string               `json:"message"`
}

var packagesCmd = &cobra.Command{
	Use:   "packages [app-name|app-id]",
	Short: "List deployment packages for an application",
	Long: `List the deployment packages of an application, newest first.

The application can be given by its configured name or by its app ID. By default
the latest 3 packages are shown; --limit 0 uses the API's default page size.

Example:
  pkgctl packages ms-emprestimo-pessoal
  pkgctl packages ms-emprestimo-pessoal --limit 20 --offset 20
  pkgctl packages ac763fd5-d025-40cf-8b05-14bfc3cc299a -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runPackages,
}

func init() {
	rootCmd.AddCommand(packagesCmd)

	packagesCmd.Flags().Int("limit", 3, "Maximum number of packages (0 for the API default)")
	packagesCmd.Flags().Int("offset", 0, "Number of packages to skip")
}

func runPackages(cmd *cobra.Command, args []string) error {
	// Validate configuration
	if err := config.ValidateConfig(); err != nil {
		return err
	}

	format, err := getOutputFormat()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	if limit == 0 {
		limit = mendix.DefaultLimit
	}

	app, err := config.ResolveApp(args[0])
	if err != nil {
		return err
	}

	source := mendix.Instrument(mendix.NewClient(config.GetURL(), config.GetToken()), newLogger())
	page, err := source.FetchPackages(cmd.Context(), app.AppID, limit, offset)
	if err != nil {
		return err
	}

	formatter := display.NewFormatter(config.GetLocale(), time.Local)
	views := formatter.PackageViews(page.Packages, time.Now())
	message := fmt.Sprintf("%d packages found for %s", len(views), app.Name)

	out := cmd.OutOrStdout()
	result := packagesResult{
		App:        app,
		Packages:   views,
		Pagination: page.Pagination,
		Message:    message,
	}

	return output.Print(out, format, result, func() {
		if len(views) == 0 {
			output.Info(out, message)
			return
		}

		headers := []string{"MODEL VERSION", "RUNTIME", "CREATED", "SIZE", "EXPIRY", "FILE"}
		rows := make([][]string, 0, len(views))

		for _, v := range views {
			rows = append(rows, []string{
				v.ModelVersion,
				v.RuntimeVersion,
				v.CreatedOnDisplay,
				v.FileSizeDisplay,
				output.Badge(display.Severity(v.Expiry.Severity), v.Expiry.Label),
				v.FileName,
			})
		}

		output.PrintTable(out, headers, rows)
		fmt.Fprintln(out)
		output.Info(out, message)
	})
}
