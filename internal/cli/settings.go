package cli

import (
	"github.com/spf13/cobra"

	"storysite/internal/models"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Site settings",
	}

	var admin bool
	get := &cobra.Command{
		Use:   "get",
		Short: "Show site settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				settings *models.SiteSettings
				err      error
			)
			if admin {
				if err := app.requireAdmin(); err != nil {
					return err
				}
				settings, err = app.clients.Settings.GetAdmin(cmd.Context())
			} else {
				settings, err = app.clients.Settings.GetPublic(cmd.Context())
			}
			if err != nil {
				return err
			}
			return app.emit(settings, func() error {
				return app.table([]string{"KEY", "VALUE"}, [][]string{
					{"siteName", settings.SiteName},
					{"logoUrl", settings.Logo()},
					{"adminHiddenLoginPath", settings.AdminHiddenLoginPath},
					{"copyProtectionEnabled", yesNo(settings.CopyProtectionEnabled)},
					{"scrapingProtectionEnabled", yesNo(settings.ScrapingProtectionEnabled)},
				})
			})
		},
	}
	get.Flags().BoolVar(&admin, "admin", false, "read the admin view of settings")

	cmd.AddCommand(get)
	return cmd
}
