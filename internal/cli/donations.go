package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storysite/internal/models"
)

func newDonationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donations",
		Short: "Review donations (admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List donations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}
			donations, err := app.clients.Donations.AdminList(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(donations, func() error {
				rows := make([][]string, 0, len(donations))
				for _, d := range donations {
					method := ""
					if d.PaymentMethod != nil {
						method = *d.PaymentMethod
					}
					created := ""
					if d.CreatedAt != nil {
						created = d.CreatedAt.Format("2006-01-02 15:04")
					}
					rows = append(rows, []string{
						d.ID, d.DonorName, fmt.Sprintf("%.0f %s", d.Amount, d.Currency), method, string(d.Status), created,
					})
				}
				return app.table([]string{"ID", "DONOR", "AMOUNT", "METHOD", "STATUS", "CREATED"}, rows)
			})
		},
	}

	setStatus := &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Change donation status: PENDING, SUCCESS, FAILED",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}
			status := models.DonationStatus(strings.ToUpper(args[1]))
			if !status.Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}
			donation, err := app.clients.Donations.UpdateStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			return app.emit(donation, func() error {
				app.printf("Donation %s is now %s\n", args[0], status)
				return nil
			})
		},
	}

	cmd.AddCommand(list, setStatus)
	return cmd
}
