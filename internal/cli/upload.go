package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"storysite/internal/models"
)

func newUploadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload images (admin)",
	}
	kinds := map[string]func(context.Context, string, io.Reader) (*models.UploadResponse, error){
		"cover": func(ctx context.Context, name string, r io.Reader) (*models.UploadResponse, error) {
			return app.clients.Uploads.Cover(ctx, name, r)
		},
		"image": func(ctx context.Context, name string, r io.Reader) (*models.UploadResponse, error) {
			return app.clients.Uploads.Image(ctx, name, r)
		},
	}
	for _, kind := range []string{"cover", "image"} {
		upload := kinds[kind]
		cmd.AddCommand(&cobra.Command{
			Use:   kind + " FILE",
			Short: "Upload a " + kind + " image",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.requireAdmin(); err != nil {
					return err
				}
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()

				resp, err := upload(cmd.Context(), filepath.Base(args[0]), f)
				if err != nil {
					return err
				}
				return app.emit(resp, func() error {
					app.printf("%s\n", resp.URL)
					return nil
				})
			},
		})
	}
	return cmd
}
