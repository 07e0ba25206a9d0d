package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"storysite/internal/store"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Reading theme stored for this terminal",
	}
	show := func() error {
		theme := app.bundle.Theme.Theme()
		return app.emit(map[string]store.Theme{"theme": theme}, func() error {
			app.printf("%s\n", theme)
			return nil
		})
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the theme",
		RunE:  func(cmd *cobra.Command, args []string) error { return show() },
	}
	set := &cobra.Command{
		Use:   "set light|dark",
		Short: "Set the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, ok := store.ParseTheme(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q", args[0])
			}
			if err := app.bundle.Theme.SetTheme(cmd.Context(), theme); err != nil {
				return err
			}
			return show()
		},
	}
	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.bundle.Theme.Toggle(cmd.Context()); err != nil {
				return err
			}
			return show()
		},
	}

	cmd.AddCommand(get, set, toggle)
	return cmd
}

func newFontSizeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "font-size",
		Short: "Reader font size stored for this terminal",
	}
	show := func() error {
		size := app.bundle.FontSize.Size()
		return app.emit(map[string]int{"fontSize": size}, func() error {
			app.printf("%dpx\n", size)
			return nil
		})
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the font size",
		RunE:  func(cmd *cobra.Command, args []string) error { return show() },
	}
	set := &cobra.Command{
		Use:   "set SIZE|increase|decrease|reset",
		Short: fmt.Sprintf("Set the font size (%d-%d px)", store.MinFontSize, store.MaxFontSize),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fonts := app.bundle.FontSize
			ctx := cmd.Context()
			var err error
			switch args[0] {
			case "increase":
				_, err = fonts.Increase(ctx)
			case "decrease":
				_, err = fonts.Decrease(ctx)
			case "reset":
				err = fonts.Reset(ctx)
			default:
				size, convErr := strconv.Atoi(args[0])
				if convErr != nil {
					return fmt.Errorf("invalid font size %q", args[0])
				}
				_, err = fonts.SetSize(ctx, size)
			}
			if err != nil {
				return err
			}
			return show()
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}
