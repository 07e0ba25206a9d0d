// Package cli - команды storyctl, терминального клиента витрины и админки.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version подставляется при сборке через -ldflags.
var Version = "dev"

// NewRootCmd собирает дерево команд. out - вывод результатов, errOut - логи и ошибки.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	app := newApp(out, errOut)

	root := &cobra.Command{
		Use:           "storyctl",
		Short:         "Terminal client for the story site API",
		Long:          "storyctl reads the public catalog and manages stories, categories, donations and settings as an administrator.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return app.setup(cmd.Context(), func(name string) bool {
				f := cmd.Flags().Lookup(name)
				return f != nil && f.Changed
			})
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.apiURL, "api-url", "", "API base URL (env STORYCTL_API_URL)")
	pf.StringVar(&app.flags.stateFile, "state-file", "", "state file path (env STORYCTL_STATE_FILE)")
	pf.StringVar(&app.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&app.flags.json, "json", false, "print results as JSON")
	pf.BoolVar(&app.flags.traceAPI, "trace-api", false, "log backend requests to stderr")

	root.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newStoriesCmd(app),
		newCategoriesCmd(app),
		newDonationsCmd(app),
		newSettingsCmd(app),
		newThemeCmd(app),
		newFontSizeCmd(app),
		newUploadCmd(app),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "storyctl", Version)
		},
	}
}

// Execute запускает storyctl и возвращает код выхода.
func Execute(ctx context.Context) int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
