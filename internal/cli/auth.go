package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storysite/internal/store"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an administrator",
		Long:  "Log in as an administrator. Without --password the password is read from the first line of stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password is required")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			user, err := app.clients.Auth.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if !user.IsAdmin() {
				app.log.Warn().Str("username", username).Str("role", string(user.Role)).Msg("Login rejected: not an admin")
				return fmt.Errorf("account %s has no admin role", username)
			}
			if err := app.bundle.Auth.SetUser(cmd.Context(), user); err != nil {
				return fmt.Errorf("save login: %w", err)
			}
			app.log.Info().Str("username", user.Username).Msg("Logged in")
			return app.emit(user, func() error {
				app.printf("Logged in as %s\n", user.Username)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored login",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bundle.Auth.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear login: %w", err)
			}
			app.printf("Logged out\n")
			return nil
		},
	}
}

type whoami struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	Expired   bool   `json:"expired"`
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored login",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.bundle.Auth.User()
			if user == nil {
				return errNotLoggedIn
			}
			info := whoami{Username: user.Username, Role: string(user.Role), Expired: app.bundle.Auth.Expired(app.now())}
			if exp, ok := store.TokenExpiry(user.Token); ok {
				info.ExpiresAt = exp.Format("2006-01-02 15:04:05")
			}
			return app.emit(info, func() error {
				app.printf("%s (%s)", info.Username, info.Role)
				if info.ExpiresAt != "" {
					app.printf(", token expires %s", info.ExpiresAt)
				}
				if info.Expired {
					app.printf(" [expired]")
				}
				app.printf("\n")
				return nil
			})
		},
	}
}
