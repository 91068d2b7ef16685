package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsvantner/minca/internal/models"
)

func newLoginCommand(app *App) *cobra.Command {
	var user string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Client.Login(cmd.Context(), user, password)
			if err != nil {
				if ve, ok := models.AsValidation(err); ok {
					printFieldErrors(ve.Fields)
				}
				return err
			}
			if err := app.Session.Save(token); err != nil {
				return fmt.Errorf("failed to store session: %w", err)
			}
			fmt.Printf("logged in as %s\n", user)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "login name (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newSignupCommand(app *App) *cobra.Command {
	var user string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := models.SignupInput{Login: user, Email: email, Password: password}
			token, err := app.Client.Signup(cmd.Context(), input)
			if err != nil {
				if ve, ok := models.AsValidation(err); ok {
					printFieldErrors(ve.Fields)
				}
				return err
			}
			if err := app.Session.Save(token); err != nil {
				return fmt.Errorf("failed to store session: %w", err)
			}
			fmt.Printf("account created for %s\n", user)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "login name (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session and server configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("server: %s\n", app.Config.Server.BaseURL)

			if _, err := app.Session.Token(); err != nil {
				if models.IsAuthMissing(err) {
					fmt.Println("session: not logged in")
					return nil
				}
				return err
			}

			if app.Session.IsExpired(time.Now()) {
				fmt.Println("session: expired, run `minca login`")
				return nil
			}
			if exp, err := app.Session.ExpiresAt(); err == nil && !exp.IsZero() {
				fmt.Printf("session: valid until %s\n", exp.Format(time.RFC3339))
			} else {
				fmt.Println("session: valid")
			}
			return nil
		},
	}
}
