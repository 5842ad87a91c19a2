package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/balancio/internal/client/storage"
)

func (c *Cli) newSignupCommand() *cobra.Command {
	var firstName, lastName, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.io.Println("=== Sign Up ===")
			c.io.Println()

			var err error
			if firstName, err = c.ask(firstName, "First name: "); err != nil {
				return err
			}
			if lastName, err = c.ask(lastName, "Last name: "); err != nil {
				return err
			}
			if email, err = c.ask(email, "Email: "); err != nil {
				return err
			}
			password, err := c.readNewPassword("Password: ", "Confirm password: ")
			if err != nil {
				return err
			}

			user, loggedIn, err := c.authService.Signup(ctx, firstName, lastName, email, password)
			if err != nil {
				return err
			}
			c.rememberEmail(cmd, user.Email)

			c.io.Println()
			c.io.Println("✓ Registration successful!")
			c.io.Printf("Name:  %s\n", user.DisplayName())
			c.io.Printf("Email: %s\n", user.Email)
			if !loggedIn {
				c.io.Println()
				c.io.Println("Run 'balancio login' to sign in.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&email, "email", "", "Email")
	return cmd
}

func (c *Cli) newLoginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.io.Println("=== Login ===")
			c.io.Println()

			prompt := "Email: "
			last, err := c.prefs.GetPreference(ctx, storage.PrefLastEmail)
			if err != nil && !errors.Is(err, storage.ErrPreferenceNotFound) {
				c.logger.Warn("failed to read last email", "error", err)
			}
			if last != "" {
				prompt = fmt.Sprintf("Email [%s]: ", last)
			}
			if email, err = c.ask(email, prompt); err != nil {
				return err
			}
			if email == "" {
				email = last
			}

			password, err := c.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			user, err := c.authService.Login(ctx, email, password)
			if err != nil {
				return err
			}
			c.rememberEmail(cmd, user.Email)

			c.io.Println()
			c.io.Println("✓ Login successful!")
			c.io.Printf("Welcome, %s\n", user.DisplayName())
			c.io.Println()
			c.io.Println("Your session has been saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email")
	return cmd
}

func (c *Cli) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.authService.Logout(cmd.Context()); err != nil {
				return err
			}
			c.io.Println("✓ Logged out successfully")
			return nil
		},
	}
}

func (c *Cli) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := c.authService.Status(cmd.Context())

			c.io.Println("=== Authentication Status ===")
			c.io.Println()

			if !st.Authenticated {
				c.io.Println("Status: Not authenticated")
				c.io.Println()
				c.io.Println("Run 'balancio login' to authenticate.")
				return nil
			}

			c.io.Println("Status: Authenticated")
			if st.User != nil {
				c.io.Printf("User:     %s\n", st.User.DisplayName())
				c.io.Printf("Email:    %s\n", st.User.Email)
			}
			c.io.Printf("Currency: %s\n", c.currency.Code)
			c.io.Printf("Server:   %s\n", c.cfg.ServerURL)

			if st.Claims == nil {
				return nil
			}
			if st.Claims.ExpiresAt.IsZero() {
				return nil
			}
			c.io.Printf("Token expires: %s\n", st.Claims.ExpiresAt.Format(time.RFC3339))
			if remaining := time.Until(st.Claims.ExpiresAt); remaining > 0 {
				c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
			} else {
				c.io.Println("⚠️  Token has expired. Please login again.")
			}
			return nil
		},
	}
}

// readNewPassword запрашивает пароль дважды и сверяет ввод
func (c *Cli) readNewPassword(prompt, confirmPrompt string) (string, error) {
	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := c.io.ReadPassword(confirmPrompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

// rememberEmail сохраняет email для подсказки при следующем входе
func (c *Cli) rememberEmail(cmd *cobra.Command, email string) {
	if email == "" {
		return
	}
	if err := c.prefs.SetPreference(cmd.Context(), storage.PrefLastEmail, email); err != nil {
		c.logger.Warn("failed to save last email", "error", err)
	}
}
