package cli

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/iudanet/balancio/internal/client/data"
	"github.com/iudanet/balancio/internal/models"
)

func (c *Cli) newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your profile",
	}
	cmd.AddCommand(
		requiresAuth(c.newProfileShowCommand()),
		requiresAuth(c.newProfileUpdateCommand()),
		requiresAuth(c.newProfilePasswordCommand()),
		requiresAuth(c.newProfileAvatarCommand()),
		requiresAuth(c.newProfileSettingsCommand()),
		requiresAuth(c.newProfileActivityCommand()),
	)
	return cmd
}

func (c *Cli) newProfileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.users.Profile(cmd.Context())
			if err != nil {
				return err
			}
			c.printProfile(user)
			return nil
		},
	}
}

func (c *Cli) printProfile(u *models.User) {
	c.io.Println("=== Profile ===")
	c.io.Println()
	c.io.Printf("Name:   %s\n", u.DisplayName())
	c.io.Printf("Email:  %s\n", u.Email)
	c.io.Printf("ID:     %s\n", u.ID)
	if u.PhoneNumber != "" {
		c.io.Printf("Phone:  %s\n", u.PhoneNumber)
	}
	if u.Bio != "" {
		c.io.Printf("Bio:    %s\n", u.Bio)
	}
	if avatar := u.Avatar; avatar != "" {
		c.io.Printf("Avatar: %s\n", avatar)
	} else if u.ProfilePicture != "" {
		c.io.Printf("Avatar: %s\n", u.ProfilePicture)
	}
	if !u.CreatedAt.IsZero() {
		c.io.Printf("Member since: %s\n", formatDate(u.CreatedAt))
	}
	c.printSettings(u.Settings)
}

func (c *Cli) printSettings(s models.UserSettings) {
	c.io.Println()
	c.io.Println("Settings:")
	c.io.Printf("  Email notifications: %s\n", yesNo(s.EmailNotifications))
	c.io.Printf("  Budget alerts:       %s\n", yesNo(s.BudgetAlerts))
	c.io.Printf("  Monthly reports:     %s\n", yesNo(s.MonthlyReports))
	c.io.Printf("  Report format:       %s\n", s.ReportFormat)
}

func (c *Cli) newProfileUpdateCommand() *cobra.Command {
	var in models.ProfileInput

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.users.UpdateProfile(cmd.Context(), in)
			if err != nil {
				return err
			}
			c.io.Println("✓ Profile updated successfully!")
			c.io.Println()
			c.printProfile(user)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email")
	cmd.Flags().StringVar(&in.Bio, "bio", "", "Short bio")
	cmd.Flags().StringVar(&in.PhoneNumber, "phone", "", "Phone number")
	return cmd
}

func (c *Cli) newProfilePasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := c.io.ReadPassword("Current password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			next, err := c.readNewPassword("New password: ", "Confirm new password: ")
			if err != nil {
				return err
			}

			in := models.PasswordChangeInput{CurrentPassword: current, NewPassword: next}
			if err := c.users.ChangePassword(cmd.Context(), in); err != nil {
				return err
			}
			c.io.Println("✓ Password changed successfully!")
			return nil
		},
	}
}

func (c *Cli) newProfileAvatarCommand() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "avatar [image]",
		Short: "Upload a profile picture, or remove it with --remove",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remove {
				if _, err := c.users.DeleteAvatar(cmd.Context()); err != nil {
					return err
				}
				c.io.Println("✓ Avatar removed")
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("image file is required")
			}

			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			user, err := c.users.UploadAvatar(cmd.Context(), filepath.Base(path), imageContentType(path, content), content)
			if err != nil {
				return err
			}
			c.io.Println("✓ Avatar uploaded successfully!")
			if user != nil && user.Avatar != "" {
				c.io.Printf("Avatar: %s\n", user.Avatar)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the current avatar")
	return cmd
}

// imageContentType тип файла по расширению, иначе по содержимому
func imageContentType(path string, content []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(content)
}

func (c *Cli) newProfileSettingsCommand() *cobra.Command {
	var reportFormat string
	var emailNotifications, budgetAlerts, monthlyReports bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change notification and report settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("report-format") && !flags.Changed("email-notifications") &&
				!flags.Changed("budget-alerts") && !flags.Changed("monthly-reports") {
				user, err := c.users.Profile(cmd.Context())
				if err != nil {
					return err
				}
				c.printSettings(user.Settings)
				return nil
			}

			// незаданные флаги сохраняют текущие значения
			var current models.UserSettings
			if user := c.session.CurrentUser(cmd.Context()); user != nil {
				current = user.Settings
			}
			in := models.SettingsInput{
				ReportFormat:       current.ReportFormat,
				EmailNotifications: current.EmailNotifications,
				BudgetAlerts:       current.BudgetAlerts,
				MonthlyReports:     current.MonthlyReports,
			}
			if flags.Changed("report-format") {
				in.ReportFormat = reportFormat
			}
			if flags.Changed("email-notifications") {
				in.EmailNotifications = emailNotifications
			}
			if flags.Changed("budget-alerts") {
				in.BudgetAlerts = budgetAlerts
			}
			if flags.Changed("monthly-reports") {
				in.MonthlyReports = monthlyReports
			}

			user, err := c.users.UpdateSettings(cmd.Context(), in)
			if err != nil {
				return err
			}
			c.io.Println("✓ Settings saved successfully!")
			c.printSettings(user.Settings)
			return nil
		},
	}

	cmd.Flags().StringVar(&reportFormat, "report-format", "", "pdf or excel")
	cmd.Flags().BoolVar(&emailNotifications, "email-notifications", true, "Receive email notifications")
	cmd.Flags().BoolVar(&budgetAlerts, "budget-alerts", true, "Receive budget alerts")
	cmd.Flags().BoolVar(&monthlyReports, "monthly-reports", true, "Receive monthly reports")
	return cmd
}

func (c *Cli) newProfileActivityCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent account activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.users.Activity(cmd.Context(), limit)
			if err != nil {
				return err
			}

			c.io.Println("=== Recent Activity ===")
			c.io.Println()
			if len(items) == 0 {
				c.io.Println("No activity yet.")
				return nil
			}
			for i, item := range items {
				c.io.Printf("%d. %s\n", i+1, describeActivity(item))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", data.DefaultActivityLimit, "Number of entries")
	return cmd
}

// describeActivity строка записи ленты: описание и время, если они есть,
// иначе все поля в алфавитном порядке
func describeActivity(a models.Activity) string {
	text := ""
	for _, key := range []string{"description", "message", "action", "type"} {
		if v, ok := a[key]; ok && v != nil && fmt.Sprint(v) != "" {
			text = fmt.Sprint(v)
			break
		}
	}
	if text != "" {
		for _, key := range []string{"timestamp", "createdAt", "date"} {
			if v, ok := a[key]; ok && v != nil {
				return fmt.Sprintf("%s (%v)", text, v)
			}
		}
		return text
	}

	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%v", k, a[k])
	}
	return out
}
