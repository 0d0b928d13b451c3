package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, serverAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a ClubDeck server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, email, password, serverAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set CLUBDECK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set CLUBDECK_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runLogin(cmd *cobra.Command, email, password, serverAlias string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("CLUBDECK_EMAIL")
	}
	if password == "" {
		password = os.Getenv("CLUBDECK_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or CLUBDECK_EMAIL env var)")
	}

	env, err := newAccessEnv(serverAlias)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or CLUBDECK_PASSWORD env var)")
		}
	}

	fmt.Printf("Logging in to %s (%s)...\n", env.server.Alias, env.server.URL)

	if err := env.authCtx.Login(cmd.Context(), email, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	snap := env.authCtx.Snapshot()
	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", snap.User.Name, snap.User.Email)
	if snap.User.Role == models.RoleAdmin {
		fmt.Println("  Role: Admin")
	}
	if snap.User.ApprovalStatus != models.ApprovalApproved {
		fmt.Printf("  Note: your membership status is %s; member areas stay locked until approval\n", snap.User.ApprovalStatus)
	}

	return nil
}
