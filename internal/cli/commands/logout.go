package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd, serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runLogout(cmd *cobra.Command, serverAlias string) error {
	env, err := newAccessEnv(serverAlias)
	if err != nil {
		return err
	}

	// Local sign-out is guaranteed; the server notification inside Logout
	// is best-effort and never fails the command
	env.authCtx.Logout(cmd.Context())

	fmt.Println("✓ Logged out.")
	return nil
}
