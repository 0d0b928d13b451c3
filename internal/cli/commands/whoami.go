package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// NewWhoamiCmd creates the whoami command. By default it is a purely local
// view of the stored session; --remote fetches the fresh profile instead.
func NewWhoamiCmd() *cobra.Command {
	var serverAlias string
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd, serverAlias, remote)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Fetch the current profile from the server instead of the stored copy")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runWhoami(cmd *cobra.Command, serverAlias string, remote bool) error {
	env, err := newAccessEnv(serverAlias)
	if err != nil {
		return err
	}

	snap := env.authCtx.Snapshot()
	if !snap.IsAuthenticated {
		fmt.Printf("Not logged in to %s (%s).\n", env.server.Alias, env.server.URL)
		fmt.Println("Run 'clubdeck login' to authenticate.")
		return nil
	}

	user := snap.User
	if remote {
		resp, err := env.api.Me(cmd.Context())
		if err != nil {
			return err
		}
		if err := resp.Err("Failed to fetch profile"); err != nil {
			return err
		}
		fresh, err := client.Decode[models.User](resp)
		if err != nil {
			return err
		}
		user = &fresh
	}

	fmt.Printf("Logged in to %s (%s)\n", env.server.Alias, env.server.URL)
	fmt.Printf("  Name:   %s\n", user.Name)
	fmt.Printf("  Email:  %s\n", user.Email)
	fmt.Printf("  Role:   %s\n", user.Role)
	fmt.Printf("  Status: %s\n", user.ApprovalStatus)
	if user.ClubWing != "" {
		fmt.Printf("  Wing:   %s\n", user.ClubWing)
	}

	return nil
}
