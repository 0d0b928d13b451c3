package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/cli/guard"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// NewMembersCmd creates the members command group (admin member management)
func NewMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage club members (admin only)",
	}

	cmd.AddCommand(newMembersListCmd())
	cmd.AddCommand(newMembersStatusCmd("approve", models.ApprovalApproved))
	cmd.AddCommand(newMembersStatusCmd("reject", models.ApprovalRejected))
	cmd.AddCommand(newMembersSetRoleCmd())
	cmd.AddCommand(newMembersRemoveCmd())
	cmd.AddCommand(newMembersRestoreCmd())

	return cmd
}

// adminGate wraps the shared resolve-then-authorize sequence for admin commands
func adminGate(cmd *cobra.Command, serverAlias, target string) (*accessEnv, bool, error) {
	env, err := newAccessEnv(serverAlias)
	if err != nil {
		return nil, false, err
	}

	ok, err := env.authorize(cmd.Context(), target, guard.Protected(models.RoleAdmin), os.Stdout)
	return env, ok, err
}

func newMembersListCmd() *cobra.Command {
	var serverAlias string
	var includeDeleted bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List club members",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := adminGate(cmd, serverAlias, "members ls")
			if err != nil || !ok {
				return err
			}

			resp, err := env.api.ListMembers(cmd.Context(), includeDeleted)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to list members"); err != nil {
				return err
			}

			members, err := client.Decode[[]models.User](resp)
			if err != nil {
				return err
			}

			if len(members) == 0 {
				fmt.Println("No members found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tWING")
			fmt.Fprintln(w, "──\t────\t─────\t────\t──────\t────")
			for _, m := range members {
				name := m.Name
				if m.Deleted {
					name += " (deleted)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					m.ID, name, m.Email, m.Role, m.ApprovalStatus, m.ClubWing)
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeDeleted, "deleted", false, "Include soft-deleted members")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func newMembersStatusCmd(verb string, status models.ApprovalStatus) *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <member-id>", verb),
		Short: fmt.Sprintf("Set a member's approval status to %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := adminGate(cmd, serverAlias, "members "+verb)
			if err != nil || !ok {
				return err
			}

			resp, err := env.api.UpdateMemberStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to update member status"); err != nil {
				return err
			}

			fmt.Printf("✓ Member %s is now %s\n", args[0], status)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func newMembersSetRoleCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "set-role <member-id> <role>",
		Short: "Set a member's role (user or admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := models.Role(args[1])
			if !role.Valid() {
				return fmt.Errorf("invalid role '%s', must be 'user' or 'admin'", args[1])
			}

			env, ok, err := adminGate(cmd, serverAlias, "members set-role")
			if err != nil || !ok {
				return err
			}

			resp, err := env.api.UpdateMemberRole(cmd.Context(), args[0], role)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to update member role"); err != nil {
				return err
			}

			fmt.Printf("✓ Member %s is now a %s\n", args[0], role)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func newMembersRemoveCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "rm <member-id>",
		Short: "Soft-delete a member (restorable)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := adminGate(cmd, serverAlias, "members rm")
			if err != nil || !ok {
				return err
			}

			resp, err := env.api.DeleteMember(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to delete member"); err != nil {
				return err
			}

			fmt.Printf("✓ Member %s removed (run 'clubdeck members restore %s' to undo)\n", args[0], args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func newMembersRestoreCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "restore <member-id>",
		Short: "Restore a soft-deleted member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := adminGate(cmd, serverAlias, "members restore")
			if err != nil || !ok {
				return err
			}

			resp, err := env.api.RestoreMember(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to restore member"); err != nil {
				return err
			}

			fmt.Printf("✓ Member %s restored\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}
