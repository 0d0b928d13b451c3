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

// NewDirectoryCmd creates the member directory command
func NewDirectoryCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Browse fellow approved members",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAccessEnv(serverAlias)
			if err != nil {
				return err
			}

			ok, err := env.authorize(cmd.Context(), "directory", guard.Protected(), os.Stdout)
			if err != nil || !ok {
				return err
			}

			resp, err := env.api.Directory(cmd.Context())
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to list member directory"); err != nil {
				return err
			}

			members, err := client.Decode[[]models.User](resp)
			if err != nil {
				return err
			}

			if len(members) == 0 {
				fmt.Println("No approved members yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tWING\tDEPARTMENT\tEMAIL")
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Name, m.ClubWing, m.Department, m.Email)
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}
