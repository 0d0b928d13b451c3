package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/cli/guard"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// NewDashboardCmd creates the member dashboard command
func NewDashboardCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the member dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAccessEnv(serverAlias)
			if err != nil {
				return err
			}

			ok, err := env.authorize(cmd.Context(), "dashboard", guard.Protected(), os.Stdout)
			if err != nil || !ok {
				return err
			}

			return renderDashboard(cmd.Context(), env, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

// renderDashboard prints the member landing view: who you are, upcoming
// events and the latest notices. Also the degradation target when a
// non-admin hits an admin-only command.
func renderDashboard(ctx context.Context, env *accessEnv, out io.Writer) error {
	snap := env.authCtx.Snapshot()
	if snap.User != nil {
		fmt.Fprintf(out, "Welcome back, %s!\n\n", snap.User.Name)
	}

	eventsEnv, err := env.api.ListEvents(ctx)
	if err != nil {
		return err
	}
	if err := eventsEnv.Err("Failed to list events"); err != nil {
		return err
	}
	events, err := client.Decode[[]models.Event](eventsEnv)
	if err != nil {
		return err
	}

	noticesEnv, err := env.api.ListNotices(ctx)
	if err != nil {
		return err
	}
	if err := noticesEnv.Err("Failed to list notices"); err != nil {
		return err
	}
	notices, err := client.Decode[[]models.Notice](noticesEnv)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Upcoming events:")
	if len(events) == 0 {
		fmt.Fprintln(out, "  (none)")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, e := range events {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", e.Title, e.Location, e.StartsAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Latest notices:")
	if len(notices) == 0 {
		fmt.Fprintln(out, "  (none)")
	} else {
		for _, n := range notices {
			fmt.Fprintf(out, "  • %s (%s)\n", n.Title, n.PublishedAt.Format("2006-01-02"))
		}
	}

	return nil
}
