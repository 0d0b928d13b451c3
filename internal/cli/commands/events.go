package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/cli/guard"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// NewEventsCmd creates the events command group
func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse and manage club events",
	}

	cmd.AddCommand(newEventsListCmd())
	cmd.AddCommand(newEventsCreateCmd())
	cmd.AddCommand(newEventsUpdateCmd())

	return cmd
}

func newEventsListCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all events",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAccessEnv(serverAlias)
			if err != nil {
				return err
			}

			resp, err := env.api.ListEvents(cmd.Context())
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to list events"); err != nil {
				return err
			}

			events, err := client.Decode[[]models.Event](resp)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println("No events found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tLOCATION\tSTARTS\tATTACHMENTS")
			fmt.Fprintln(w, "─────\t────────\t──────\t───────────")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					e.Title,
					e.Location,
					e.StartsAt.Format("2006-01-02 15:04"),
					len(e.AttachmentURLs),
				)
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func newEventsCreateCmd() *cobra.Command {
	var (
		serverAlias string
		form        client.EventForm
		startsAt    string
		endsAt      string
		coverPath   string
		attachments []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new event (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAccessEnv(serverAlias)
			if err != nil {
				return err
			}

			ok, err := env.authorize(cmd.Context(), "events create", guard.Protected(models.RoleAdmin), os.Stdout)
			if err != nil || !ok {
				return err
			}

			if form.Title == "" {
				return fmt.Errorf("title is required (use --title)")
			}

			form.StartsAt, err = parseEventTime(startsAt)
			if err != nil {
				return err
			}
			if endsAt != "" {
				form.EndsAt, err = parseEventTime(endsAt)
				if err != nil {
					return err
				}
			}

			files, err := collectEventFiles(coverPath, attachments)
			if err != nil {
				return err
			}

			resp, err := env.api.CreateEvent(cmd.Context(), &form, files)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to create event"); err != nil {
				return err
			}

			fmt.Printf("✓ Event '%s' created\n", form.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "Event title")
	cmd.Flags().StringVar(&form.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&form.Location, "location", "", "Event location")
	cmd.Flags().StringVar(&startsAt, "starts", "", "Start time (2006-01-02 15:04)")
	cmd.Flags().StringVar(&endsAt, "ends", "", "End time (2006-01-02 15:04)")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Path to a cover image")
	cmd.Flags().StringArrayVar(&attachments, "attachment", nil, "Path to an attachment (repeatable)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func newEventsUpdateCmd() *cobra.Command {
	var (
		serverAlias string
		form        client.EventForm
		startsAt    string
		endsAt      string
		coverPath   string
		attachments []string
	)

	cmd := &cobra.Command{
		Use:   "update <event-id>",
		Short: "Update an event (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := adminGate(cmd, serverAlias, "events update")
			if err != nil || !ok {
				return err
			}

			if startsAt != "" {
				form.StartsAt, err = parseEventTime(startsAt)
				if err != nil {
					return err
				}
			}
			if endsAt != "" {
				form.EndsAt, err = parseEventTime(endsAt)
				if err != nil {
					return err
				}
			}

			files, err := collectEventFiles(coverPath, attachments)
			if err != nil {
				return err
			}

			resp, err := env.api.UpdateEvent(cmd.Context(), args[0], &form, files)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to update event"); err != nil {
				return err
			}

			fmt.Printf("✓ Event %s updated\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "Event title")
	cmd.Flags().StringVar(&form.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&form.Location, "location", "", "Event location")
	cmd.Flags().StringVar(&startsAt, "starts", "", "Start time (2006-01-02 15:04)")
	cmd.Flags().StringVar(&endsAt, "ends", "", "End time (2006-01-02 15:04)")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Path to a replacement cover image")
	cmd.Flags().StringArrayVar(&attachments, "attachment", nil, "Path to a replacement attachment (repeatable)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func parseEventTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("start time is required (use --starts '2006-01-02 15:04')")
	}

	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time '%s', expected format '2006-01-02 15:04'", value)
	}
	return t, nil
}

func collectEventFiles(coverPath string, attachments []string) ([]client.FilePart, error) {
	var files []client.FilePart

	if coverPath != "" {
		part, err := client.FileFromPath("coverImage", coverPath)
		if err != nil {
			return nil, err
		}
		files = append(files, part)
	}

	for _, path := range attachments {
		part, err := client.FileFromPath("attachments", path)
		if err != nil {
			return nil, err
		}
		files = append(files, part)
	}

	return files, nil
}
