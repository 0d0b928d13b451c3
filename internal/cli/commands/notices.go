package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/cli/guard"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// NewNoticesCmd creates the notices command group
func NewNoticesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notices",
		Short: "Browse and publish club notices",
	}

	cmd.AddCommand(newNoticesListCmd())
	cmd.AddCommand(newNoticesCreateCmd())

	return cmd
}

func newNoticesListCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all notices",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAccessEnv(serverAlias)
			if err != nil {
				return err
			}

			resp, err := env.api.ListNotices(cmd.Context())
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to list notices"); err != nil {
				return err
			}

			notices, err := client.Decode[[]models.Notice](resp)
			if err != nil {
				return err
			}

			if len(notices) == 0 {
				fmt.Println("No notices found.")
				return nil
			}

			for _, n := range notices {
				fmt.Printf("• %s (%s)\n", n.Title, n.PublishedAt.Format("2006-01-02"))
				if n.Body != "" {
					fmt.Printf("  %s\n", n.Body)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func newNoticesCreateCmd() *cobra.Command {
	var (
		serverAlias string
		form        client.NoticeForm
		attachments []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new notice (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAccessEnv(serverAlias)
			if err != nil {
				return err
			}

			ok, err := env.authorize(cmd.Context(), "notices create", guard.Protected(models.RoleAdmin), os.Stdout)
			if err != nil || !ok {
				return err
			}

			if form.Title == "" {
				return fmt.Errorf("title is required (use --title)")
			}

			var files []client.FilePart
			for _, path := range attachments {
				part, err := client.FileFromPath("attachments", path)
				if err != nil {
					return err
				}
				files = append(files, part)
			}

			resp, err := env.api.CreateNotice(cmd.Context(), &form, files)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to create notice"); err != nil {
				return err
			}

			fmt.Printf("✓ Notice '%s' published\n", form.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "Notice title")
	cmd.Flags().StringVar(&form.Body, "body", "", "Notice body")
	cmd.Flags().StringArrayVar(&attachments, "attachment", nil, "Path to an attachment (repeatable)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}
