package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clubdeck-dev/clubdeck/internal/cli/commands"
	"github.com/clubdeck-dev/clubdeck/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "clubdeck",
	Short: "ClubDeck - club management from the command line",
	Long: `ClubDeck CLI - Browse club content and manage your membership.

Public content (events, notices, alumni, gallery) is open to everyone.
Member and admin areas require login; admin commands additionally require
the admin role.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(os.Getenv("CLUBDECK_LOG_LEVEL"), "console")
	},
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("clubdeck version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewSelectServerCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewDashboardCmd())
	rootCmd.AddCommand(commands.NewDirectoryCmd())
	rootCmd.AddCommand(commands.NewEventsCmd())
	rootCmd.AddCommand(commands.NewNoticesCmd())
	rootCmd.AddCommand(commands.NewMembersCmd())
	rootCmd.AddCommand(commands.NewAlumniCmd())
	rootCmd.AddCommand(commands.NewGalleryCmd())
	rootCmd.AddCommand(commands.NewAdvisorsCmd())
	rootCmd.AddCommand(commands.NewExecutivesCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
