package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// The public content pages: alumni, gallery, advisors and the executive
// body. Listing is open to everyone; adding entries is admin-only.

// NewAlumniCmd creates the alumni command group
func NewAlumniCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alumni",
		Short: "Browse and manage alumni profiles",
	}

	cmd.AddCommand(newContentListCmd("List alumni profiles",
		func(ctx context.Context, env *accessEnv) error {
			resp, err := env.api.ListAlumni(ctx)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to list alumni"); err != nil {
				return err
			}

			alumni, err := client.Decode[[]models.AlumniProfile](resp)
			if err != nil {
				return err
			}

			if len(alumni) == 0 {
				fmt.Println("No alumni profiles found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tYEAR\tOCCUPATION\tCOMPANY")
			for _, a := range alumni {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", a.Name, a.GraduationYear, a.Occupation, a.Company)
			}
			w.Flush()
			return nil
		}))

	cmd.AddCommand(newAlumniAddCmd())

	return cmd
}

func newAlumniAddCmd() *cobra.Command {
	var (
		serverAlias string
		form        client.AlumniForm
		year        string
		photoPath   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an alumni profile (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := adminGate(cmd, serverAlias, "alumni add")
			if err != nil || !ok {
				return err
			}

			if form.Name == "" {
				return fmt.Errorf("name is required (use --name)")
			}
			if year != "" {
				form.GraduationYear, err = strconv.Atoi(year)
				if err != nil {
					return fmt.Errorf("invalid graduation year '%s'", year)
				}
			}

			photo, err := optionalPhoto(photoPath)
			if err != nil {
				return err
			}

			resp, err := env.api.CreateAlumni(cmd.Context(), &form, photo)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to create alumni profile"); err != nil {
				return err
			}

			fmt.Printf("✓ Alumni profile for %s added\n", form.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&year, "year", "", "Graduation year")
	cmd.Flags().StringVar(&form.Occupation, "occupation", "", "Current occupation")
	cmd.Flags().StringVar(&form.Company, "company", "", "Current company")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Path to a profile photo")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

// NewGalleryCmd creates the gallery command group
func NewGalleryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse and manage the club gallery",
	}

	cmd.AddCommand(newContentListCmd("List gallery items",
		func(ctx context.Context, env *accessEnv) error {
			resp, err := env.api.ListGallery(ctx)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to list gallery"); err != nil {
				return err
			}

			items, err := client.Decode[[]models.GalleryItem](resp)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("Gallery is empty.")
				return nil
			}

			for _, item := range items {
				fmt.Printf("• %s (%s)\n", item.Title, item.ImageURL)
			}
			return nil
		}))

	cmd.AddCommand(newGalleryAddCmd())

	return cmd
}

func newGalleryAddCmd() *cobra.Command {
	var (
		serverAlias string
		form        client.GalleryForm
		wing        string
		imagePath   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Upload a photo to the gallery (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := adminGate(cmd, serverAlias, "gallery add")
			if err != nil || !ok {
				return err
			}

			if imagePath == "" {
				return fmt.Errorf("image is required (use --image)")
			}
			form.ClubWing = models.ClubWing(wing)

			image, err := client.FileFromPath("image", imagePath)
			if err != nil {
				return err
			}

			resp, err := env.api.CreateGalleryItem(cmd.Context(), &form, image)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to upload gallery item"); err != nil {
				return err
			}

			fmt.Println("✓ Photo uploaded to the gallery")
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "Photo title")
	cmd.Flags().StringVar(&form.Caption, "caption", "", "Photo caption")
	cmd.Flags().StringVar(&wing, "wing", "", "Club wing the photo belongs to")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the image file")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

// NewAdvisorsCmd creates the advisors command group
func NewAdvisorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisors",
		Short: "Browse and manage faculty advisors",
	}

	cmd.AddCommand(newContentListCmd("List advisors",
		func(ctx context.Context, env *accessEnv) error {
			resp, err := env.api.ListAdvisors(ctx)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to list advisors"); err != nil {
				return err
			}

			advisors, err := client.Decode[[]models.Advisor](resp)
			if err != nil {
				return err
			}

			if len(advisors) == 0 {
				fmt.Println("No advisors found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESIGNATION\tDEPARTMENT")
			for _, a := range advisors {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.Name, a.Designation, a.Department)
			}
			w.Flush()
			return nil
		}))

	cmd.AddCommand(newAdvisorsAddCmd())

	return cmd
}

func newAdvisorsAddCmd() *cobra.Command {
	var (
		serverAlias string
		form        client.AdvisorForm
		photoPath   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a faculty advisor (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := adminGate(cmd, serverAlias, "advisors add")
			if err != nil || !ok {
				return err
			}

			if form.Name == "" {
				return fmt.Errorf("name is required (use --name)")
			}

			photo, err := optionalPhoto(photoPath)
			if err != nil {
				return err
			}

			resp, err := env.api.CreateAdvisor(cmd.Context(), &form, photo)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to create advisor"); err != nil {
				return err
			}

			fmt.Printf("✓ Advisor %s added\n", form.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Designation, "designation", "", "Designation")
	cmd.Flags().StringVar(&form.Department, "department", "", "Department")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Path to a profile photo")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

// NewExecutivesCmd creates the executive-body command group
func NewExecutivesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "executives",
		Short: "Browse and manage the executive body",
	}

	cmd.AddCommand(newContentListCmd("List the executive body",
		func(ctx context.Context, env *accessEnv) error {
			resp, err := env.api.ListExecutives(ctx)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to list executive body"); err != nil {
				return err
			}

			executives, err := client.Decode[[]models.ExecutiveMember](resp)
			if err != nil {
				return err
			}

			if len(executives) == 0 {
				fmt.Println("No executive members found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPOSITION\tWING\tYEAR")
			for _, e := range executives {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Name, e.Position, e.ClubWing, e.Year)
			}
			w.Flush()
			return nil
		}))

	cmd.AddCommand(newExecutivesAddCmd())

	return cmd
}

func newExecutivesAddCmd() *cobra.Command {
	var (
		serverAlias string
		form        client.ExecutiveForm
		wing        string
		year        string
		photoPath   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an executive member (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := adminGate(cmd, serverAlias, "executives add")
			if err != nil || !ok {
				return err
			}

			if form.Name == "" || form.Position == "" {
				return fmt.Errorf("name and position are required (use --name and --position)")
			}
			form.ClubWing = models.ClubWing(wing)
			if year != "" {
				form.Year, err = strconv.Atoi(year)
				if err != nil {
					return fmt.Errorf("invalid year '%s'", year)
				}
			}

			photo, err := optionalPhoto(photoPath)
			if err != nil {
				return err
			}

			resp, err := env.api.CreateExecutive(cmd.Context(), &form, photo)
			if err != nil {
				return err
			}
			if err := resp.Err("Failed to create executive member"); err != nil {
				return err
			}

			fmt.Printf("✓ Executive member %s added\n", form.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Position, "position", "", "Position, e.g. President")
	cmd.Flags().StringVar(&wing, "wing", "", "Club wing")
	cmd.Flags().StringVar(&year, "year", "", "Panel year")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Path to a profile photo")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

// newContentListCmd builds an unauthenticated list command for public content
func newContentListCmd(short string, run func(context.Context, *accessEnv) error) *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   short,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAccessEnv(serverAlias)
			if err != nil {
				return err
			}

			return run(cmd.Context(), env)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func optionalPhoto(path string) (*client.FilePart, error) {
	if path == "" {
		return nil, nil
	}

	part, err := client.FileFromPath("profilePhoto", path)
	if err != nil {
		return nil, err
	}
	return &part, nil
}
