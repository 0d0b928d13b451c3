package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// NewRegisterCmd creates the member registration command
func NewRegisterCmd() *cobra.Command {
	var (
		serverAlias string
		photoPath   string
		form        models.StudentRegistration
		wing        string
		payment     string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register as a new club member",
		RunE: func(cmd *cobra.Command, args []string) error {
			form.ClubWing = models.ClubWing(wing)
			form.PaymentMethod = models.PaymentMethod(payment)
			return runRegister(cmd, &form, photoPath, serverAlias)
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password (min 8 characters)")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&form.Department, "department", "", "Academic department")
	cmd.Flags().StringVar(&form.StudentID, "student-id", "", "Student ID")
	cmd.Flags().StringVar(&wing, "wing", "", "Club wing (TECH, MEDIA, EVENTS, OUTREACH)")
	cmd.Flags().StringVar(&payment, "payment", "", "Payment method (BKASH, NAGAD, CASH)")
	cmd.Flags().StringVar(&form.TransactionID, "transaction-id", "", "Payment transaction ID (not needed for CASH)")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Path to a profile photo (optional)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}

func runRegister(cmd *cobra.Command, form *models.StudentRegistration, photoPath, serverAlias string) error {
	// Catch invalid enum values and missing fields before any network call
	if err := models.ValidateStruct(form); err != nil {
		return err
	}

	env, err := newAccessEnv(serverAlias)
	if err != nil {
		return err
	}

	var photo *client.FilePart
	if photoPath != "" {
		part, err := client.FileFromPath("profilePhoto", photoPath)
		if err != nil {
			return err
		}
		photo = &part
	}

	resp, err := env.api.RegisterStudent(cmd.Context(), form, photo)
	if err != nil {
		return err
	}
	if err := resp.Err("Registration failed"); err != nil {
		return err
	}

	fmt.Println("✓ Registration submitted!")
	fmt.Println("  An admin will review your membership. Until approval your status is PENDING.")
	fmt.Println("  Run 'clubdeck login' once you have credentials to check your status.")

	return nil
}
