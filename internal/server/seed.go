package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clubdeck-dev/clubdeck/internal/auth"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// seedFixture is the YAML shape of a dev seed file. Passwords are plaintext
// in the fixture and hashed on insert; never seed a production database.
type seedFixture struct {
	Users []struct {
		Name           string                `yaml:"name"`
		Email          string                `yaml:"email"`
		Password       string                `yaml:"password"`
		Role           models.Role           `yaml:"role"`
		ApprovalStatus models.ApprovalStatus `yaml:"approvalStatus"`
		Phone          string                `yaml:"phone"`
		Department     string                `yaml:"department"`
		StudentID      string                `yaml:"studentId"`
		ClubWing       models.ClubWing       `yaml:"clubWing"`
	} `yaml:"users"`
	Events []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Location    string `yaml:"location"`
	} `yaml:"events"`
	Notices []struct {
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
	} `yaml:"notices"`
	Advisors []struct {
		Name        string `yaml:"name"`
		Designation string `yaml:"designation"`
		Department  string `yaml:"department"`
		Email       string `yaml:"email"`
	} `yaml:"advisors"`
}

// seedFromFile loads a YAML fixture into the database. Existing rows are
// left alone; seeding only fills an empty table.
func (s *Server) seedFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var fixture seedFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	var userCount int64
	s.db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		for _, u := range fixture.Users {
			hash, err := auth.HashPassword(u.Password)
			if err != nil {
				return fmt.Errorf("failed to hash seed password for %s: %w", u.Email, err)
			}

			role := u.Role
			if !role.Valid() {
				role = models.RoleUser
			}
			status := u.ApprovalStatus
			if !status.Valid() {
				status = models.ApprovalPending
			}

			user := models.User{
				Name:           u.Name,
				Email:          u.Email,
				PasswordHash:   hash,
				Role:           role,
				ApprovalStatus: status,
				Phone:          u.Phone,
				Department:     u.Department,
				StudentID:      u.StudentID,
				ClubWing:       u.ClubWing,
			}
			if err := s.db.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
		}
		s.logger.Info().Int("count", len(fixture.Users)).Msg("Seeded users")
	}

	var eventCount int64
	s.db.Model(&models.Event{}).Count(&eventCount)
	if eventCount == 0 {
		for _, e := range fixture.Events {
			event := models.Event{
				Title:       e.Title,
				Description: e.Description,
				Location:    e.Location,
			}
			if err := s.db.Create(&event).Error; err != nil {
				return fmt.Errorf("failed to seed event %q: %w", e.Title, err)
			}
		}
		s.logger.Info().Int("count", len(fixture.Events)).Msg("Seeded events")
	}

	var noticeCount int64
	s.db.Model(&models.Notice{}).Count(&noticeCount)
	if noticeCount == 0 {
		for _, n := range fixture.Notices {
			notice := models.Notice{
				Title: n.Title,
				Body:  n.Body,
			}
			if err := s.db.Create(&notice).Error; err != nil {
				return fmt.Errorf("failed to seed notice %q: %w", n.Title, err)
			}
		}
		s.logger.Info().Int("count", len(fixture.Notices)).Msg("Seeded notices")
	}

	var advisorCount int64
	s.db.Model(&models.Advisor{}).Count(&advisorCount)
	if advisorCount == 0 {
		for _, a := range fixture.Advisors {
			advisor := models.Advisor{
				Name:        a.Name,
				Designation: a.Designation,
				Department:  a.Department,
				Email:       a.Email,
			}
			if err := s.db.Create(&advisor).Error; err != nil {
				return fmt.Errorf("failed to seed advisor %q: %w", a.Name, err)
			}
		}
		s.logger.Info().Int("count", len(fixture.Advisors)).Msg("Seeded advisors")
	}

	return nil
}
