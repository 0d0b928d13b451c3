package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// EventForm is the structured part of an event create/update request
type EventForm struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
}

// ListEvents returns all events
func (c *Client) ListEvents(ctx context.Context) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/events", nil, "Failed to list events")
}

// CreateEvent creates an event, optionally with a cover image and attachments
func (c *Client) CreateEvent(ctx context.Context, form *EventForm, files []FilePart) (*Envelope, error) {
	const fallback = "Failed to create event"

	if len(files) == 0 {
		return c.doJSON(ctx, http.MethodPost, "/api/events", form, fallback)
	}
	return c.doMultipart(ctx, http.MethodPost, "/api/events", form, files, fallback)
}

// UpdateEvent updates an event's fields and optionally replaces its files
func (c *Client) UpdateEvent(ctx context.Context, eventID string, form *EventForm, files []FilePart) (*Envelope, error) {
	const fallback = "Failed to update event"
	path := fmt.Sprintf("/api/events/%s", eventID)

	if len(files) == 0 {
		return c.doJSON(ctx, http.MethodPatch, path, form, fallback)
	}
	return c.doMultipart(ctx, http.MethodPatch, path, form, files, fallback)
}

// NoticeForm is the structured part of a notice create request
type NoticeForm struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ListNotices returns all notices
func (c *Client) ListNotices(ctx context.Context) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/notices", nil, "Failed to list notices")
}

// CreateNotice publishes a notice, optionally with file attachments
func (c *Client) CreateNotice(ctx context.Context, form *NoticeForm, files []FilePart) (*Envelope, error) {
	const fallback = "Failed to create notice"

	if len(files) == 0 {
		return c.doJSON(ctx, http.MethodPost, "/api/notices", form, fallback)
	}
	return c.doMultipart(ctx, http.MethodPost, "/api/notices", form, files, fallback)
}

// AlumniForm is the structured part of an alumni profile request
type AlumniForm struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	GraduationYear int    `json:"graduationYear"`
	Occupation     string `json:"occupation"`
	Company        string `json:"company"`
}

// ListAlumni returns all alumni profiles
func (c *Client) ListAlumni(ctx context.Context) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/alumni", nil, "Failed to list alumni")
}

// CreateAlumni adds an alumni profile, optionally with a profile photo
func (c *Client) CreateAlumni(ctx context.Context, form *AlumniForm, photo *FilePart) (*Envelope, error) {
	const fallback = "Failed to create alumni profile"

	if photo == nil {
		return c.doJSON(ctx, http.MethodPost, "/api/alumni", form, fallback)
	}
	return c.doMultipart(ctx, http.MethodPost, "/api/alumni", form, []FilePart{*photo}, fallback)
}

// GalleryForm is the structured part of a gallery item request
type GalleryForm struct {
	Title    string          `json:"title"`
	Caption  string          `json:"caption"`
	ClubWing models.ClubWing `json:"clubWing,omitempty"`
}

// ListGallery returns all gallery items
func (c *Client) ListGallery(ctx context.Context) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/gallery", nil, "Failed to list gallery")
}

// CreateGalleryItem uploads a photo to the gallery. The image is required:
// a gallery item without one has nothing to show.
func (c *Client) CreateGalleryItem(ctx context.Context, form *GalleryForm, image FilePart) (*Envelope, error) {
	return c.doMultipart(ctx, http.MethodPost, "/api/gallery", form, []FilePart{image}, "Failed to upload gallery item")
}

// AdvisorForm is the structured part of an advisor request
type AdvisorForm struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Email       string `json:"email"`
}

// ListAdvisors returns all advisors
func (c *Client) ListAdvisors(ctx context.Context) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/advisors", nil, "Failed to list advisors")
}

// CreateAdvisor adds an advisor, optionally with a profile photo
func (c *Client) CreateAdvisor(ctx context.Context, form *AdvisorForm, photo *FilePart) (*Envelope, error) {
	const fallback = "Failed to create advisor"

	if photo == nil {
		return c.doJSON(ctx, http.MethodPost, "/api/advisors", form, fallback)
	}
	return c.doMultipart(ctx, http.MethodPost, "/api/advisors", form, []FilePart{*photo}, fallback)
}

// ExecutiveForm is the structured part of an executive-body member request
type ExecutiveForm struct {
	Name     string          `json:"name"`
	Position string          `json:"position"`
	ClubWing models.ClubWing `json:"clubWing,omitempty"`
	Year     int             `json:"year"`
	Email    string          `json:"email"`
}

// ListExecutives returns the executive body
func (c *Client) ListExecutives(ctx context.Context) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/executive-body", nil, "Failed to list executive body")
}

// CreateExecutive adds an executive member, optionally with a profile photo
func (c *Client) CreateExecutive(ctx context.Context, form *ExecutiveForm, photo *FilePart) (*Envelope, error) {
	const fallback = "Failed to create executive member"

	if photo == nil {
		return c.doJSON(ctx, http.MethodPost, "/api/executive-body", form, fallback)
	}
	return c.doMultipart(ctx, http.MethodPost, "/api/executive-body", form, []FilePart{*photo}, fallback)
}
