package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clubdeck-dev/clubdeck/internal/models"
)

type eventPayload struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
}

func (s *Server) listEvents(c *gin.Context) {
	var events []models.Event
	if err := s.db.Order("starts_at DESC").Find(&events).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list events")
		respondFail(c, http.StatusInternalServerError, "Failed to list events")
		return
	}

	respondOK(c, http.StatusOK, "Events", events)
}

func (s *Server) createEvent(c *gin.Context) {
	var payload eventPayload
	if err := bindPayload(c, &payload); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if payload.Title == "" {
		respondFail(c, http.StatusBadRequest, "Title is required")
		return
	}

	coverURL, err := s.saveOptionalUpload(c, "coverImage")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save cover image")
		respondFail(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	attachmentURLs, err := s.saveUploads(c, "attachments")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save attachments")
		respondFail(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	current, _ := GetCurrentUser(c)

	event := models.Event{
		Title:          payload.Title,
		Description:    payload.Description,
		Location:       payload.Location,
		StartsAt:       payload.StartsAt,
		EndsAt:         payload.EndsAt,
		CoverImageURL:  coverURL,
		AttachmentURLs: attachmentURLs,
	}
	if current != nil {
		event.CreatedByID = current.ID
	}

	if err := s.db.Create(&event).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create event")
		respondFail(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	s.logger.Info().Str("event_id", event.ID).Str("title", event.Title).Msg("Event created")
	respondOK(c, http.StatusCreated, "Event created", event)
}

func (s *Server) updateEvent(c *gin.Context) {
	var event models.Event
	if err := models.FindByID(s.db, c.Param("id"), &event); err != nil {
		respondFail(c, http.StatusNotFound, "Event not found")
		return
	}

	var payload eventPayload
	if err := bindPayload(c, &payload); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if payload.Title != "" {
		event.Title = payload.Title
	}
	if payload.Description != "" {
		event.Description = payload.Description
	}
	if payload.Location != "" {
		event.Location = payload.Location
	}
	if !payload.StartsAt.IsZero() {
		event.StartsAt = payload.StartsAt
	}
	if !payload.EndsAt.IsZero() {
		event.EndsAt = payload.EndsAt
	}

	if coverURL, err := s.saveOptionalUpload(c, "coverImage"); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save cover image")
		respondFail(c, http.StatusInternalServerError, "Failed to update event")
		return
	} else if coverURL != "" {
		event.CoverImageURL = coverURL
	}

	attachmentURLs, err := s.saveUploads(c, "attachments")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save attachments")
		respondFail(c, http.StatusInternalServerError, "Failed to update event")
		return
	}
	if len(attachmentURLs) > 0 {
		event.AttachmentURLs = attachmentURLs
	}

	if err := s.db.Save(&event).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update event")
		respondFail(c, http.StatusInternalServerError, "Failed to update event")
		return
	}

	respondOK(c, http.StatusOK, "Event updated", event)
}

type noticePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *Server) listNotices(c *gin.Context) {
	var notices []models.Notice
	if err := s.db.Order("published_at DESC").Find(&notices).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list notices")
		respondFail(c, http.StatusInternalServerError, "Failed to list notices")
		return
	}

	respondOK(c, http.StatusOK, "Notices", notices)
}

func (s *Server) createNotice(c *gin.Context) {
	var payload noticePayload
	if err := bindPayload(c, &payload); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if payload.Title == "" {
		respondFail(c, http.StatusBadRequest, "Title is required")
		return
	}

	attachmentURLs, err := s.saveUploads(c, "attachments")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save attachments")
		respondFail(c, http.StatusInternalServerError, "Failed to create notice")
		return
	}

	current, _ := GetCurrentUser(c)

	notice := models.Notice{
		Title:          payload.Title,
		Body:           payload.Body,
		AttachmentURLs: attachmentURLs,
		PublishedAt:    time.Now().UTC(),
	}
	if current != nil {
		notice.CreatedByID = current.ID
	}

	if err := s.db.Create(&notice).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create notice")
		respondFail(c, http.StatusInternalServerError, "Failed to create notice")
		return
	}

	s.logger.Info().Str("notice_id", notice.ID).Str("title", notice.Title).Msg("Notice published")
	respondOK(c, http.StatusCreated, "Notice published", notice)
}

type alumniPayload struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	GraduationYear int    `json:"graduationYear"`
	Occupation     string `json:"occupation"`
	Company        string `json:"company"`
}

func (s *Server) listAlumni(c *gin.Context) {
	var alumni []models.AlumniProfile
	if err := s.db.Order("graduation_year DESC").Find(&alumni).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list alumni")
		respondFail(c, http.StatusInternalServerError, "Failed to list alumni")
		return
	}

	respondOK(c, http.StatusOK, "Alumni", alumni)
}

func (s *Server) createAlumni(c *gin.Context) {
	var payload alumniPayload
	if err := bindPayload(c, &payload); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if payload.Name == "" {
		respondFail(c, http.StatusBadRequest, "Name is required")
		return
	}

	photoURL, err := s.saveOptionalUpload(c, "profilePhoto")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save profile photo")
		respondFail(c, http.StatusInternalServerError, "Failed to create alumni profile")
		return
	}

	profile := models.AlumniProfile{
		Name:            payload.Name,
		Email:           payload.Email,
		GraduationYear:  payload.GraduationYear,
		Occupation:      payload.Occupation,
		Company:         payload.Company,
		ProfilePhotoURL: photoURL,
	}

	if err := s.db.Create(&profile).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create alumni profile")
		respondFail(c, http.StatusInternalServerError, "Failed to create alumni profile")
		return
	}

	respondOK(c, http.StatusCreated, "Alumni profile created", profile)
}

type galleryPayload struct {
	Title    string          `json:"title"`
	Caption  string          `json:"caption"`
	ClubWing models.ClubWing `json:"clubWing"`
}

func (s *Server) listGallery(c *gin.Context) {
	var items []models.GalleryItem
	if err := s.db.Order("created_at DESC").Find(&items).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list gallery")
		respondFail(c, http.StatusInternalServerError, "Failed to list gallery")
		return
	}

	respondOK(c, http.StatusOK, "Gallery", items)
}

func (s *Server) createGalleryItem(c *gin.Context) {
	var payload galleryPayload
	if err := bindPayload(c, &payload); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondFail(c, http.StatusBadRequest, "Image file is required")
		return
	}

	imageURL, err := s.saveUpload(c, file)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save gallery image")
		respondFail(c, http.StatusInternalServerError, "Failed to upload gallery item")
		return
	}

	item := models.GalleryItem{
		Title:    payload.Title,
		Caption:  payload.Caption,
		ImageURL: imageURL,
		ClubWing: payload.ClubWing,
	}

	if err := s.db.Create(&item).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create gallery item")
		respondFail(c, http.StatusInternalServerError, "Failed to upload gallery item")
		return
	}

	respondOK(c, http.StatusCreated, "Gallery item uploaded", item)
}

type advisorPayload struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Email       string `json:"email"`
}

func (s *Server) listAdvisors(c *gin.Context) {
	var advisors []models.Advisor
	if err := s.db.Order("created_at ASC").Find(&advisors).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list advisors")
		respondFail(c, http.StatusInternalServerError, "Failed to list advisors")
		return
	}

	respondOK(c, http.StatusOK, "Advisors", advisors)
}

func (s *Server) createAdvisor(c *gin.Context) {
	var payload advisorPayload
	if err := bindPayload(c, &payload); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if payload.Name == "" {
		respondFail(c, http.StatusBadRequest, "Name is required")
		return
	}

	photoURL, err := s.saveOptionalUpload(c, "profilePhoto")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save profile photo")
		respondFail(c, http.StatusInternalServerError, "Failed to create advisor")
		return
	}

	advisor := models.Advisor{
		Name:            payload.Name,
		Designation:     payload.Designation,
		Department:      payload.Department,
		Email:           payload.Email,
		ProfilePhotoURL: photoURL,
	}

	if err := s.db.Create(&advisor).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create advisor")
		respondFail(c, http.StatusInternalServerError, "Failed to create advisor")
		return
	}

	respondOK(c, http.StatusCreated, "Advisor created", advisor)
}

type executivePayload struct {
	Name     string          `json:"name"`
	Position string          `json:"position"`
	ClubWing models.ClubWing `json:"clubWing"`
	Year     int             `json:"year"`
	Email    string          `json:"email"`
}

func (s *Server) listExecutives(c *gin.Context) {
	var members []models.ExecutiveMember
	if err := s.db.Order("year DESC, created_at ASC").Find(&members).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list executive body")
		respondFail(c, http.StatusInternalServerError, "Failed to list executive body")
		return
	}

	respondOK(c, http.StatusOK, "Executive body", members)
}

func (s *Server) createExecutive(c *gin.Context) {
	var payload executivePayload
	if err := bindPayload(c, &payload); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if payload.Name == "" || payload.Position == "" {
		respondFail(c, http.StatusBadRequest, "Name and position are required")
		return
	}

	photoURL, err := s.saveOptionalUpload(c, "profilePhoto")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save profile photo")
		respondFail(c, http.StatusInternalServerError, "Failed to create executive member")
		return
	}

	member := models.ExecutiveMember{
		Name:            payload.Name,
		Position:        payload.Position,
		ClubWing:        payload.ClubWing,
		Year:            payload.Year,
		Email:           payload.Email,
		ProfilePhotoURL: photoURL,
	}

	if err := s.db.Create(&member).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create executive member")
		respondFail(c, http.StatusInternalServerError, "Failed to create executive member")
		return
	}

	respondOK(c, http.StatusCreated, "Executive member created", member)
}
