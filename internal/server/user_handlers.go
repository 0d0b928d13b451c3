package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clubdeck-dev/clubdeck/internal/auth"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// createStudent registers a new member. Accepts a plain JSON body, or a
// multipart form with the JSON in the "data" field plus an optional
// "profilePhoto" file. New accounts start PENDING.
func (s *Server) createStudent(c *gin.Context) {
	var reg models.StudentRegistration
	if err := bindPayload(c, &reg); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := s.validator.Struct(&reg); err != nil {
		respondFail(c, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", reg.Email).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to check email")
		respondFail(c, http.StatusInternalServerError, "Registration failed")
		return
	}
	if count > 0 {
		respondFail(c, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		respondFail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	photoURL, err := s.saveOptionalUpload(c, "profilePhoto")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save profile photo")
		respondFail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := models.User{
		Name:            reg.Name,
		Email:           reg.Email,
		PasswordHash:    hash,
		Role:            models.RoleUser,
		ApprovalStatus:  models.ApprovalPending,
		Phone:           reg.Phone,
		Department:      reg.Department,
		StudentID:       reg.StudentID,
		ClubWing:        reg.ClubWing,
		PaymentMethod:   reg.PaymentMethod,
		TransactionID:   reg.TransactionID,
		ProfilePhotoURL: photoURL,
	}

	if err := s.db.Create(&user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create user")
		respondFail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	s.logger.Info().Str("email", user.Email).Msg("Student registered")
	respondOK(c, http.StatusCreated, "Registration submitted, awaiting approval", user)
}

// listUsers returns all members, hiding soft-deleted accounts unless
// ?includeDeleted=true is set.
func (s *Server) listUsers(c *gin.Context) {
	query := s.db.Order("created_at DESC")
	if !strings.EqualFold(c.Query("includeDeleted"), "true") {
		query = query.Where("deleted = ?", false)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		respondFail(c, http.StatusInternalServerError, "Failed to list members")
		return
	}

	respondOK(c, http.StatusOK, "Members", users)
}

// listDirectory returns the approved membership for fellow members to browse
func (s *Server) listDirectory(c *gin.Context) {
	var users []models.User
	err := s.db.
		Where("approval_status = ? AND deleted = ?", models.ApprovalApproved, false).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list directory")
		respondFail(c, http.StatusInternalServerError, "Failed to list member directory")
		return
	}

	respondOK(c, http.StatusOK, "Member directory", users)
}

type statusUpdateRequest struct {
	ApprovalStatus models.ApprovalStatus `json:"approvalStatus" binding:"required"`
}

// updateUserStatus approves or rejects a member
func (s *Server) updateUserStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if !req.ApprovalStatus.Valid() {
		respondFail(c, http.StatusBadRequest, "Invalid approval status")
		return
	}

	var user models.User
	if err := models.FindByID(s.db, c.Param("id"), &user); err != nil {
		respondFail(c, http.StatusNotFound, "Member not found")
		return
	}

	user.ApprovalStatus = req.ApprovalStatus
	if err := s.db.Save(&user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update approval status")
		respondFail(c, http.StatusInternalServerError, "Failed to update member")
		return
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("status", string(user.ApprovalStatus)).
		Msg("Approval status updated")
	respondOK(c, http.StatusOK, "Member status updated", user)
}

type roleUpdateRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// updateUserRole changes a member's role
func (s *Server) updateUserRole(c *gin.Context) {
	var req roleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if !req.Role.Valid() {
		respondFail(c, http.StatusBadRequest, "Invalid role")
		return
	}

	var user models.User
	if err := models.FindByID(s.db, c.Param("id"), &user); err != nil {
		respondFail(c, http.StatusNotFound, "Member not found")
		return
	}

	user.Role = req.Role
	if err := s.db.Save(&user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update role")
		respondFail(c, http.StatusInternalServerError, "Failed to update member")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("Role updated")
	respondOK(c, http.StatusOK, "Member role updated", user)
}

// deleteUser soft-deletes a member so they no longer appear in listings
// and can no longer authenticate. Restorable via restoreUser.
func (s *Server) deleteUser(c *gin.Context) {
	var user models.User
	if err := models.FindByID(s.db, c.Param("id"), &user); err != nil {
		respondFail(c, http.StatusNotFound, "Member not found")
		return
	}

	current, _ := GetCurrentUser(c)
	if current != nil && current.ID == user.ID {
		respondFail(c, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	user.Deleted = true
	if err := s.db.Save(&user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete user")
		respondFail(c, http.StatusInternalServerError, "Failed to remove member")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Msg("Member removed")
	respondOK(c, http.StatusOK, "Member removed", nil)
}

// restoreUser reverses a soft delete
func (s *Server) restoreUser(c *gin.Context) {
	var user models.User
	if err := models.FindByID(s.db, c.Param("id"), &user); err != nil {
		respondFail(c, http.StatusNotFound, "Member not found")
		return
	}

	if !user.Deleted {
		respondFail(c, http.StatusBadRequest, "Member is not removed")
		return
	}

	user.Deleted = false
	if err := s.db.Save(&user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to restore user")
		respondFail(c, http.StatusInternalServerError, "Failed to restore member")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Msg("Member restored")
	respondOK(c, http.StatusOK, "Member restored", user)
}
