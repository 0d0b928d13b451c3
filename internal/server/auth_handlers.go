package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubdeck-dev/clubdeck/internal/auth"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

type setupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// setupFirstAdmin creates the initial admin account. Only works when no
// admin exists yet, after that the endpoint refuses further setups.
func (s *Server) setupFirstAdmin(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count admins")
		respondFail(c, http.StatusInternalServerError, "Setup failed")
		return
	}
	if count > 0 {
		respondFail(c, http.StatusConflict, "Setup already completed")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		respondFail(c, http.StatusInternalServerError, "Setup failed")
		return
	}

	admin := models.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           models.RoleAdmin,
		ApprovalStatus: models.ApprovalApproved,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create admin")
		respondFail(c, http.StatusInternalServerError, "Setup failed")
		return
	}

	token, err := auth.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		respondFail(c, http.StatusInternalServerError, "Setup failed")
		return
	}

	s.logger.Info().Str("email", admin.Email).Msg("First admin created")
	respondOK(c, http.StatusCreated, "Admin account created", gin.H{
		"accessToken": token,
		"user":        admin,
	})
}

// login authenticates a member and returns a bearer token. Pending members
// can log in too; approval gating happens on the member-only routes.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	var user models.User
	if err := s.db.Where("email = ? AND deleted = ?", req.Email, false).First(&user).Error; err != nil {
		respondFail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		respondFail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		respondFail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("User logged in")
	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"accessToken": token,
		"user":        user,
	})
}

// logout acknowledges the logout. Tokens are stateless so there is nothing
// to revoke server side; clients discard their stored credentials.
func (s *Server) logout(c *gin.Context) {
	respondOK(c, http.StatusOK, "Logged out", nil)
}

// getCurrentUser returns the authenticated user's fresh record
func (s *Server) getCurrentUser(c *gin.Context) {
	user, ok := GetCurrentUser(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondOK(c, http.StatusOK, "Current user", user)
}
