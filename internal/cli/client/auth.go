package client

import (
	"context"
	"net/http"

	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData is the payload of a successful login response
type LoginData struct {
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
}

// Login authenticates the user. The envelope is returned as-is: a 2xx
// response with success=false (for example a pending account) is not an
// error here; the auth context converts it into one.
func (c *Client) Login(ctx context.Context, email, password string) (*Envelope, error) {
	body := LoginRequest{Email: email, Password: password}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, "Login failed")
}

// Logout notifies the server that the session ended. Best-effort: callers
// clear local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, "Logout failed")
}

// Me fetches the authenticated user's current profile
func (c *Client) Me(ctx context.Context) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, "Failed to fetch profile")
}
