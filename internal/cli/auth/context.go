// Package auth holds the process-wide authentication state for the CLI:
// the current user, the loading flag, and the only sanctioned mutators
// (Login and Logout). All durable reads and writes go through the session
// store; nothing else touches the backing storage.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/cli/session"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// API is the slice of the API client the auth context depends on.
// The dependency is one-directional: the client never reaches back here.
type API interface {
	Login(ctx context.Context, email, password string) (*client.Envelope, error)
	Logout(ctx context.Context) (*client.Envelope, error)
}

// Snapshot is a point-in-time view of the authentication state
type Snapshot struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
}

// Context owns the in-memory authentication state
type Context struct {
	store  *session.Store
	api    API
	logger zerolog.Logger

	mu      sync.Mutex
	user    *models.User
	loading bool
	once    sync.Once
}

// New creates an auth context. It starts in the loading state until Load runs.
func New(store *session.Store, api API, logger zerolog.Logger) *Context {
	return &Context{
		store:   store,
		api:     api,
		logger:  logger,
		loading: true,
	}
}

// Load rehydrates the session from durable storage. It runs its work once;
// the loading flag drops to false permanently afterwards, even when called
// again.
func (c *Context) Load() {
	c.once.Do(func() {
		sess, err := c.store.Load()

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			// Storage read failure is treated as logged out; the store has
			// already purged anything partial
			c.logger.Warn().Err(err).Msg("Failed to load stored session")
		} else if sess != nil {
			c.user = sess.User
		}
		c.loading = false
	})
}

// Snapshot returns the current state. IsAuthenticated is derived from the
// presence of a user and cannot desync from it.
func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		User:            c.user,
		IsAuthenticated: c.user != nil,
		IsLoading:       c.loading,
	}
}

// Login authenticates against the API and persists the session. On any
// failure, business or transport, stored session state is left untouched.
func (c *Context) Login(ctx context.Context, email, password string) error {
	env, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := env.Err("Login failed"); err != nil {
		return err
	}

	data, err := client.Decode[client.LoginData](env)
	if err != nil {
		return errors.New("Login failed")
	}
	if data.AccessToken == "" || data.User == nil {
		return errors.New("Login failed")
	}

	if err := c.store.Save(data.AccessToken, data.User); err != nil {
		return err
	}

	c.mu.Lock()
	c.user = data.User
	c.mu.Unlock()

	c.logger.Debug().Str("user_id", data.User.ID).Msg("Logged in")
	return nil
}

// Logout ends the session. The remote notification is best-effort: whatever
// it does, local state is cleared and the caller never sees a failure.
func (c *Context) Logout(ctx context.Context) {
	env, err := c.api.Logout(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Remote logout failed, clearing local session anyway")
	} else if err := env.Err("Logout failed"); err != nil {
		c.logger.Warn().Err(err).Msg("Server rejected logout, clearing local session anyway")
	}

	_ = c.store.Clear()

	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
}
