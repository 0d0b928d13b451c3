package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// Session is the durable (token, user) pair representing "who is logged in".
// The two values are always set and cleared together; a state with only one
// present is treated as no session at all.
type Session struct {
	Token string
	User  *models.User
}

// Store persists the session for one server in a durable key-value backend
type Store struct {
	backend Backend
	server  string
}

// NewStore creates a session store scoped to the given server identity
// (tokens for different servers never collide)
func NewStore(backend Backend, server string) *Store {
	return &Store{backend: backend, server: server}
}

func (s *Store) tokenKey() string {
	return fmt.Sprintf("token-%s", s.server)
}

func (s *Store) userKey() string {
	return fmt.Sprintf("user-%s", s.server)
}

// Load reads the persisted session. If either value is missing, or the stored
// user fails to deserialize, any partial data is purged and a nil session is
// returned: corrupt state is wiped, never repaired or surfaced as an error.
func (s *Store) Load() (*Session, error) {
	token, err := s.backend.Get(s.tokenKey())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.purge()
			return nil, nil
		}
		return nil, err
	}

	raw, err := s.backend.Get(s.userKey())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.purge()
			return nil, nil
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Unparsable stored user: self-heal by clearing both keys
		s.purge()
		return nil, nil
	}

	return &Session{Token: token, User: &user}, nil
}

// Save writes token and user as a unit. If the user write fails the token
// write is rolled back so no state with only one value is left behind.
func (s *Store) Save(token string, user *models.User) error {
	if token == "" || user == nil {
		return fmt.Errorf("session requires both token and user")
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	if err := s.backend.Set(s.tokenKey(), token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := s.backend.Set(s.userKey(), string(raw)); err != nil {
		_ = s.backend.Delete(s.tokenKey())
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// Clear removes both values; missing keys are not errors
func (s *Store) Clear() error {
	s.purge()
	return nil
}

func (s *Store) purge() {
	_ = s.backend.Delete(s.tokenKey())
	_ = s.backend.Delete(s.userKey())
}

// Token returns the stored token if a valid session exists.
// Used by the API client to attach credentials when available.
func (s *Store) Token() (string, bool) {
	sess, err := s.Load()
	if err != nil || sess == nil {
		return "", false
	}
	return sess.Token, true
}
