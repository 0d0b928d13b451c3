package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/cli/session"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// mockAPI simulates the API client for auth context tests
type mockAPI struct {
	loginEnv  *client.Envelope
	loginErr  error
	logoutEnv *client.Envelope
	logoutErr error
}

func (m *mockAPI) Login(ctx context.Context, email, password string) (*client.Envelope, error) {
	return m.loginEnv, m.loginErr
}

func (m *mockAPI) Logout(ctx context.Context) (*client.Envelope, error) {
	return m.logoutEnv, m.logoutErr
}

func loginEnvelope(t *testing.T, token string, user *models.User) *client.Envelope {
	t.Helper()

	data, err := json.Marshal(map[string]interface{}{
		"accessToken": token,
		"user":        user,
	})
	if err != nil {
		t.Fatalf("failed to marshal login data: %v", err)
	}

	return &client.Envelope{
		Success: true,
		Message: "Login successful",
		Data:    data,
	}
}

func approvedUser() *models.User {
	return &models.User{
		BaseModel:      models.BaseModel{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"},
		Name:           "Test Member",
		Email:          "member@example.com",
		Role:           models.RoleUser,
		ApprovalStatus: models.ApprovalApproved,
	}
}

func newTestContext(api API) (*Context, *session.Store) {
	store := session.NewStore(session.NewMemoryBackend(), "club.example.com")
	return New(store, api, zerolog.Nop()), store
}

func TestContext_StartsLoading(t *testing.T) {
	ctx, _ := newTestContext(&mockAPI{})

	snap := ctx.Snapshot()
	if !snap.IsLoading {
		t.Error("expected loading state before Load")
	}
	if snap.IsAuthenticated {
		t.Error("must not report authenticated while loading")
	}
}

func TestContext_LoadRehydratesStoredSession(t *testing.T) {
	ctx, store := newTestContext(&mockAPI{})

	if err := store.Save("token-abc", approvedUser()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	ctx.Load()

	snap := ctx.Snapshot()
	if snap.IsLoading {
		t.Error("expected loading to be finished after Load")
	}
	if !snap.IsAuthenticated {
		t.Fatal("expected authenticated state from stored session")
	}
	if snap.User.Email != "member@example.com" {
		t.Errorf("expected stored user, got %+v", snap.User)
	}
}

func TestContext_LoadWithEmptyStoreEndsLoading(t *testing.T) {
	ctx, _ := newTestContext(&mockAPI{})

	ctx.Load()

	snap := ctx.Snapshot()
	if snap.IsLoading {
		t.Error("expected loading to be finished")
	}
	if snap.IsAuthenticated || snap.User != nil {
		t.Error("expected logged-out state from empty store")
	}
}

func TestContext_LoadRunsOnce(t *testing.T) {
	ctx, store := newTestContext(&mockAPI{})

	ctx.Load()

	// A session stored after the first Load must not leak in via a second
	if err := store.Save("token-abc", approvedUser()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	ctx.Load()

	if snap := ctx.Snapshot(); snap.IsAuthenticated {
		t.Error("second Load must not rehydrate again")
	}
}

func TestContext_LoginPersistsSession(t *testing.T) {
	user := approvedUser()
	api := &mockAPI{loginEnv: loginEnvelope(t, "token-abc", user)}
	ctx, store := newTestContext(api)
	ctx.Load()

	if err := ctx.Login(context.Background(), "member@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	snap := ctx.Snapshot()
	if !snap.IsAuthenticated {
		t.Fatal("expected authenticated state after login")
	}
	if snap.User.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, snap.User.ID)
	}

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("store load failed: %v", err)
	}
	if sess == nil || sess.Token != "token-abc" {
		t.Error("expected session persisted to the store")
	}
}

func TestContext_LoginBusinessFailureLeavesStateUntouched(t *testing.T) {
	api := &mockAPI{loginEnv: &client.Envelope{Success: false, Message: "Invalid email or password"}}
	ctx, store := newTestContext(api)
	ctx.Load()

	err := ctx.Login(context.Background(), "member@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if err.Error() != "Invalid email or password" {
		t.Errorf("expected server message to surface, got '%v'", err)
	}

	if snap := ctx.Snapshot(); snap.IsAuthenticated {
		t.Error("failed login must not authenticate")
	}
	if sess, _ := store.Load(); sess != nil {
		t.Error("failed login must not write to the store")
	}
}

func TestContext_LoginTransportFailureLeavesStateUntouched(t *testing.T) {
	api := &mockAPI{loginErr: errors.New("connection refused")}
	ctx, store := newTestContext(api)
	ctx.Load()

	if err := ctx.Login(context.Background(), "member@example.com", "password123"); err == nil {
		t.Fatal("expected login to fail")
	}

	if snap := ctx.Snapshot(); snap.IsAuthenticated {
		t.Error("failed login must not authenticate")
	}
	if sess, _ := store.Load(); sess != nil {
		t.Error("failed login must not write to the store")
	}
}

func TestContext_LoginRejectsIncompleteResponse(t *testing.T) {
	tests := []struct {
		name string
		env  *client.Envelope
	}{
		{
			name: "missing data",
			env:  &client.Envelope{Success: true, Message: "Login successful"},
		},
		{
			name: "empty token",
			env:  loginEnvelope(t, "", approvedUser()),
		},
		{
			name: "missing user",
			env:  loginEnvelope(t, "token-abc", nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, store := newTestContext(&mockAPI{loginEnv: tt.env})
			ctx.Load()

			if err := ctx.Login(context.Background(), "member@example.com", "password123"); err == nil {
				t.Fatal("expected login to fail")
			}
			if sess, _ := store.Load(); sess != nil {
				t.Error("incomplete login response must not write to the store")
			}
		})
	}
}

func TestContext_LogoutClearsLocalState(t *testing.T) {
	api := &mockAPI{
		loginEnv:  loginEnvelope(t, "token-abc", approvedUser()),
		logoutEnv: &client.Envelope{Success: true, Message: "Logged out"},
	}
	ctx, store := newTestContext(api)
	ctx.Load()

	if err := ctx.Login(context.Background(), "member@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	ctx.Logout(context.Background())

	if snap := ctx.Snapshot(); snap.IsAuthenticated {
		t.Error("expected logged-out state after logout")
	}
	if sess, _ := store.Load(); sess != nil {
		t.Error("expected store cleared after logout")
	}
}

func TestContext_LogoutClearsEvenWhenRemoteFails(t *testing.T) {
	api := &mockAPI{
		loginEnv:  loginEnvelope(t, "token-abc", approvedUser()),
		logoutErr: errors.New("connection refused"),
	}
	ctx, store := newTestContext(api)
	ctx.Load()

	if err := ctx.Login(context.Background(), "member@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Remote logout fails; local clear must happen regardless
	ctx.Logout(context.Background())

	if snap := ctx.Snapshot(); snap.IsAuthenticated {
		t.Error("expected logged-out state despite remote failure")
	}
	if sess, _ := store.Load(); sess != nil {
		t.Error("expected store cleared despite remote failure")
	}
}
