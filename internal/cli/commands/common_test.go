package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clubdeck-dev/clubdeck/internal/cli/auth"
	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/cli/config"
	"github.com/clubdeck-dev/clubdeck/internal/cli/guard"
	"github.com/clubdeck-dev/clubdeck/internal/cli/session"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// emptyListHandler answers every request with an empty successful list
func emptyListHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok","data":[]}`))
	})
}

func testAccessEnv(t *testing.T, baseURL string, user *models.User) *accessEnv {
	t.Helper()

	store := session.NewStore(session.NewMemoryBackend(), "test-server")
	if user != nil {
		if err := store.Save("test-token", user); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	api := client.New(baseURL, store)
	authCtx := auth.New(store, api, zerolog.Nop())
	authCtx.Load()

	return &accessEnv{
		server:  &config.Server{URL: baseURL, Alias: "test"},
		store:   store,
		api:     api,
		authCtx: authCtx,
	}
}

func approvedMember(role models.Role) *models.User {
	return &models.User{
		BaseModel:      models.BaseModel{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"},
		Name:           "Test Member",
		Email:          "member@example.com",
		Role:           role,
		ApprovalStatus: models.ApprovalApproved,
	}
}

func TestAuthorize_NotLoggedIn(t *testing.T) {
	env := testAccessEnv(t, "http://unused.invalid", nil)

	var out bytes.Buffer
	ok, err := env.authorize(context.Background(), "members approve", guard.Protected(models.RoleAdmin), &out)

	if ok {
		t.Fatal("expected authorization to be denied")
	}
	if err == nil {
		t.Fatal("expected a login hint error")
	}
	if !strings.Contains(err.Error(), "clubdeck login") {
		t.Errorf("expected login hint, got '%v'", err)
	}
	if !strings.Contains(err.Error(), "members approve") {
		t.Errorf("expected the original target in the hint, got '%v'", err)
	}
}

func TestAuthorize_PendingApprovalShowsPanel(t *testing.T) {
	user := approvedMember(models.RoleUser)
	user.ApprovalStatus = models.ApprovalPending
	env := testAccessEnv(t, "http://unused.invalid", user)

	var out bytes.Buffer
	ok, err := env.authorize(context.Background(), "dashboard", guard.Protected(), &out)

	if ok {
		t.Fatal("expected authorization to be denied")
	}
	if err != nil {
		t.Fatalf("pending approval must render a panel, not an error: %v", err)
	}
	if !strings.Contains(out.String(), "PENDING") {
		t.Errorf("expected panel to name the status, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "clubdeck events ls") {
		t.Errorf("expected panel to point at public content, got:\n%s", out.String())
	}
}

func TestAuthorize_NonAdminFallsBackToDashboard(t *testing.T) {
	srv := httptest.NewServer(emptyListHandler())
	defer srv.Close()

	env := testAccessEnv(t, srv.URL, approvedMember(models.RoleUser))

	var out bytes.Buffer
	ok, err := env.authorize(context.Background(), "members ls", guard.Protected(models.RoleAdmin), &out)

	if ok {
		t.Fatal("expected authorization to be denied")
	}
	if err != nil {
		t.Fatalf("fallback dashboard must not error: %v", err)
	}
	if !strings.Contains(out.String(), "restricted to club admins") {
		t.Errorf("expected degradation notice, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Welcome back, Test Member!") {
		t.Errorf("expected the dashboard to render, got:\n%s", out.String())
	}
}

func TestAuthorize_AdminAllowed(t *testing.T) {
	env := testAccessEnv(t, "http://unused.invalid", approvedMember(models.RoleAdmin))

	var out bytes.Buffer
	ok, err := env.authorize(context.Background(), "members ls", guard.Protected(models.RoleAdmin), &out)

	if !ok {
		t.Fatal("expected admin to be authorized")
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on allow, got:\n%s", out.String())
	}
}

func TestRenderDashboard_EmptyLists(t *testing.T) {
	srv := httptest.NewServer(emptyListHandler())
	defer srv.Close()

	env := testAccessEnv(t, srv.URL, approvedMember(models.RoleUser))

	var out bytes.Buffer
	if err := renderDashboard(context.Background(), env, &out); err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if !strings.Contains(out.String(), "Upcoming events:") {
		t.Errorf("expected events section, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "(none)") {
		t.Errorf("expected empty placeholders, got:\n%s", out.String())
	}
}
