package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/clubdeck-dev/clubdeck/internal/config"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Database: config.DatabaseConfig{URL: filepath.Join(dir, "test.sqlite")},
		HTTP:     config.HTTPConfig{Port: "0", CORSOrigin: "http://localhost:5173"},
		Uploads:  config.UploadsConfig{Dir: filepath.Join(dir, "uploads")},
	}

	srv, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	return srv
}

// apiCall sends a JSON request and decodes the envelope
func apiCall(t *testing.T, srv *Server, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func dataOf(t *testing.T, env envelope) map[string]interface{} {
	t.Helper()
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok, "expected object data, got %T", env.Data)
	return data
}

func setupAdmin(t *testing.T, srv *Server) string {
	t.Helper()

	code, env := apiCall(t, srv, "POST", "/api/setup", "", map[string]string{
		"name":     "Admin",
		"email":    "admin@club.test",
		"password": "adminpass123",
	})
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)

	token, ok := dataOf(t, env)["accessToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func registerStudent(t *testing.T, srv *Server, email string) string {
	t.Helper()

	code, env := apiCall(t, srv, "POST", "/api/users/create-student", "", map[string]string{
		"name":          "Student",
		"email":         email,
		"password":      "studentpass1",
		"phone":         "01700000000",
		"department":    "CSE",
		"studentId":     "2021-1-60-001",
		"clubWing":      "TECH",
		"paymentMethod": "BKASH",
		"transactionId": "TX123",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	require.True(t, env.Success)

	id, ok := dataOf(t, env)["id"].(string)
	require.True(t, ok)
	return id
}

func loginAs(t *testing.T, srv *Server, email, password string) string {
	t.Helper()

	code, env := apiCall(t, srv, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	require.True(t, env.Success)

	token, ok := dataOf(t, env)["accessToken"].(string)
	require.True(t, ok)
	return token
}

func TestSetupAndLogin(t *testing.T) {
	srv := newTestServer(t)

	token := setupAdmin(t, srv)

	// Second setup must be refused
	code, env := apiCall(t, srv, "POST", "/api/setup", "", map[string]string{
		"name":     "Impostor",
		"email":    "other@club.test",
		"password": "password123",
	})
	require.Equal(t, http.StatusConflict, code)
	require.False(t, env.Success)

	// Wrong password
	code, env = apiCall(t, srv, "POST", "/api/auth/login", "", map[string]string{
		"email":    "admin@club.test",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, code)
	require.False(t, env.Success)
	require.Equal(t, "Invalid email or password", env.Message)

	// Fresh login works
	loginAs(t, srv, "admin@club.test", "adminpass123")

	// Me returns the admin
	code, env = apiCall(t, srv, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "admin@club.test", dataOf(t, env)["email"])
	require.Equal(t, "admin", dataOf(t, env)["role"])
}

func TestStudentRegistration(t *testing.T) {
	srv := newTestServer(t)

	registerStudent(t, srv, "student@club.test")

	// New accounts start pending but can still log in
	token := loginAs(t, srv, "student@club.test", "studentpass1")
	code, env := apiCall(t, srv, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, string(models.ApprovalPending), dataOf(t, env)["approvalStatus"])

	// Duplicate email is refused
	code, env = apiCall(t, srv, "POST", "/api/users/create-student", "", map[string]string{
		"name":          "Twin",
		"email":         "student@club.test",
		"password":      "studentpass1",
		"phone":         "01700000001",
		"department":    "CSE",
		"studentId":     "2021-1-60-002",
		"clubWing":      "TECH",
		"paymentMethod": "CASH",
	})
	require.Equal(t, http.StatusConflict, code)
	require.False(t, env.Success)

	// Unknown wing is rejected at the boundary
	code, _ = apiCall(t, srv, "POST", "/api/users/create-student", "", map[string]string{
		"name":          "Invalid",
		"email":         "invalid@club.test",
		"password":      "studentpass1",
		"phone":         "01700000002",
		"department":    "CSE",
		"studentId":     "2021-1-60-003",
		"clubWing":      "ROBOTICS",
		"paymentMethod": "CASH",
	})
	require.Equal(t, http.StatusBadRequest, code)

	// Non-cash payment requires a transaction id
	code, _ = apiCall(t, srv, "POST", "/api/users/create-student", "", map[string]string{
		"name":          "NoTx",
		"email":         "notx@club.test",
		"password":      "studentpass1",
		"phone":         "01700000003",
		"department":    "CSE",
		"studentId":     "2021-1-60-004",
		"clubWing":      "MEDIA",
		"paymentMethod": "BKASH",
	})
	require.Equal(t, http.StatusBadRequest, code)
}

func TestStudentRegistrationMultipart(t *testing.T) {
	srv := newTestServer(t)

	payload, err := json.Marshal(map[string]string{
		"name":          "Photo Student",
		"email":         "photo@club.test",
		"password":      "studentpass1",
		"phone":         "01700000010",
		"department":    "EEE",
		"studentId":     "2021-2-60-001",
		"clubWing":      "MEDIA",
		"paymentMethod": "CASH",
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("data", string(payload)))
	part, err := w.CreateFormFile("profilePhoto", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/users/create-student", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	photoURL, _ := dataOf(t, env)["profilePhotoUrl"].(string)
	require.True(t, strings.HasPrefix(photoURL, "/uploads/"), "got %q", photoURL)

	// The file landed on disk under the uploads dir
	saved := filepath.Join(srv.config.Uploads.Dir, strings.TrimPrefix(photoURL, "/uploads/"))
	raw, err := os.ReadFile(saved)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(raw))
}

func TestAdminGuards(t *testing.T) {
	srv := newTestServer(t)
	setupAdmin(t, srv)
	registerStudent(t, srv, "student@club.test")
	studentToken := loginAs(t, srv, "student@club.test", "studentpass1")

	// No token
	code, _ := apiCall(t, srv, "GET", "/api/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	// Garbage token
	code, _ = apiCall(t, srv, "GET", "/api/users", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	// Authenticated non-admin
	code, env := apiCall(t, srv, "GET", "/api/users", studentToken, nil)
	require.Equal(t, http.StatusForbidden, code)
	require.False(t, env.Success)
}

func TestMemberDirectoryRequiresApproval(t *testing.T) {
	srv := newTestServer(t)
	adminToken := setupAdmin(t, srv)
	studentID := registerStudent(t, srv, "student@club.test")
	studentToken := loginAs(t, srv, "student@club.test", "studentpass1")

	// Pending members are blocked
	code, env := apiCall(t, srv, "GET", "/api/members", studentToken, nil)
	require.Equal(t, http.StatusForbidden, code)
	require.False(t, env.Success)

	// Once approved the directory opens up and lists only approved members
	code, _ = apiCall(t, srv, "PATCH", "/api/users/"+studentID+"/status", adminToken,
		map[string]string{"approvalStatus": "APPROVED"})
	require.Equal(t, http.StatusOK, code)
	registerStudent(t, srv, "pending@club.test")

	code, env = apiCall(t, srv, "GET", "/api/members", studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	listed, _ := env.Data.([]interface{})
	require.Len(t, listed, 2) // the admin and the approved student
}

func TestMemberLifecycle(t *testing.T) {
	srv := newTestServer(t)
	adminToken := setupAdmin(t, srv)
	studentID := registerStudent(t, srv, "student@club.test")

	// Approve
	code, env := apiCall(t, srv, "PATCH", "/api/users/"+studentID+"/status", adminToken,
		map[string]string{"approvalStatus": "APPROVED"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "APPROVED", dataOf(t, env)["approvalStatus"])

	// Invalid status value
	code, _ = apiCall(t, srv, "PATCH", "/api/users/"+studentID+"/status", adminToken,
		map[string]string{"approvalStatus": "MAYBE"})
	require.Equal(t, http.StatusBadRequest, code)

	// Promote to admin
	code, env = apiCall(t, srv, "PATCH", "/api/users/"+studentID+"/role", adminToken,
		map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "admin", dataOf(t, env)["role"])

	// Soft delete hides the member from the default listing
	code, _ = apiCall(t, srv, "DELETE", "/api/users/"+studentID, adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = apiCall(t, srv, "GET", "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	listed, _ := env.Data.([]interface{})
	require.Len(t, listed, 1) // only the admin

	code, env = apiCall(t, srv, "GET", "/api/users?includeDeleted=true", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	listed, _ = env.Data.([]interface{})
	require.Len(t, listed, 2)

	// Deleted members cannot authenticate
	code, _ = apiCall(t, srv, "POST", "/api/auth/login", "", map[string]string{
		"email":    "student@club.test",
		"password": "studentpass1",
	})
	require.Equal(t, http.StatusUnauthorized, code)

	// Restore brings them back
	code, _ = apiCall(t, srv, "PATCH", "/api/users/"+studentID+"/restore", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	loginAs(t, srv, "student@club.test", "studentpass1")
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	srv := newTestServer(t)
	adminToken := setupAdmin(t, srv)

	code, env := apiCall(t, srv, "GET", "/api/auth/me", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	adminID := dataOf(t, env)["id"].(string)

	code, env = apiCall(t, srv, "DELETE", "/api/users/"+adminID, adminToken, nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)
}

func TestEventCreateWithFiles(t *testing.T) {
	srv := newTestServer(t)
	adminToken := setupAdmin(t, srv)

	payload, err := json.Marshal(map[string]string{
		"title":    "Orientation",
		"location": "Auditorium",
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("data", string(payload)))
	cover, err := w.CreateFormFile("coverImage", "cover.png")
	require.NoError(t, err)
	fmt.Fprint(cover, "cover-bytes")
	for i := 0; i < 2; i++ {
		att, err := w.CreateFormFile("attachments", fmt.Sprintf("doc%d.pdf", i))
		require.NoError(t, err)
		fmt.Fprint(att, "pdf-bytes")
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/events", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	data := dataOf(t, env)
	require.Equal(t, "Orientation", data["title"])

	coverURL, _ := data["coverImageUrl"].(string)
	require.True(t, strings.HasPrefix(coverURL, "/uploads/"))
	attachments, _ := data["attachmentUrls"].([]interface{})
	require.Len(t, attachments, 2)

	// Public listing includes the event without auth
	code, env := apiCall(t, srv, "GET", "/api/events", "", nil)
	require.Equal(t, http.StatusOK, code)
	events, _ := env.Data.([]interface{})
	require.Len(t, events, 1)
}

func TestGalleryRequiresImage(t *testing.T) {
	srv := newTestServer(t)
	adminToken := setupAdmin(t, srv)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("data", `{"title":"No photo"}`))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/gallery", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeedFromFile(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	fixture := `
users:
  - name: Seed Admin
    email: seed-admin@club.test
    password: seedpass123
    role: admin
    approvalStatus: APPROVED
  - name: Seed Member
    email: seed-member@club.test
    password: seedpass123
    clubWing: TECH
events:
  - title: Seeded Event
    location: Room 101
notices:
  - title: Seeded Notice
    body: Welcome aboard
advisors:
  - name: Dr. Advisor
    designation: Professor
`
	require.NoError(t, os.WriteFile(seedPath, []byte(fixture), 0644))

	cfg := &config.Config{
		Database: config.DatabaseConfig{URL: filepath.Join(dir, "test.sqlite")},
		HTTP:     config.HTTPConfig{Port: "0", CORSOrigin: "http://localhost:5173"},
		Uploads:  config.UploadsConfig{Dir: filepath.Join(dir, "uploads")},
		Seed:     config.SeedConfig{File: seedPath},
	}
	srv, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)

	// Seeded admin can log in, seeded member defaults to pending
	loginAs(t, srv, "seed-admin@club.test", "seedpass123")
	token := loginAs(t, srv, "seed-member@club.test", "seedpass123")
	code, env := apiCall(t, srv, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "PENDING", dataOf(t, env)["approvalStatus"])

	code, env = apiCall(t, srv, "GET", "/api/events", "", nil)
	require.Equal(t, http.StatusOK, code)
	events, _ := env.Data.([]interface{})
	require.Len(t, events, 1)

	// Seeding is idempotent: a second boot with the same file adds nothing
	srv2, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	code, env = apiCall(t, srv2, "GET", "/api/events", "", nil)
	require.Equal(t, http.StatusOK, code)
	events, _ = env.Data.([]interface{})
	require.Len(t, events, 1)
}
