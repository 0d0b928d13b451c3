package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// staticTokens is a TokenSource with a fixed token
type staticTokens struct {
	token string
}

func (s *staticTokens) Token() (string, bool) {
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Envelope{Success: true, Message: "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, &staticTokens{token: "token-abc"})
	if _, err := c.ListEvents(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotAuth != "Bearer token-abc" {
		t.Errorf("expected 'Bearer token-abc', got '%s'", gotAuth)
	}
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Envelope{Success: true, Message: "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, &staticTokens{})
	if _, err := c.ListEvents(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got '%s'", gotAuth)
	}
}

func TestClient_SetsRequestID(t *testing.T) {
	ids := make(map[string]bool)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[r.Header.Get("X-Request-Id")] = true
		json.NewEncoder(w).Encode(Envelope{Success: true, Message: "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	for i := 0; i < 3; i++ {
		if _, err := c.ListEvents(context.Background()); err != nil {
			t.Fatalf("request failed: %v", err)
		}
	}

	if ids[""] {
		t.Error("expected every request to carry an X-Request-Id")
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 distinct request ids, got %d", len(ids))
	}
}

func TestClient_BusinessFailurePassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Business failure riding on a 200: the client must hand the
		// envelope back, not turn it into a transport error
		json.NewEncoder(w).Encode(Envelope{Success: false, Message: "Email already registered"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	env, err := c.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if env.Success {
		t.Error("expected success=false to pass through")
	}
	if err := env.Err("fallback"); err == nil || err.Error() != "Email already registered" {
		t.Errorf("expected server message, got %v", err)
	}
}

func TestClient_NonOKSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(Envelope{Success: false, Message: "Invalid email or password"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), "member@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error from 401")
	}
	if err.Error() != "Invalid email or password" {
		t.Errorf("expected server message, got '%v'", err)
	}
}

func TestClient_NonOKFallsBackWhenBodyUnparseable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), "member@example.com", "password123")
	if err == nil {
		t.Fatal("expected error from 502")
	}
	if err.Error() != "Login failed" {
		t.Errorf("expected fallback message, got '%v'", err)
	}
}

func TestClient_MultipartCarriesDataFieldAndFiles(t *testing.T) {
	type captured struct {
		data       string
		fileFields map[string][]string
		contents   map[string]string
	}
	var got captured

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}

		got.data = r.FormValue(DataFieldName)
		got.fileFields = make(map[string][]string)
		got.contents = make(map[string]string)
		for field, headers := range r.MultipartForm.File {
			for _, h := range headers {
				got.fileFields[field] = append(got.fileFields[field], h.Filename)
				f, err := h.Open()
				if err != nil {
					t.Errorf("failed to open part: %v", err)
					continue
				}
				raw, _ := io.ReadAll(f)
				f.Close()
				got.contents[h.Filename] = string(raw)
			}
		}

		json.NewEncoder(w).Encode(Envelope{Success: true, Message: "Event created"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	form := &EventForm{Title: "Orientation", Location: "Auditorium"}
	files := []FilePart{
		{Field: "coverImage", FileName: "cover.png", Content: []byte("png-bytes")},
		{Field: "attachments", FileName: "schedule.pdf", Content: []byte("pdf-bytes")},
		{Field: "attachments", FileName: "map.pdf", Content: []byte("map-bytes")},
	}

	if _, err := c.CreateEvent(context.Background(), form, files); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	// The structured payload travels as one JSON blob in the data field
	var decoded EventForm
	if err := json.Unmarshal([]byte(got.data), &decoded); err != nil {
		t.Fatalf("data field is not valid JSON: %v", err)
	}
	if decoded.Title != "Orientation" || decoded.Location != "Auditorium" {
		t.Errorf("data field did not round-trip, got %+v", decoded)
	}

	if len(got.fileFields["coverImage"]) != 1 {
		t.Errorf("expected 1 coverImage part, got %d", len(got.fileFields["coverImage"]))
	}
	if len(got.fileFields["attachments"]) != 2 {
		t.Errorf("expected 2 attachment parts, got %d", len(got.fileFields["attachments"]))
	}
	if got.contents["cover.png"] != "png-bytes" {
		t.Error("cover image content did not round-trip")
	}
	if got.contents["schedule.pdf"] != "pdf-bytes" || got.contents["map.pdf"] != "map-bytes" {
		t.Error("attachment content did not round-trip")
	}
}

func TestClient_JSONWhenNoFiles(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(Envelope{Success: true, Message: "Notice published"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	form := &NoticeForm{Title: "Meeting moved", Body: "Now in room 204"}
	if _, err := c.CreateNotice(context.Background(), form, nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("expected application/json without files, got '%s'", gotContentType)
	}

	var decoded NoticeForm
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if decoded.Title != "Meeting moved" {
		t.Errorf("body did not round-trip, got %+v", decoded)
	}
}

func TestDecode(t *testing.T) {
	env := &Envelope{
		Success: true,
		Data:    json.RawMessage(`{"accessToken":"token-abc","user":{"email":"member@example.com"}}`),
	}

	data, err := Decode[LoginData](env)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.AccessToken != "token-abc" {
		t.Errorf("expected token 'token-abc', got '%s'", data.AccessToken)
	}
	if data.User == nil || data.User.Email != "member@example.com" {
		t.Errorf("expected user to decode, got %+v", data.User)
	}

	empty := &Envelope{Success: true}
	if _, err := Decode[LoginData](empty); err == nil {
		t.Error("expected error decoding empty data")
	}
}

func TestEnvelope_Err(t *testing.T) {
	ok := &Envelope{Success: true}
	if err := ok.Err("fallback"); err != nil {
		t.Errorf("expected nil for success, got %v", err)
	}

	withMessage := &Envelope{Success: false, Message: "Admin access required"}
	if err := withMessage.Err("fallback"); err == nil || err.Error() != "Admin access required" {
		t.Errorf("expected server message, got %v", err)
	}

	silent := &Envelope{Success: false}
	if err := silent.Err("fallback"); err == nil || err.Error() != "fallback" {
		t.Errorf("expected fallback, got %v", err)
	}
}
