package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conorfennell/vocabdeck/internal/seed"
	"github.com/conorfennell/vocabdeck/internal/storage"
	"github.com/conorfennell/vocabdeck/internal/summary"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnv struct {
	server *Server
	db     *storage.DB
	data   string
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "web.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	data := t.TempDir()
	s, err := NewServer(db, seed.New(db, data, "irregular_verbs", "verb_governance"), opts)
	if err != nil {
		t.Fatalf("NewServer() returned an unexpected error: %v", err)
	}
	return &testEnv{server: s, db: db, data: data}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	env := newTestEnv(t, Options{})

	rec := env.do(t, http.MethodGet, "/api/decks", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/decks", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("Expected the client's request id to be echoed, got %q", got)
	}
}

func TestStaticEmbedded(t *testing.T) {
	env := newTestEnv(t, Options{})

	rec := env.do(t, http.MethodGet, "/", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "vocabdeck") {
		t.Errorf("Expected the placeholder page, got %q", rec.Body.String())
	}
}

func TestStaticDir(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>front end</p>"), 0644)
	os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0644)
	env := newTestEnv(t, Options{StaticDir: dir})

	rec := env.do(t, http.MethodGet, "/", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "front end") {
		t.Errorf("Expected index.html from the static dir, got %q", rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/app.js", "")
	expectStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/missing.css", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestUnknownAPIRoute(t *testing.T) {
	env := newTestEnv(t, Options{})
	rec := env.do(t, http.MethodGet, "/api/nothing", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestSummaryEndpoint(t *testing.T) {
	env := newTestEnv(t, Options{
		Now: func() time.Time { return time.Date(2024, 5, 10, 15, 0, 0, 0, time.Local) },
	})

	env.do(t, http.MethodPost, "/api/decks", `{"id":"d1","name":"Verbs"}`)
	env.do(t, http.MethodPost, "/api/cards", `{"id":"c1","deck_id":"d1","front":"go","back":"went"}`)
	for _, body := range []string{
		`{"day":"2024-05-08","reviews":4,"correct":4,"all_due_completed":true}`,
		`{"day":"2024-05-09","reviews":6,"correct":3,"all_due_completed":true}`,
		`{"day":"2024-05-10","reviews":2,"correct":1}`,
	} {
		expectStatus(t, env.do(t, http.MethodPost, "/api/review-stats", body), http.StatusOK)
	}

	rec := env.do(t, http.MethodGet, "/api/review-stats/summary", "")
	expectStatus(t, rec, http.StatusOK)

	got := decode[summary.Summary](t, rec)

	if got.Today.Day != "2024-05-10" || got.Today.Reviews != 2 {
		t.Errorf("Unexpected today: %+v", got.Today)
	}
	if got.Week.Reviews != 12 || got.Week.Days != 3 || got.Week.Accuracy != 67 {
		t.Errorf("Unexpected week: %+v", got.Week)
	}
	if got.Streak != 2 {
		t.Errorf("Expected streak 2, got %d", got.Streak)
	}
	if got.TotalCards != 1 {
		t.Errorf("Expected 1 card, got %d", got.TotalCards)
	}

	rec = env.do(t, http.MethodGet, "/api/review-stats/summary?today=2024-05-20", "")
	expectStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/api/review-stats/summary?today=yesterday", "")
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestStorageFailureIsHidden(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.db.Close()

	rec := env.do(t, http.MethodGet, "/api/decks", "")
	expectStatus(t, rec, http.StatusInternalServerError)
	body := decode[map[string]string](t, rec)
	if body["error"] != "Internal Server Error" {
		t.Errorf("Expected a generic error body, got %v", body)
	}
}
