package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindik/internal/domain"
	"remindik/internal/logging"
	"remindik/internal/repository/sqlite"
	"remindik/internal/schedule"
)

var serverNow = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func setupServer(t *testing.T, staticDir string) (*Server, *sqlite.SQLiteRepository) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := Config{
		Addr:         "127.0.0.1:0",
		StaticDir:    staticDir,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
	srv := New(cfg, repo, schedule.FixedClock{Instant: serverNow}, logging.NewNopLogger())
	return srv, repo
}

func TestServer_GetReminders_Empty(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reminders", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var collection domain.Collection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
	assert.NotNil(t, collection.Tasks)
	assert.Empty(t, collection.Tasks)
	assert.Equal(t, int64(0), collection.LastModified)

	// Empty collections still serialize the todos key as an array.
	assert.Contains(t, rec.Body.String(), `"todos":[]`)
}

func TestServer_PostThenGetRoundTrip(t *testing.T) {
	srv, _ := setupServer(t, "")
	handler := srv.Handler()

	collection := domain.Collection{
		Tasks: []domain.Task{
			domain.NewImmediateTask("Water the plants", serverNow.Add(-time.Hour)),
		},
		LastModified: 12345,
	}
	body, err := json.Marshal(collection)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reminders", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var saved saveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.True(t, saved.Success)
	// The server stamps the write with its own clock, ignoring the
	// client's lastModified.
	assert.Equal(t, serverNow.UnixMilli(), saved.LastModified)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reminders", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched domain.Collection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Len(t, fetched.Tasks, 1)
	assert.Equal(t, "Water the plants", fetched.Tasks[0].Text)
	assert.Equal(t, serverNow.UnixMilli(), fetched.LastModified)
}

func TestServer_PostReplacesExistingTasks(t *testing.T) {
	srv, repo := setupServer(t, "")
	handler := srv.Handler()

	old := &sqlite.Task{ID: "stale", Text: "Old", Kind: "immediate", CreatedAt: serverNow}
	require.NoError(t, repo.SaveTask(context.Background(), old))

	body, err := json.Marshal(domain.Collection{
		Tasks: []domain.Task{domain.NewImmediateTask("Fresh", serverNow)},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reminders", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	tasks, err := repo.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fresh", tasks[0].Text)
}

func TestServer_PostRejectsInvalidJSON(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reminders", bytes.NewReader([]byte("{nope"))))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp saveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid JSON", resp.Error)
}

func TestServer_OptionsPreflight(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/reminders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reminders", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_ServesStaticFiles(t *testing.T) {
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>viewer</html>"), 0o644))

	srv, _ := setupServer(t, staticDir)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "viewer")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_NoStaticDirReturnsNotFound(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
