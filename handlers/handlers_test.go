package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/config"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/database"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/flatlog"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/repository"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/services"
)

// testEnv wires the full request path the way main does, minus CORS, against
// throwaway storage.
type testEnv struct {
	router  *chi.Mux
	zones   repository.ZoneRepository
	counts  repository.CountRepository
	videos  repository.VideoRepository
	cookies []*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	db, err := database.InitGormDB(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))

	cfg := config.Config{
		DatabasePath:  filepath.Join(dir, "test.db"),
		UploadsPath:   filepath.Join(dir, "uploads"),
		ZonesFilePath: filepath.Join(dir, "zones.json"),
		CountsLogPath: filepath.Join(dir, "counts_log.csv"),
		SessionSecret: "test-secret",
	}

	zoneFile, err := flatlog.NewJSONZoneFile(cfg.ZonesFilePath)
	require.NoError(t, err)
	countLog, err := flatlog.NewCSVCountLog(cfg.CountsLogPath)
	require.NoError(t, err)

	userRepo := repository.NewGormUserRepository(db)
	videoRepo := repository.NewGormVideoRepository(db)
	zoneRepo := repository.NewGormZoneRepository(db)
	countRepo := repository.NewGormCountRepository(db)

	resolver := services.NewVideoResolver(videoRepo)
	telemetry := services.NewTelemetryService(resolver, zoneRepo, countRepo, zoneFile, countLog)

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	authHandler := NewAuthHandler(userRepo, store)
	videoHandler := NewVideoHandler(videoRepo, cfg)
	telemetryHandler := NewTelemetryHandler(telemetry, zoneFile, countLog)

	r := chi.NewRouter()
	r.Use(SessionContext(store))
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.CurrentUser)
		r.Post("/videos", videoHandler.Upload)
		r.Get("/videos", RequireUser(videoHandler.ListMine))
		r.Get("/videos/{video_id}/content", videoHandler.Content)
		r.Delete("/videos/{video_id}", RequireUser(videoHandler.Delete))
		r.Post("/zones", telemetryHandler.SaveZones)
		r.Get("/zones/export", telemetryHandler.ExportZones)
		r.Post("/counts", telemetryHandler.LogCounts)
		r.Get("/counts/export", telemetryHandler.ExportCounts)
	})

	return &testEnv{router: r, zones: zoneRepo, counts: countRepo, videos: videoRepo}
}

func (env *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range env.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		env.cookies = cookies
	}
	return rec
}

func (env *testEnv) doJSON(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return env.do(t, method, path, bytes.NewReader(data), "application/json")
}

func (env *testEnv) login(t *testing.T, username, password string) {
	t.Helper()
	rec := env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

// upload posts a small multipart video and returns the stored filename and id.
func (env *testEnv) upload(t *testing.T, originalName string) (string, uint) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="video"; filename="`+originalName+`"`)
	header.Set("Content-Type", "video/mp4")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake video bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := env.do(t, http.MethodPost, "/api/videos", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		OK       bool   `json:"ok"`
		Filename string `json:"filename"`
		ID       *uint  `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	require.NotNil(t, resp.ID)
	require.True(t, strings.HasSuffix(resp.Filename, "_"+originalName))
	return resp.Filename, *resp.ID
}
