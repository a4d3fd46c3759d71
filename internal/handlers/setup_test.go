package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/auth"
	"github.com/glencullen/golfpoi/internal/config"
	dbpkg "github.com/glencullen/golfpoi/internal/db"
	"github.com/glencullen/golfpoi/internal/imagestore"
	"github.com/glencullen/golfpoi/internal/models"
	"github.com/glencullen/golfpoi/internal/routes"
	"github.com/glencullen/golfpoi/internal/weather"
)

// fakeImageStore stands in for the media host. Ids are handed out in
// sequence so list-order assertions stay readable.
type fakeImageStore struct {
	mu      sync.Mutex
	nextID  int
	deleted []string
}

func (f *fakeImageStore) Upload(_ context.Context, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return fmt.Sprintf("img-%d", f.nextID), nil
}

func (f *fakeImageStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeImageStore) List(_ context.Context, ids []string) ([]imagestore.Image, error) {
	images := make([]imagestore.Image, 0, len(ids))
	for _, id := range ids {
		images = append(images, imagestore.Image{PublicID: id, URL: "https://img.test/" + id})
	}
	return images, nil
}

type fakeWeather struct{}

func (fakeWeather) Current(_ context.Context, _, _ string) weather.Conditions {
	return weather.Conditions{"main": map[string]any{"temp": 11.5}}
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	images *fakeImageStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		SessionSecret:     "test-session-secret",
		SessionCookieName: "golfpoi_session",
	}

	images := &fakeImageStore{}

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.tmpl")
	routes.RegisterRoutes(r, db, cfg, images, fakeWeather{})

	return &testServer{router: r, db: db, cfg: cfg, images: images}
}

func (s *testServer) createUser(t *testing.T, email, password string, admin bool) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		FirstName:    "Homer",
		LastName:     "Simpson",
		Email:        email,
		PasswordHash: string(hashed),
		AdminUser:    admin,
	}
	require.NoError(t, s.db.Create(&user).Error)
	return user
}

func (s *testServer) bearer(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.IssueToken(&user, []byte(s.cfg.JWTSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *testServer) sessionCookie(t *testing.T, user models.User) *http.Cookie {
	t.Helper()

	token, err := auth.IssueSessionToken(user.ID, []byte(s.cfg.SessionSecret))
	require.NoError(t, err)
	return &http.Cookie{Name: s.cfg.SessionCookieName, Value: token}
}

func (s *testServer) doForm(t *testing.T, method, path string, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if form != nil {
		reader = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, reader)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(t *testing.T, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) uploadImage(t *testing.T, courseID uint, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("imagefile", "course.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/golfPOIs/upload/%d", courseID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", authHeader)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
