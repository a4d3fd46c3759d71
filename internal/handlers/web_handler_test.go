package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glencullen/golfpoi/internal/models"
)

func sessionCookieFrom(t *testing.T, s *testServer, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == s.cfg.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("expected a session cookie on the response")
	return nil
}

func TestSignupFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	w := s.doForm(t, http.MethodPost, "/signup", nil, url.Values{
		"firstName": {"Lisa"},
		"lastName":  {"Simpson"},
		"email":     {"lisa@simpson.com"},
		"password":  {"Secret#123"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/report", w.Header().Get("Location"))

	// The cookie issued at signup grants the report page.
	cookie := sessionCookieFrom(t, s, w)
	w = s.doForm(t, http.MethodGet, "/report", cookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Golf courses")
}

func TestSignup_ValidationErrorsRerender(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	w := s.doForm(t, http.MethodPost, "/signup", nil, url.Values{
		"firstName": {"lisa"},
		"lastName":  {"Simpson"},
		"email":     {"lisa@simpson.com"},
		"password":  {"Secret#123"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "First Name")
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.createUser(t, "homer@simpson.com", "Secret#123", false)

	w := s.doForm(t, http.MethodPost, "/login", nil, url.Values{
		"email":    {"homer@simpson.com"},
		"password": {"Wrong#123"},
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Email or password is incorrect")

	w = s.doForm(t, http.MethodPost, "/login", nil, url.Values{
		"email":    {"homer@simpson.com"},
		"password": {"Secret#123"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/report", w.Header().Get("Location"))

	cookie := sessionCookieFrom(t, s, w)
	w = s.doForm(t, http.MethodGet, "/report", cookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestManageUsers_AdminGate(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	member := s.createUser(t, "homer@simpson.com", "Secret#123", false)
	admin := s.createUser(t, "marge@simpson.com", "Secret#123", true)

	w := s.doForm(t, http.MethodGet, "/manageUsers", s.sessionCookie(t, member), nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Admin privilege required")

	w = s.doForm(t, http.MethodGet, "/manageUsers", s.sessionCookie(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "homer@simpson.com")
}

func TestAdminUserUpdate_TogglesAdminFlag(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	member := s.createUser(t, "homer@simpson.com", "Secret#123", false)
	admin := s.createUser(t, "marge@simpson.com", "Secret#123", true)

	w := s.doForm(t, http.MethodPost, fmt.Sprintf("/userUpdate/%d", member.ID), s.sessionCookie(t, admin), url.Values{
		"firstName": {"Homer"},
		"lastName":  {"Simpson"},
		"email":     {"homer@simpson.com"},
		"adminUser": {"on"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	var updated models.User
	require.NoError(t, s.db.First(&updated, member.ID).Error)
	assert.True(t, updated.AdminUser)
}

func TestAuditLogs_AdminOnly(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	member := s.createUser(t, "homer@simpson.com", "Secret#123", false)
	admin := s.createUser(t, "marge@simpson.com", "Secret#123", true)

	w := s.doJSON(t, http.MethodGet, "/api/auditLogs", s.bearer(t, member), nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "admin_required")

	w = s.doJSON(t, http.MethodGet, "/api/auditLogs", s.bearer(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "data")
}
