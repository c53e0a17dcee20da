package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golinks/golinks-be/internal/api"
	"github.com/golinks/golinks-be/internal/auth"
	"github.com/golinks/golinks-be/internal/database"
	"github.com/golinks/golinks-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	tokens := auth.NewManager("test-secret", 24*time.Hour)
	return api.NewRouter(tokens, services.NewUserService(db), services.NewShortcutService(db), []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func signup(t *testing.T, router http.Handler, name, email string) string {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/signup", "", map[string]string{
		"name": name, "email": email, "password": "hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestSignup(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/signup", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ada", user["name"])
	// The password must never appear in any form in the response.
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignupValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/signup", "", map[string]string{
		"name": "Ada", "email": "ada@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	signup(t, router, "Ada", "ada@example.com")

	rec := doRequest(t, router, http.MethodPost, "/api/signup", "", map[string]string{
		"name": "Ada Again", "email": "ada@example.com", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	signup(t, router, "Ada", "ada@example.com")

	rec := doRequest(t, router, http.MethodPost, "/api/login", "", map[string]string{
		"email": "ada@example.com", "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["token"])

	rec = doRequest(t, router, http.MethodPost, "/api/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")

	rec = doRequest(t, router, http.MethodPost, "/api/login", "", map[string]string{
		"email": "ada@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/users", "/api/profile", "/api/shortcuts", "/api/search/docs"} {
		rec := doRequest(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestProfileAndUsers(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "Ada", "ada@example.com")
	signup(t, router, "Grace", "grace@example.com")

	rec := doRequest(t, router, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada@example.com", decodeBody(t, rec)["email"])

	rec = doRequest(t, router, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestShortcutLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "Ada", "ada@example.com")

	// Create, with name/url normalization applied.
	rec := doRequest(t, router, http.MethodPost, "/api/shortcuts", token, map[string]string{
		"name": "Google", "url": "google.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)["shortcut"].(map[string]interface{})
	assert.Equal(t, "google", created["name"])
	assert.Equal(t, "https://google.com", created["url"])
	assert.Equal(t, "general", created["category"])
	id := created["id"].(string)

	// List.
	rec = doRequest(t, router, http.MethodGet, "/api/shortcuts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// Partial update.
	rec = doRequest(t, router, http.MethodPut, "/api/shortcuts/"+id, token, map[string]string{
		"description": "search engine",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody(t, rec)["shortcut"].(map[string]interface{})
	assert.Equal(t, "search engine", updated["description"])
	assert.Equal(t, "google", updated["name"])

	// Search hit bumps usage stats.
	rec = doRequest(t, router, http.MethodGet, "/api/search/GOOGLE", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["found"])
	hit := body["shortcut"].(map[string]interface{})
	assert.Equal(t, float64(1), hit["usageCount"])
	assert.NotNil(t, hit["lastUsed"])

	// Search miss is a 200, not an error.
	rec = doRequest(t, router, http.MethodGet, "/api/search/nothing", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["found"])

	// Delete.
	rec = doRequest(t, router, http.MethodDelete, "/api/shortcuts/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shortcut deleted successfully")

	rec = doRequest(t, router, http.MethodDelete, "/api/shortcuts/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShortcutDuplicateName(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "Ada", "ada@example.com")

	rec := doRequest(t, router, http.MethodPost, "/api/shortcuts", token, map[string]string{
		"name": "docs", "url": "docs.example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/shortcuts", token, map[string]string{
		"name": "DOCS", "url": "other.example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shortcut name already exists")
}

func TestShortcutsAreScopedToCaller(t *testing.T) {
	router := newTestRouter(t)
	adaToken := signup(t, router, "Ada", "ada@example.com")
	graceToken := signup(t, router, "Grace", "grace@example.com")

	rec := doRequest(t, router, http.MethodPost, "/api/shortcuts", adaToken, map[string]string{
		"name": "docs", "url": "docs.example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["shortcut"].(map[string]interface{})["id"].(string)

	// Grace can't see, delete, or update Ada's shortcut.
	rec = doRequest(t, router, http.MethodGet, "/api/shortcuts", graceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = doRequest(t, router, http.MethodDelete, "/api/shortcuts/"+id, graceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/shortcuts/"+id, graceToken, map[string]string{
		"description": "mine now",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// But she may use the same keyword herself.
	rec = doRequest(t, router, http.MethodPost, "/api/shortcuts", graceToken, map[string]string{
		"name": "docs", "url": "docs.example.com",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}
