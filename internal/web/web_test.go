package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "health_tracker_session"

type staticValidator struct{}

func (staticValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid")
	}
	return &types.TokenClaims{UserID: uuid.New(), Username: "alice"}, nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	require.NoError(t, RegisterRoutes(router, staticValidator{}, cookieName))
	return router
}

func get(router *gin.Engine, path string, session bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if session {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "good"})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRootRedirects(t *testing.T) {
	router := newRouter(t)

	w := get(router, "/", false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = get(router, "/", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestPages(t *testing.T) {
	router := newRouter(t)

	w := get(router, "/login", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="login-form"`)
	assert.Contains(t, w.Body.String(), `id="signup-form"`)

	w = get(router, "/dashboard", false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = get(router, "/dashboard", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.Contains(t, w.Body.String(), `id="photo-form"`)
	assert.Contains(t, w.Body.String(), `<details id="res-details" class="hidden">`, "breakdown is collapsible and hidden until there are items")
}

func TestStaticAssets(t *testing.T) {
	router := newRouter(t)

	w := get(router, "/static/app.js", false)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "FileReader")
	assert.Contains(t, body, "Uploading image…")
	assert.Contains(t, body, "Analyzing with AI…")
	assert.Contains(t, body, "finally")
	assert.Contains(t, body, "/api/vitals/history")

	w = get(router, "/static/style.css", false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFormsLockWhileSubmitting(t *testing.T) {
	router := newRouter(t)

	w := get(router, "/static/app.js", false)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "b.disabled = true")
	assert.Contains(t, body, "b.disabled = false")
	// Manual meal, activity, vitals and profile each go through the lock.
	assert.Equal(t, 4, strings.Count(body, "await withSubmitLock(form,"))
	assert.Contains(t, body, "display.items.length === 0")
}
