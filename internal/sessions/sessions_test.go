package sessions

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	manager, err := NewManager(dbPath, 24*time.Hour, false)
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	return manager
}

func setupRouter(manager *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(manager.LoadSave())

	router.GET("/put", func(c *gin.Context) {
		manager.PutFlash(c.Request.Context(), "Author created")
		c.Redirect(http.StatusFound, "/pop")
	})
	router.GET("/pop", func(c *gin.Context) {
		c.String(http.StatusOK, manager.PopFlash(c.Request.Context()))
	})

	return router
}

func TestManager_FlashRoundTrip(t *testing.T) {
	manager := setupManager(t)
	router := setupRouter(manager)

	// Store the flash; the middleware commits the session and sets the cookie.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/put", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	session := cookies[0]
	assert.Equal(t, "session", session.Name)
	assert.True(t, session.HttpOnly)

	// The follow-up request sees the message exactly once.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/pop", nil)
	req.AddCookie(session)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Author created", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/pop", nil)
	req.AddCookie(session)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestManager_NoCookieMeansNoFlash(t *testing.T) {
	manager := setupManager(t)
	router := setupRouter(manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
