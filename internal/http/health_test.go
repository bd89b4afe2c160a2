package http

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/locallibrary/internal/database"
)

func setupHealthTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_health_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func newHealthRouter(db *database.Database, version string) *gin.Engine {
	router := gin.New()
	router.GET("/health", NewHealthController(db, version).Status)
	return router
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		w := getPage(newHealthRouter(db, "1.0.0"), "/health")

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports a missing database as not configured", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		w := getPage(newHealthRouter(nil, "1.0.0"), "/health")

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		require.NoError(t, db.Close())

		w := getPage(newHealthRouter(db, "1.0.0"), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response HealthResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})

	t.Run("includes version in response", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		w := getPage(newHealthRouter(db, "2.5.3"), "/health")

		var response HealthResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, "2.5.3", response.Version)
	})

	t.Run("omits empty version", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		w := getPage(newHealthRouter(db, ""), "/health")

		assert.NotContains(t, w.Body.String(), "version")
	})
}
