package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/config"
	"github.com/kendall-kelly/stock-api/middleware"
	"github.com/kendall-kelly/stock-api/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.ConnectDatabase(&config.Config{DatabaseURL: "sqlite://:memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, config.MigrateDatabase(db))
	t.Cleanup(func() { _ = config.CloseDatabase(db) })
	return db
}

// setupRouter mounts routes under /api/v1 behind the unit of work middleware
func setupRouter(db *gorm.DB, register func(api *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1", middleware.UnitOfWork(repository.NewStore(db), zap.NewNop()))
	register(api)
	return router
}

func performRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	response := decodeResponse(t, w)
	errBody, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}
