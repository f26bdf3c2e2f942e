// Package testutil holds the shared fixtures for the HTTP level test suites.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/config"
	"github.com/kendall-kelly/stock-api/middleware"
	"github.com/kendall-kelly/stock-api/routes"
	"github.com/kendall-kelly/stock-api/services"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test for the duration of t
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	t.Setenv("GO_ENV", "test")
	RequireTestEnvironment(t)
}

// TestConfig returns a configuration for an in-memory SQLite database with
// authentication disabled
func TestConfig() *config.Config {
	return &config.Config{
		DatabaseURL:        "sqlite://:memory:",
		Port:               "8080",
		GoEnv:              "test",
		AuthDisabled:       true,
		LogLevel:           "error",
		CORSAllowedOrigins: []string{"*"},
	}
}

// NewTestDB opens a migrated in-memory database that is closed with the test
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.ConnectDatabase(TestConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, config.MigrateDatabase(db))
	t.Cleanup(func() {
		_ = config.CloseDatabase(db)
	})
	return db
}

// RouterOptions tweak the router built by NewTestRouter
type RouterOptions struct {
	Config     *config.Config
	Images     services.ImageService
	WriteGuard []gin.HandlerFunc
	Log        *zap.Logger
}

// NewTestRouter builds the full application router over db. Without a
// WriteGuard the mutation routes get MockWriteGuard with the write scope.
func NewTestRouter(t *testing.T, db *gorm.DB, opts RouterOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if opts.Config == nil {
		opts.Config = TestConfig()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.WriteGuard == nil {
		opts.WriteGuard = MockWriteGuard(middleware.WriteStockScope)
	}

	router, err := routes.NewRouter(routes.Dependencies{
		Config:     opts.Config,
		DB:         db,
		Log:        opts.Log,
		Images:     opts.Images,
		WriteGuard: opts.WriteGuard,
	})
	require.NoError(t, err)
	return router
}

// PerformRequest sends a request through handler. A non-nil body is encoded
// as JSON unless it already is an io.Reader.
func PerformRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// Envelope is the JSON wrapper every API response uses
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

// DecodeEnvelope decodes a response body and, when data is non-nil, its data field
func DecodeEnvelope(t *testing.T, body []byte, data interface{}) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env), "response should be valid JSON: %s", body)
	if data != nil {
		require.NotEmpty(t, env.Data, "response has no data: %s", body)
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

// ErrorCode returns the error code of a failed response, or "" on success
func ErrorCode(t *testing.T, body []byte) string {
	t.Helper()

	env := DecodeEnvelope(t, body, nil)
	if env.Error == nil {
		return ""
	}
	return env.Error.Code
}
