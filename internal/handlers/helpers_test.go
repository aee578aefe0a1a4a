package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yukikurage/task-management-services/internal/database"
	"github.com/yukikurage/task-management-services/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func openTestDB(t *testing.T, tables ...interface{}) *gorm.DB {
	t.Helper()
	log := quietLogger()
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, DSN: ":memory:", Logger: log})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, log, tables...))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// newTestRouter wires the request id and error mapping middleware the
// handlers rely on.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(quietLogger()), middleware.ErrorHandler(false))
	return r
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    json.RawMessage `json:"errors"`
	RequestID string          `json:"requestId"`
}

func perform(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}
