package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/task-management-services/internal/constants"
	apierrors "github.com/yukikurage/task-management-services/internal/errors"
	"github.com/yukikurage/task-management-services/internal/requestid"
	"github.com/yukikurage/task-management-services/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(log *logrus.Logger, diagnostics bool) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(diagnostics), RequestID(log), AccessLog(true), ErrorHandler(diagnostics))
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRequestID_FreshIDEverywhere(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := newTestEngine(log, false)

	var fromCtx, fromGin string
	r.GET("/ping", func(c *gin.Context) {
		fromCtx = requestid.FromContext(c.Request.Context())
		fromGin, _ = GetRequestID(c)
		response.Success(c, http.StatusOK, "pong", nil)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderRequestID, "caller-supplied")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(constants.HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, "caller-supplied", id)
	assert.Equal(t, id, fromCtx)
	assert.Equal(t, id, fromGin)
	assert.Equal(t, id, decodeEnvelope(t, w).RequestID)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, id, entry.Data["request_id"])
	assert.Equal(t, "caller-supplied", entry.Data["upstream_request_id"])
}

func TestRequestID_DistinctPerRequest(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := newTestEngine(log, false)
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		seen[w.Header().Get(constants.HeaderRequestID)] = true
	}
	assert.Len(t, seen, 5)
}

func TestErrorHandler_MapsKinds(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{apierrors.NotFound("Task not found"), http.StatusNotFound, "Task not found"},
		{apierrors.Forbidden("Unauthorized to update this task"), http.StatusForbidden, "Unauthorized to update this task"},
		{apierrors.Conflict("Email already registered"), http.StatusConflict, "Email already registered"},
		{apierrors.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{errors.New("sql: database is closed"), http.StatusInternalServerError, apierrors.MsgInternalError},
	}

	for _, tc := range cases {
		log, _ := test.NewNullLogger()
		r := newTestEngine(log, false)
		r.GET("/fail", func(c *gin.Context) {
			_ = c.Error(tc.err)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

		assert.Equal(t, tc.status, w.Code, tc.message)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, tc.message, env.Message)
		assert.Empty(t, env.Error)
		assert.Equal(t, w.Header().Get(constants.HeaderRequestID), env.RequestID)
	}
}

func TestErrorHandler_InternalCauseIsLoggedNotEchoed(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := newTestEngine(log, false)
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("dial tcp 10.1.2.3:5432: refused"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.NotContains(t, w.Body.String(), "10.1.2.3")

	var logged bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "request failed" {
			logged = true
			assert.Contains(t, entry.Data[logrus.ErrorKey].(error).Error(), "10.1.2.3")
			assert.Equal(t, "/fail", entry.Data["path"])
			assert.NotEmpty(t, entry.Data["request_id"])
		}
	}
	assert.True(t, logged)
}

func TestErrorHandler_DiagnosticsEchoCause(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := newTestEngine(log, true)
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	env := decodeEnvelope(t, w)
	assert.Equal(t, apierrors.MsgInternalError, env.Message)
	assert.Equal(t, "boom", env.Error)
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := newTestEngine(log, false)
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apierrors.Validation("", []map[string]string{{"field": "email", "message": "is required"}}))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `[{"field":"email","message":"is required"}]`, mustField(t, w, "errors"))
}

func TestRecovery_PanicBecomesInternalEnvelope(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := newTestEngine(log, false)
	r.GET("/panic", func(c *gin.Context) {
		panic("nil map write")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, apierrors.MsgInternalError, env.Message)
	assert.NotEmpty(t, env.RequestID)
	assert.NotContains(t, w.Body.String(), "nil map")
}

func mustField(t *testing.T, w *httptest.ResponseRecorder, name string) string {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	raw, ok := body[name]
	require.True(t, ok, "missing field %s", name)
	return string(raw)
}
