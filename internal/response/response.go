package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-services/internal/constants"
	apierrors "github.com/yukikurage/task-management-services/internal/errors"
)

const MsgTooManyRequests = "Too many requests, please try again later."

// Envelope is the body of every response the services produce.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    interface{} `json:"errors,omitempty"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"requestId"`
}

// RequestID returns the correlation id assigned to the request.
func RequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}

// Success writes a success envelope.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: RequestID(c),
	})
}

// Fail writes the failure envelope for err and aborts the chain. The raw cause
// is included only when diagnostics is set.
func Fail(c *gin.Context, err *apierrors.Error, diagnostics bool) {
	c.AbortWithStatusJSON(err.Status(), failure(err, RequestID(c), diagnostics))
}

// TooManyRequests writes the uniform throttling envelope and aborts the chain.
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Envelope{
		Success:   false,
		Message:   MsgTooManyRequests,
		RequestID: RequestID(c),
	})
}

// WriteFailure writes a failure envelope on a plain http.ResponseWriter, for
// code paths that run outside a gin handler.
func WriteFailure(w http.ResponseWriter, err *apierrors.Error, requestID string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if requestID != "" {
		w.Header().Set(constants.HeaderRequestID, requestID)
	}
	w.WriteHeader(err.Status())
	_ = json.NewEncoder(w).Encode(failure(err, requestID, false))
}

func failure(err *apierrors.Error, requestID string, diagnostics bool) Envelope {
	env := Envelope{
		Success:   false,
		Message:   err.PublicMessage(),
		RequestID: requestID,
	}
	if err.Kind == apierrors.KindValidation {
		env.Errors = err.Details
	}
	if diagnostics && err.Err != nil {
		env.Error = err.Err.Error()
	}
	return env
}
