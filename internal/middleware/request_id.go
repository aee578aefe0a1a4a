package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/task-management-services/internal/constants"
	"github.com/yukikurage/task-management-services/internal/requestid"
)

// RequestID assigns a fresh correlation id to every request. The id is stored
// in the gin context and in the request context, echoed in the X-Request-Id
// header and attached to a request-scoped logger. An inbound X-Request-Id is
// only logged, never reused.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(constants.ContextKeyRequestID, id)
		c.Header(constants.HeaderRequestID, id)
		c.Request = c.Request.WithContext(requestid.NewContext(c.Request.Context(), id))

		entry := log.WithField("request_id", id)
		if upstream := c.GetHeader(constants.HeaderRequestID); upstream != "" {
			entry = entry.WithField("upstream_request_id", upstream)
		}
		c.Set(constants.ContextKeyLogger, entry)

		c.Next()
	}
}

// GetRequestID retrieves the correlation id from the gin context
func GetRequestID(c *gin.Context) (string, bool) {
	id := c.GetString(constants.ContextKeyRequestID)
	return id, id != ""
}

// Log returns the request-scoped logger, or the standard logger outside a
// request.
func Log(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(constants.ContextKeyLogger); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
