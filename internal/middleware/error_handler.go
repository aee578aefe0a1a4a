package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apierrors "github.com/yukikurage/task-management-services/internal/errors"
	"github.com/yukikurage/task-management-services/internal/response"
)

// ErrorHandler maps the last error a handler attached with c.Error to exactly
// one failure envelope. Errors without a kind become internal errors; their
// cause is logged and only echoed when diagnostics is set.
func ErrorHandler(diagnostics bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := apierrors.From(c.Errors.Last().Err)
		entry := Log(c).WithFields(logrus.Fields{
			"kind":   appErr.Kind.String(),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		if appErr.Kind == apierrors.KindInternal {
			entry.WithError(appErr.Err).Error("request failed")
		} else {
			entry.Debug(appErr.Message)
		}

		if c.Writer.Written() {
			return
		}
		response.Fail(c, appErr, diagnostics)
	}
}

// Recovery turns a panic into the internal error envelope.
func Recovery(diagnostics bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		Log(c).WithFields(logrus.Fields{
			"panic":  recovered,
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("panic recovered")

		if c.Writer.Written() {
			c.Abort()
			return
		}
		response.Fail(c, apierrors.Internal(fmt.Errorf("panic: %v", recovered)), diagnostics)
	})
}
