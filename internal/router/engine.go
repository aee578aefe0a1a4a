package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/task-management-services/internal/config"
	"github.com/yukikurage/task-management-services/internal/constants"
	apierrors "github.com/yukikurage/task-management-services/internal/errors"
	"github.com/yukikurage/task-management-services/internal/handlers"
	"github.com/yukikurage/task-management-services/internal/middleware"
	"github.com/yukikurage/task-management-services/internal/validation"
)

const MsgRouteNotFound = "Route not found"

// Options are the dependencies shared by every service engine.
type Options struct {
	Config *config.Config
	Logger *logrus.Logger

	// Limiter is honoured by NewEngine and NewGateway. The backend engines
	// run without one.
	Limiter middleware.Limiter
}

// NewEngine builds a gin engine with the interceptor chain every service runs:
// recovery, request id, access log, CORS, rate limit and error mapping. It
// also serves GET /health and the 404 envelope for unmatched paths.
func NewEngine(opts Options) (*gin.Engine, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	diagnostics := cfg.DiagnosticsEnabled()

	validation.Init()

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	r.Use(
		middleware.Recovery(diagnostics),
		middleware.RequestID(log),
		middleware.AccessLog(cfg.HTTPLogEnabled),
	)
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID},
			ExposeHeaders: []string{
				constants.HeaderRequestID,
				constants.HeaderRateLimitLimit,
				constants.HeaderRateLimitRemaining,
				constants.HeaderRateLimitReset,
				constants.HeaderRetryAfter,
			},
			MaxAge: 12 * time.Hour,
		}))
	}
	r.Use(
		middleware.RateLimit(opts.Limiter, middleware.KeyByIP()),
		middleware.ErrorHandler(diagnostics),
	)

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apierrors.NotFound(MsgRouteNotFound))
	})
	r.GET("/health", handlers.Health(cfg.ServiceName))

	return r, nil
}
