package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/task-management-services/internal/constants"
	apierrors "github.com/yukikurage/task-management-services/internal/errors"
	"github.com/yukikurage/task-management-services/internal/requestid"
	"github.com/yukikurage/task-management-services/internal/response"
)

// Route forwards every path under Prefix to Target, replacing Prefix with
// Rewrite. /api/users/42 with Prefix /api/users and Rewrite /users becomes
// {Target}/users/42.
type Route struct {
	Prefix  string
	Rewrite string
	Target  *url.URL
}

// NewRoute parses the upstream base URL of a route.
func NewRoute(prefix, rewrite, target string) (Route, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Route{}, fmt.Errorf("invalid upstream url %q: %w", target, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Route{}, fmt.Errorf("invalid upstream url %q: scheme and host are required", target)
	}
	return Route{Prefix: prefix, Rewrite: rewrite, Target: u}, nil
}

// UpstreamPath maps a public path to the upstream path.
func (r Route) UpstreamPath(path string) string {
	return strings.TrimRight(r.Target.Path, "/") + r.Rewrite + strings.TrimPrefix(path, r.Prefix)
}

// NewProxy builds the reverse proxy of a route. The method, body, query and
// headers pass through; X-Forwarded-* are set and the gateway's correlation id
// is forwarded. Transport failures become a 500 envelope.
func NewProxy(route Route, log *logrus.Logger) *httputil.ReverseProxy {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(route.Target)
			pr.Out.URL.Path = route.UpstreamPath(pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.SetXForwarded()
			if id := requestid.FromContext(pr.In.Context()); id != "" {
				pr.Out.Header.Set(constants.HeaderRequestID, id)
			}
		},
		ModifyResponse: func(resp *http.Response) error {
			if resp.Header.Get(constants.HeaderRequestID) == "" {
				if id := requestid.FromContext(resp.Request.Context()); id != "" {
					resp.Header.Set(constants.HeaderRequestID, id)
				}
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			id := requestid.FromContext(r.Context())
			log.WithError(err).WithFields(logrus.Fields{
				"request_id": id,
				"upstream":   route.Target.Host,
				"method":     r.Method,
				"path":       r.URL.Path,
			}).Error("upstream request failed")
			response.WriteFailure(w, apierrors.Internal(err), id)
		},
	}
}

// Handler serves a route through proxy. The upstream's X-Request-Id replaces
// the gateway's so the header matches the body's requestId.
func Handler(proxy *httputil.ReverseProxy) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Del(constants.HeaderRequestID)
		proxy.ServeHTTP(c.Writer, c.Request)
	}
}

// Register mounts the route on both its exact prefix and every sub path.
func Register(r gin.IRoutes, route Route, log *logrus.Logger) {
	h := Handler(NewProxy(route, log))
	r.Any(route.Prefix, h)
	r.Any(route.Prefix+"/*path", h)
}
