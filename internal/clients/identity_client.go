package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/task-management-services/internal/constants"
	"github.com/yukikurage/task-management-services/internal/requestid"
	"github.com/yukikurage/task-management-services/internal/services"
)

// IdentityClient resolves users against the identity service over HTTP. It
// never retries.
type IdentityClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ services.UserResolver = (*IdentityClient)(nil)

// NewIdentityClient creates a client for the identity service at baseURL. Each
// call is bounded by timeout.
func NewIdentityClient(baseURL string, timeout time.Duration) *IdentityClient {
	return &IdentityClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type userEnvelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ResolveUser calls GET /users/{id}. The user is absent only when the identity
// service answers 404 with its user-not-found envelope. A 404 for any other
// reason, such as an unmatched route behind a misconfigured base URL, and
// every other failure are reported as unavailable together with their cause.
func (c *IdentityClient) ResolveUser(ctx context.Context, userID uint64) (services.UserResolution, error) {
	url := c.baseURL + "/users/" + strconv.FormatUint(userID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return services.UserUnavailable, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID := requestid.FromContext(ctx); requestID != "" {
		req.Header.Set(constants.HeaderRequestID, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.UserUnavailable, fmt.Errorf("call identity service: %w", err)
	}
	defer resp.Body.Close()

	var env userEnvelope
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, constants.MaxUpstreamBodyBytes)).Decode(&env)

	switch {
	case resp.StatusCode == http.StatusOK:
		if decodeErr != nil || env.Success == nil || !*env.Success || isEmpty(env.Data) {
			return services.UserUnavailable, fmt.Errorf("identity service returned a malformed user (status %d)", resp.StatusCode)
		}
		return services.UserFound, nil
	case resp.StatusCode == http.StatusNotFound:
		if decodeErr != nil || env.Success == nil || *env.Success {
			return services.UserUnavailable, errors.New("identity service returned a malformed not-found reply")
		}
		if env.Message != services.MsgUserNotFound {
			return services.UserUnavailable, fmt.Errorf("identity service returned 404 %q for %s", env.Message, url)
		}
		return services.UserAbsent, nil
	default:
		return services.UserUnavailable, fmt.Errorf("identity service responded with status %d", resp.StatusCode)
	}
}

func isEmpty(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
