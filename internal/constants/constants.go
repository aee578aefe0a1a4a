package constants

// Gin context keys
const (
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"
)

// HTTP headers
const (
	HeaderRequestID          = "X-Request-Id"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// Password limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
)

// Largest upstream body the identity client will decode.
const MaxUpstreamBodyBytes = 1 << 20
