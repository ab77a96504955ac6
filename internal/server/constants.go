package server

import "time"

const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

const (
	SecurityAlertFailedAuth = "security alert: repeated failed authentication"
	SecurityAlertHighRate   = "security alert: client over request limit"
)

const (
	LogMsgServerStarting   = "server starting"
	LogMsgAuthDisabled     = "API_KEY not set, authentication disabled"
	LogMsgRequestStarted   = "request started"
	LogMsgRequestCompleted = "request completed"
	LogMsgRequestHeaders   = "request headers"
	LogMsgAuthFailed       = "authentication failed"
)

const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderForwardedFor  = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
)

// securityHeaders are set on every response
var securityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "SAMEORIGIN",
	"X-XSS-Protection":       "1; mode=block",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
}

// PublicPaths skip API key checks. A trailing slash marks a subtree.
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// RedactedValue replaces credentials in debug header dumps
const RedactedValue = "[REDACTED]"

const (
	DefaultMaxBodyBytes = 1 << 20
	maxRequestIDLength  = 128

	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
)

// Per-client abuse thresholds
const (
	activityWindow       = 5 * time.Minute
	failedAuthAlertCount = 5
	maxRequestsPerWindow = 1000
	highRateLogEvery     = 100

	// retryAfterSeconds is the full window, the longest a client can wait
	retryAfterSeconds = "300"
)
