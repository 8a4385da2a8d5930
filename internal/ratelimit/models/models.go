package models

import (
	"strings"
	"time"
)

// EndpointClass groups endpoints that share a per-client budget.
type EndpointClass string

const (
	ClassRead    EndpointClass = "read"
	ClassWrite   EndpointClass = "write"
	ClassAnalyze EndpointClass = "analyze"
)

// Limit is a budget of Requests per sliding Window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Result is the outcome of one limiter check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds, set when denied
}

// Key builds the bucket key for a client and class.
func Key(class EndpointClass, clientIP string) string {
	return "ratelimit:" + string(class) + ":" + SanitizeKeySegment(clientIP)
}

// SanitizeKeySegment replaces ':' so a client-supplied value cannot forge
// extra key segments. IPv6 addresses are affected too, which is harmless.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// ExceededResponse is the 429 body.
type ExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}
