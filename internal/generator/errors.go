package generator

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

var (
	// ErrEmptyResponse marks a call that succeeded but produced no text.
	// It rides the same retry path as transient API failures.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrParse marks model output that could not be coerced into the
	// expected JSON shape even after repair.
	ErrParse = errors.New("model output is not valid JSON")
)

var retryableFragments = []string{"rate limit", "quota", "timeout", "429", "500", "502", "503"}

// IsRetryable reports whether an API failure is worth another attempt:
// rate limiting, quota exhaustion, timeouts, and 5xx-style conditions.
// Auth and invalid-request failures are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrEmptyResponse) {
		return true
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 429, 500, 502, 503:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, frag := range retryableFragments {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}

// Hint maps a generation failure to an actionable user-facing message.
// Classification is substring-based because the underlying SDK errors do
// not expose a stable taxonomy.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "quota"), strings.Contains(msg, "429"):
		return "Rate limit reached. Wait a minute and try again."
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return "The request timed out. Try again, or reduce the questionnaire size."
	case strings.Contains(msg, "api key"), strings.Contains(msg, "api_key"),
		strings.Contains(msg, "unauthorized"), strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "permission"), strings.Contains(msg, "401"), strings.Contains(msg, "403"):
		return "Authentication failed. Check your GEMINI_API_KEY."
	default:
		return "Persona generation failed. Check the input file and try again."
	}
}
