package apiclient

import (
	"errors"
	"fmt"
)

// DefaultFallback is used when ErrorMessage is called without a fallback.
const DefaultFallback = "Something went wrong."

// Error is returned for every failed backend call.
type Error struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Body is the decoded response body: a JSON value, raw text, or nil.
	Body any
	// Message is a top-level description of a transport failure.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("backend unreachable: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("backend status %d: %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("backend status %d", e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Unreachable reports whether no response was received at all.
func (e *Error) Unreachable() bool {
	return e.Status == 0
}

// StatusCode extracts the HTTP status from err, or 0 when there is none.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ErrorMessage turns a failed call into display text. It never panics and
// returns the same text for the same error.
//
// Unreachable backends get a fixed message naming the host. Otherwise the
// first string among body.message, the body itself and the top-level message
// wins. Anything else yields fallback.
func (c *Client) ErrorMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = DefaultFallback
	}
	if err == nil {
		return fallback
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr == nil {
		return fallback
	}

	if apiErr.Unreachable() {
		return c.UnreachableMessage()
	}

	if body, ok := apiErr.Body.(map[string]any); ok {
		if msg, ok := body["message"].(string); ok {
			return msg
		}
	}
	if msg, ok := apiErr.Body.(string); ok {
		return msg
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// UnreachableMessage is shown when the backend cannot be contacted.
func (c *Client) UnreachableMessage() string {
	return "Cannot reach server. Is the backend running at " + c.Host() + "?"
}
