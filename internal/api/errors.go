package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError carries a non-2xx backend response. Detail holds the
// backend's structured error body when present, for UI display.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		apiErr.Detail = parsed.Detail
	} else if len(body) > 0 {
		apiErr.Detail = strings.TrimSpace(string(body))
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 for the given email, i.e. the
// backend's "User preferences not found for email: ..." response. The
// login flow branches on this to distinguish a new user from an error.
func IsNotFound(err error, email string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusNotFound &&
		strings.Contains(apiErr.Detail, email)
}
