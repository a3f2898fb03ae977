// Package config holds client configuration sourced from environment
// variables (with an optional .env file loaded by the CLI entrypoint).
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Two backend subsystems serve the client: the user/quiz/personalization
// service and the course-content service. They deploy independently, so
// their base URLs stay separate and are never merged.
const (
	defaultUserAPIBaseURL    = "http://localhost:8000/api/v1"
	defaultContentAPIBaseURL = "http://localhost:8001/api/v1"
)

// Config is the full client configuration.
type Config struct {
	// UserAPIBaseURL is the base URL of the user/quiz/personalization
	// service.
	UserAPIBaseURL string

	// ContentAPIBaseURL is the base URL of the course-content service.
	ContentAPIBaseURL string

	// CourseID selects the course shown on the home screen.
	CourseID string

	// HTTPTimeout bounds a single backend request. Default: 30s.
	HTTPTimeout time.Duration

	// LogFile receives structured logs; the terminal belongs to the UI.
	// Empty means logging is disabled.
	LogFile string

	// SpeechEnabled toggles spoken interview questions.
	SpeechEnabled bool

	// SpeechCommand overrides the speech synthesis binary. When empty a
	// platform default is probed (say on macOS, espeak elsewhere).
	SpeechCommand string
}

// Default returns a Config with built-in defaults.
func Default() Config {
	return Config{
		UserAPIBaseURL:    defaultUserAPIBaseURL,
		ContentAPIBaseURL: defaultContentAPIBaseURL,
		HTTPTimeout:       30 * time.Second,
		SpeechEnabled:     true,
	}
}

// FromEnv builds a Config from LURNIX_* environment variables, falling
// back to defaults for unset values.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("LURNIX_USER_API_BASE_URL"); v != "" {
		cfg.UserAPIBaseURL = v
	}
	if v := os.Getenv("LURNIX_CONTENT_API_BASE_URL"); v != "" {
		cfg.ContentAPIBaseURL = v
	}
	if v := os.Getenv("LURNIX_COURSE_ID"); v != "" {
		cfg.CourseID = v
	}
	if v := os.Getenv("LURNIX_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("LURNIX_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LURNIX_SPEECH"); v == "off" || v == "0" || v == "false" {
		cfg.SpeechEnabled = false
	}
	if v := os.Getenv("LURNIX_SPEECH_COMMAND"); v != "" {
		cfg.SpeechCommand = v
	}

	return cfg
}

// Validate checks that both base URLs parse.
func (c Config) Validate() error {
	for _, u := range []struct {
		name  string
		value string
	}{
		{"LURNIX_USER_API_BASE_URL", c.UserAPIBaseURL},
		{"LURNIX_CONTENT_API_BASE_URL", c.ContentAPIBaseURL},
	} {
		parsed, err := url.Parse(u.value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s: invalid base URL %q", u.name, u.value)
		}
	}
	return nil
}
