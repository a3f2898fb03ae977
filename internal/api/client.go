// Package api is the typed HTTP surface of the two backend services:
// the user/quiz/personalization service and the course-content service.
// Every wrapper is a plain request/response mapping with no retry and
// no caching; errors propagate to the calling screen, which decides how
// to present them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"lurnix/internal/config"
)

// Client talks to both backend subsystems. The two base URLs are a
// deployment fact: they may scale and version independently, so they
// are never collapsed into one.
type Client struct {
	userBase    string
	contentBase string
	http        *http.Client
	log         *zap.Logger
}

// New builds a Client from configuration.
func New(cfg config.Config, log *zap.Logger) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		userBase:    strings.TrimRight(cfg.UserAPIBaseURL, "/"),
		contentBase: strings.TrimRight(cfg.ContentAPIBaseURL, "/"),
		http:        &http.Client{Timeout: timeout},
		log:         log,
	}
}

// get issues a GET against base+path and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, base, path string, query url.Values, out any) error {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

// send issues a POST or PUT with a JSON body and decodes the response.
func (c *Client) send(ctx context.Context, method, base, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Info("request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
