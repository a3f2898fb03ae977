package api

import (
	"context"
	"net/http"
	"net/url"

	"lurnix/internal/profile"
)

// GetUserByEmail fetches the stored preferences for email. A 404 whose
// detail names the email signals a new user; use IsNotFound to branch.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	var p profile.Profile
	err := c.get(ctx, c.userBase, "/users-collection/email/"+url.PathEscape(email), nil, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveUserPreferences creates a new profile and returns the persisted
// copy (including its backend-assigned ID).
func (c *Client) SaveUserPreferences(ctx context.Context, p profile.Profile) (*profile.Profile, error) {
	var saved profile.Profile
	err := c.send(ctx, http.MethodPost, c.userBase, "/users-collection/", p, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateUserPreferences overwrites the profile with the given ID.
func (c *Client) UpdateUserPreferences(ctx context.Context, id string, p profile.Profile) (*profile.Profile, error) {
	var saved profile.Profile
	err := c.send(ctx, http.MethodPut, c.userBase, "/users-collection/"+url.PathEscape(id), p, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
