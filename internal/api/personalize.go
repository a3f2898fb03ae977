package api

import (
	"context"
	"net/url"

	"lurnix/internal/course"
)

// Match types the personalization backend reports for a returned
// variant. Only generated and exact variants are trustworthy enough to
// replace the original content.
const (
	MatchGenerated = "generated"
	MatchExact     = "exact"
)

// PersonalizedAssetResponse is a personalization lookup result.
type PersonalizedAssetResponse struct {
	Asset     course.Asset `json:"asset"`
	MatchType string       `json:"match_type"`
}

// Displayable reports whether the variant should replace the original
// content in the viewer.
func (r PersonalizedAssetResponse) Displayable() bool {
	return r.MatchType == MatchGenerated || r.MatchType == MatchExact
}

// TranslatedAssetResponse is a translation result.
type TranslatedAssetResponse struct {
	Asset course.Asset `json:"asset"`
}

// GetPersonalizedAsset fetches (or has the backend generate) a content
// variant tailored to the user's domain, hobby, and learning style.
func (c *Client) GetPersonalizedAsset(ctx context.Context, code, domain, hobby, style string) (*PersonalizedAssetResponse, error) {
	query := url.Values{}
	query.Set("code", code)
	query.Set("domain", domain)
	query.Set("hobby", hobby)
	query.Set("style", style)

	var out PersonalizedAssetResponse
	if err := c.get(ctx, c.userBase, "/content-transformer/getAsset", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranslateAsset fetches the asset's content in the target language.
func (c *Client) TranslateAsset(ctx context.Context, code, language string) (*TranslatedAssetResponse, error) {
	query := url.Values{}
	query.Set("code", code)
	query.Set("language", language)

	var out TranslatedAssetResponse
	if err := c.get(ctx, c.userBase, "/content-transformer/translateAsset", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
