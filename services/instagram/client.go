// Package instagram imports media from the Instagram Graph API into the catalog.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://graph.instagram.com"

// Media types worth importing; videos are skipped
const (
	MediaTypeImage    = "IMAGE"
	MediaTypeCarousel = "CAROUSEL_ALBUM"
)

var (
	ErrNotConfigured = errors.New("instagram access token and user id are not configured")
	ErrRejected      = errors.New("instagram rejected the access token")
)

// Media is a single media entry from the Graph API
type Media struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
}

type mediaResponse struct {
	Data  []Media `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Client is a minimal Graph API media client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Graph API client
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point at a fake Graph API
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// FetchMedia lists the latest media for the given profile
func (c *Client) FetchMedia(ctx context.Context, userID, accessToken string, limit int) ([]Media, error) {
	if userID == "" || accessToken == "" {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("fields", "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp")
	params.Set("access_token", accessToken)
	params.Set("limit", fmt.Sprintf("%d", limit))

	reqURL := fmt.Sprintf("%s/%s/media?%s", c.baseURL, url.PathEscape(userID), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("instagram request failed: %w", err)
	}
	defer resp.Body.Close()

	var body mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode instagram response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if body.Error != nil && body.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrRejected, body.Error.Message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	return body.Data, nil
}

// ImageURL picks the usable image URL for a media entry
func (m Media) ImageURL() string {
	if m.MediaURL != "" {
		return m.MediaURL
	}
	return m.ThumbnailURL
}
