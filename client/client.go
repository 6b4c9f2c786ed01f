// Package client is a typed Go client for the bakery storefront API:
// session management, per-resource request helpers and the view-state
// machines of the admin console.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Category mirrors the backend category resource
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Cake mirrors the backend catalog item resource
type Cake struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CategoryID   string  `json:"category_id"`
	ImageURL     string  `json:"image_url"`
	InstagramURL string  `json:"instagram_url"`
	Featured     bool    `json:"featured"`
}

// Testimonial mirrors the backend testimonial resource
type Testimonial struct {
	ID         string `json:"id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
}

// PublicSettings is the secret-free storefront subset
type PublicSettings struct {
	HeroImageURL    string `json:"hero_image_url"`
	LogoURL         string `json:"logo_url"`
	InstagramUserID string `json:"instagram_user_id"`
}

// Settings is the full record, only available inside the admin console
type Settings struct {
	HeroImageURL         string `json:"hero_image_url"`
	LogoURL              string `json:"logo_url"`
	InstagramAccessToken string `json:"instagram_access_token"`
	InstagramUserID      string `json:"instagram_user_id"`
}

// SettingsUpdate is a partial update; nil fields are untouched
type SettingsUpdate struct {
	HeroImageURL         *string `json:"hero_image_url,omitempty"`
	LogoURL              *string `json:"logo_url,omitempty"`
	InstagramAccessToken *string `json:"instagram_access_token,omitempty"`
	InstagramUserID      *string `json:"instagram_user_id,omitempty"`
}

// Stats holds per-resource counts for the dashboard
type Stats struct {
	Cakes        int64 `json:"cakes"`
	Categories   int64 `json:"categories"`
	Testimonials int64 `json:"testimonials"`
}

// SyncSummary reports one social-sync run
type SyncSummary struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// CategoryInput creates a category; blank Slug lets the backend derive it
type CategoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// CakeInput creates a catalog item
type CakeInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CategoryID   string  `json:"category_id,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	InstagramURL string  `json:"instagram_url,omitempty"`
	Featured     bool    `json:"featured"`
}

// TestimonialInput creates a testimonial
type TestimonialInput struct {
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	Rating     int    `json:"rating,omitempty"`
}

// CakeFilter narrows the public cake listing
type CakeFilter struct {
	CategoryID string
	Featured   bool
}

// Client issues typed requests against the storefront API. The bearer
// token is read from the session at call time, never cached, so a
// logout invalidates every subsequent call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// NewClient creates a resource client bound to a session
func NewClient(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		session: session,
	}
}

// ListCategories fetches all categories. No credential required.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, false, &categories)
	return categories, err
}

// CreateCategory creates a category. Requires the bearer token.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", input, true, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory deletes a category by id. Requires the bearer token.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, true, nil)
}

// ListCakes fetches cakes, optionally narrowed by category or featured flag
func (c *Client) ListCakes(ctx context.Context, filter CakeFilter) ([]Cake, error) {
	query := url.Values{}
	if filter.CategoryID != "" {
		query.Set("category", filter.CategoryID)
	}
	if filter.Featured {
		query.Set("featured", "true")
	}

	path := "/api/cakes"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var cakes []Cake
	err := c.do(ctx, http.MethodGet, path, nil, false, &cakes)
	return cakes, err
}

// GetCake fetches a single cake by id
func (c *Client) GetCake(ctx context.Context, id string) (*Cake, error) {
	var cake Cake
	if err := c.do(ctx, http.MethodGet, "/api/cakes/"+url.PathEscape(id), nil, false, &cake); err != nil {
		return nil, err
	}
	return &cake, nil
}

// CreateCake creates a catalog item. Requires the bearer token.
func (c *Client) CreateCake(ctx context.Context, input CakeInput) (*Cake, error) {
	var cake Cake
	if err := c.do(ctx, http.MethodPost, "/api/cakes", input, true, &cake); err != nil {
		return nil, err
	}
	return &cake, nil
}

// UpdateCake applies a partial update to a catalog item
func (c *Client) UpdateCake(ctx context.Context, id string, update CakeInput) (*Cake, error) {
	var cake Cake
	if err := c.do(ctx, http.MethodPut, "/api/cakes/"+url.PathEscape(id), update, true, &cake); err != nil {
		return nil, err
	}
	return &cake, nil
}

// DeleteCake deletes a catalog item by id. Requires the bearer token.
func (c *Client) DeleteCake(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/cakes/"+url.PathEscape(id), nil, true, nil)
}

// ListTestimonials fetches all testimonials. No credential required.
func (c *Client) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	var testimonials []Testimonial
	err := c.do(ctx, http.MethodGet, "/api/testimonials", nil, false, &testimonials)
	return testimonials, err
}

// CreateTestimonial creates a testimonial. Requires the bearer token.
func (c *Client) CreateTestimonial(ctx context.Context, input TestimonialInput) (*Testimonial, error) {
	var testimonial Testimonial
	if err := c.do(ctx, http.MethodPost, "/api/testimonials", input, true, &testimonial); err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// DeleteTestimonial deletes a testimonial by id. Requires the bearer token.
func (c *Client) DeleteTestimonial(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/testimonials/"+url.PathEscape(id), nil, true, nil)
}

// GetPublicSettings fetches the secret-free settings subset
func (c *Client) GetPublicSettings(ctx context.Context) (*PublicSettings, error) {
	var settings PublicSettings
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, false, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetAdminSettings fetches the full settings record, token included.
// Must only be called from inside the access-gated console.
func (c *Client) GetAdminSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, http.MethodGet, "/api/settings/admin", nil, true, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings upserts the provided settings fields
func (c *Client) UpdateSettings(ctx context.Context, update SettingsUpdate) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, http.MethodPut, "/api/settings", update, true, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetStats fetches dashboard counts. Requires the bearer token.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, true, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UploadAsset uploads one binary file and returns its stable URL
func (c *Client) UploadAsset(ctx context.Context, filename string, data io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", &NetworkError{Op: "upload", Err: err}
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", &NetworkError{Op: "upload", Err: err}
	}
	if err := writer.Close(); err != nil {
		return "", &NetworkError{Op: "upload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return "", &NetworkError{Op: "upload", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.attachBearer(req)

	var result struct {
		URL string `json:"url"`
	}
	if err := c.send(req, "upload", &result); err != nil {
		return "", err
	}
	return result.URL, nil
}

// TriggerInstagramSync starts one sync run and reports its summary.
// Fire-and-forget: a failure is surfaced, never retried.
func (c *Client) TriggerInstagramSync(ctx context.Context) (*SyncSummary, error) {
	var summary SyncSummary
	if err := c.do(ctx, http.MethodPost, "/api/instagram/sync", nil, true, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) attachBearer(req *http.Request) {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, auth bool, out interface{}) error {
	op := fmt.Sprintf("%s %s", method, path)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: op, Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		c.attachBearer(req)
	}

	return c.send(req, op, out)
}

func (c *Client) send(req *http.Request, op string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errorFromStatus(op, resp.StatusCode, &env)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	return nil
}
