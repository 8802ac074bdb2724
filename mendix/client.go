package mendix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sorenmh/infrastructure-shared/package-browser/models"
)

// DefaultLimit is the page size the packages API uses when none is given.
const DefaultLimit = 20

const authScheme = "MxToken"

// PackagesSource lists the packages built for a remote application
type PackagesSource interface {
	FetchPackages(ctx context.Context, appID string, limit, offset int) (*models.PackagesPage, error)
}

// Client is a packages API client bound to one base URL and token
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient creates a new packages API client
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// packagesURL builds {base}/api/v4/apps/{appID}/packages?offset=..&limit=..
func (c *Client) packagesURL(appID string, limit, offset int) string {
	return fmt.Sprintf("%s/api/v4/apps/%s/packages?offset=%d&limit=%d",
		c.baseURL, url.PathEscape(appID), offset, limit)
}

// FetchPackages issues a single GET for one page of packages. Non-2xx responses are
// returned as *APIError; the page is returned exactly as the server sent it.
func (c *Client) FetchPackages(ctx context.Context, appID string, limit, offset int) (*models.PackagesPage, error) {
	if strings.TrimSpace(appID) == "" {
		return nil, errors.New("app ID is required")
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be at least 1, got %d", limit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("offset must not be negative, got %d", offset)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.packagesURL(appID, limit, offset), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", authScheme+" "+c.token)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(resp.StatusCode, body)
	}

	var page models.PackagesPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &page, nil
}
