package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fl350-gear-hub/models"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient calls the storefront API
type HTTPClient struct {
	BaseURL string
	Token   string // identity provider session token, optional
	HTTP    *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-200 answer from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// CreateCheckout posts the cart to /api/checkout and returns the redirect URL
func (c *HTTPClient) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode checkout request: %w", err)
	}

	var out models.CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/checkout", body, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("checkout response has no url")
	}
	return out.URL, nil
}

// CurrentUser asks the API who the token belongs to
func (c *HTTPClient) CurrentUser(ctx context.Context) (models.CurrentUser, error) {
	var out models.CurrentUser
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &out); err != nil {
		return models.CurrentUser{}, err
	}
	return out, nil
}

// Products fetches the catalog
func (c *HTTPClient) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
