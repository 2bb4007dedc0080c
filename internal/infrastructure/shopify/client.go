package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"merchops/internal/domain"
	"merchops/internal/ports"

	"github.com/rs/zerolog"
)

// APIVersion is the dated Shopify Admin API version every request is
// pinned to.
const APIVersion = "2024-01"

// UpstreamError is the single normalized error shape for a failed
// upstream call. The message prefers Shopify's own error payload over
// the transport error. StatusCode is zero when the call never reached
// the upstream.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("shopify request failed: %s", e.Message)
	}
	return fmt.Sprintf("shopify API error (%d): %s", e.StatusCode, e.Message)
}

// Client issues authenticated requests against the versioned Shopify
// Admin API, applying cache-then-network for GET. No automatic retry
// is performed; a failed call surfaces immediately to the caller.
type Client struct {
	httpc  *http.Client
	creds  domain.ShopifyCredentials
	cache  *ResponseCache
	logger zerolog.Logger
}

// NewClient creates a client with the process-wide credentials and a
// shared response cache.
func NewClient(creds domain.ShopifyCredentials, cache *ResponseCache, logger zerolog.Logger) ports.ShopifyGateway {
	return NewClientWithOptions(creds, cache, &http.Client{Timeout: 30 * time.Second}, logger)
}

// NewClientWithOptions creates a client with an explicit HTTP transport.
func NewClientWithOptions(creds domain.ShopifyCredentials, cache *ResponseCache, httpc *http.Client, logger zerolog.Logger) ports.ShopifyGateway {
	return &Client{
		httpc:  httpc,
		creds:  creds,
		cache:  cache,
		logger: logger,
	}
}

// Request performs one Admin API call. The optional override replaces
// the configured credentials for this call only. Credentials are
// validated before any network I/O.
func (c *Client) Request(ctx context.Context, method, endpoint string, body interface{}, override *domain.ShopifyCredentials) (json.RawMessage, error) {
	creds := c.creds
	if override != nil {
		creds = *override
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	if data, ok := c.cache.Get(endpoint, method); ok {
		c.logger.Debug().Str("endpoint", endpoint).Msg("Serving Shopify response from cache")
		return data, nil
	}

	url := fmt.Sprintf("%s/admin/api/%s/%s", baseURL(creds.StoreURL), APIVersion, strings.TrimPrefix(endpoint, "/"))

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", creds.APISecret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues(method, "transport_error").Inc()
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamRequests.WithLabelValues(method, "transport_error").Inc()
		return nil, &UpstreamError{Message: err.Error()}
	}

	upstreamRequests.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= http.StatusBadRequest {
		msg := upstreamMessage(data)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("endpoint", endpoint).
			Str("message", msg).
			Msg("Shopify API request failed")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	c.cache.Set(endpoint, method, data)
	return data, nil
}

// upstreamMessage extracts Shopify's own error description, which is
// preferred over a generic transport message. The errors field may be
// a string or a structured object.
func upstreamMessage(body []byte) string {
	var payload struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Errors) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(payload.Errors, &s); err == nil {
		return s
	}
	return string(payload.Errors)
}

// baseURL normalizes the configured store domain into a URL. A bare
// domain gets https; an explicit scheme is preserved.
func baseURL(storeURL string) string {
	trimmed := strings.TrimSuffix(storeURL, "/")
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}
