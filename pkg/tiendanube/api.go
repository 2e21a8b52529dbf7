package tiendanube

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
)

const (
	DefaultBaseURL   = "https://api.tiendanube.com/v1"
	DefaultUserAgent = "MyNubeApp (mynubeapp.com)"

	jsonContentType = "application/json; charset=utf-8"
)

// APIClient issues authenticated requests against the store-scoped REST API.
// The zero value is not usable; APIKey must be set. Other fields are defaulted
// on each call.
type APIClient struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	UserAgent  string
	Logger     *zap.Logger
}

// Request sends one request to <BaseURL>/<storeID>/<path...> and returns the raw
// response body on 2xx. query is omitted from the URL when empty; body is JSON
// encoded when non-nil.
func (c APIClient) Request(ctx context.Context, method, storeID string, path []string, query url.Values, body any) (json.RawMessage, error) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.APIKey == "" || storeID == "" {
		return nil, ErrMissingCredentials
	}

	segs := make([]string, 0, len(path)+1)
	for _, s := range append([]string{storeID}, path...) {
		segs = append(segs, escapeSegment(s))
	}
	u, err := url.JoinPath(c.BaseURL, segs...)
	if err != nil {
		return nil, fmt.Errorf("build request url: %w", err)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authentication", "bearer "+c.APIKey)
	req.Header.Set("User-Agent", c.UserAgent)
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Content-Type", jsonContentType)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Debug("tiendanube request failed",
			zap.String("method", method), zap.String("url", u), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.Logger.Debug("tiendanube request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       b,
			Method:     method,
			URL:        u,
		}
	}
	return b, nil
}

func (c APIClient) getItem(ctx context.Context, storeID string, path []string) (Item, error) {
	raw, err := c.Request(ctx, http.MethodGet, storeID, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var it Item
	if err := decode(raw, &it); err != nil {
		return nil, err
	}
	return it, nil
}

func (c APIClient) getItems(ctx context.Context, storeID string, path []string, query url.Values) ([]Item, error) {
	raw, err := c.Request(ctx, http.MethodGet, storeID, path, query, nil)
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := decode(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c APIClient) send(ctx context.Context, method, storeID string, path []string, item Item) (Item, error) {
	raw, err := c.Request(ctx, method, storeID, path, nil, item)
	if err != nil {
		return nil, err
	}
	var it Item
	if err := decode(raw, &it); err != nil {
		return nil, err
	}
	return it, nil
}

// decode keeps numbers as json.Number so ids survive without float rounding.
// An empty body decodes to the zero value.
func decode(raw json.RawMessage, out any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode tiendanube response failed: %w body=%s", err, string(raw))
	}
	return nil
}

// escapeSegment keeps an id such as "../store" or "a/b" inside its own path
// segment. PathEscape leaves dots alone, so bare dot segments are encoded here.
func escapeSegment(s string) string {
	if s == "." || s == ".." {
		return strings.Repeat("%2E", len(s))
	}
	return url.PathEscape(s)
}
