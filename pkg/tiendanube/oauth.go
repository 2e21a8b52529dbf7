package tiendanube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultAuthBaseURL = "https://www.tiendanube.com"
)

// AuthorizeURL is where a merchant is sent to grant the app access.
func AuthorizeURL(authBaseURL, appID, state string) string {
	if authBaseURL == "" {
		authBaseURL = DefaultAuthBaseURL
	}
	u, _ := url.JoinPath(authBaseURL, "apps", appID, "authorize")
	if state != "" {
		u += "?" + url.Values{"state": {state}}.Encode()
	}
	return u
}

// AccessToken is the result of an authorization code exchange. StoreID is
// what the platform calls user_id.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	StoreID     int64  `json:"user_id"`

	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type OAuthExchanger struct {
	HTTPClient   *http.Client
	AuthBaseURL  string
	ClientID     string
	ClientSecret string
}

func (o OAuthExchanger) ExchangeCode(ctx context.Context, code string) (*AccessToken, error) {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if o.AuthBaseURL == "" {
		o.AuthBaseURL = DefaultAuthBaseURL
	}
	if o.ClientID == "" || o.ClientSecret == "" {
		return nil, fmt.Errorf("missing client id or client secret")
	}
	if code == "" {
		return nil, fmt.Errorf("missing authorization code")
	}

	body, err := json.Marshal(map[string]string{
		"client_id":     o.ClientID,
		"client_secret": o.ClientSecret,
		"grant_type":    "authorization_code",
		"code":          code,
	})
	if err != nil {
		return nil, err
	}

	u, err := url.JoinPath(o.AuthBaseURL, "apps", "authorize", "token")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", jsonContentType)

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: b, Method: http.MethodPost, URL: u}
	}

	var tok AccessToken
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("decode token response failed: %w", err)
	}
	// Rejected codes still come back as 200 with an error field.
	if tok.Error != "" {
		return nil, fmt.Errorf("tiendanube token exchange failed: %s: %s", tok.Error, tok.ErrorDescription)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("tiendanube token exchange returned empty access_token")
	}
	return &tok, nil
}
