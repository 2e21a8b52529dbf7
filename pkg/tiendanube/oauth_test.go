package tiendanube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeURL(t *testing.T) {
	assert.Equal(t,
		"https://www.tiendanube.com/apps/123/authorize?state=abc",
		AuthorizeURL("", "123", "abc"))
	assert.Equal(t,
		"http://localhost:9999/apps/123/authorize",
		AuthorizeURL("http://localhost:9999", "123", ""))
}

func TestExchangeCode(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/apps/authorize/token" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		switch got["code"] {
		case "good":
			_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer","scope":"read_products","user_id":46}`)
		case "rejected":
			_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"The authorization code has expired"}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	ex := OAuthExchanger{AuthBaseURL: srv.URL, ClientID: "123", ClientSecret: "shh"}

	tok, err := ex.ExchangeCode(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
	assert.Equal(t, int64(46), tok.StoreID)
	assert.Equal(t, map[string]string{
		"client_id":     "123",
		"client_secret": "shh",
		"grant_type":    "authorization_code",
		"code":          "good",
	}, got)

	_, err = ex.ExchangeCode(context.Background(), "rejected")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")

	_, err = ex.ExchangeCode(context.Background(), "other")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	_, err = OAuthExchanger{}.ExchangeCode(context.Background(), "good")
	assert.Error(t, err)
}
