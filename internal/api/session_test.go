package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tiendanube/internal/installation"
	"tiendanube/pkg/config"
	"tiendanube/pkg/tiendanube"
)

type fakeInstalls map[int64]*installation.Installation

func (f fakeInstalls) FindByStoreID(_ context.Context, id int64) (*installation.Installation, error) {
	if id == 500 {
		return nil, errors.New("db down")
	}
	if i, ok := f[id]; ok {
		return i, nil
	}
	return nil, installation.ErrNotFound
}

func sessionToken(t *testing.T, storeID, secret string) string {
	t.Helper()
	claims := tiendanube.SessionTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  []string{"1234"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
		},
		StoreID: json.Number(storeID),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestSessionAuth(t *testing.T) {
	installs := fakeInstalls{46: {StoreID: 46, AccessToken: "tok"}}

	var seen *installation.Installation
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = InstallationFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name   string
		env    string
		header map[string]string
		status int
		store  int64
	}{
		{"valid token", "prod", map[string]string{"Authorization": "Bearer " + sessionToken(t, "46", "shh")}, http.StatusOK, 46},
		{"bad signature", "prod", map[string]string{"Authorization": "Bearer " + sessionToken(t, "46", "nope")}, http.StatusUnauthorized, 0},
		{"unknown store", "prod", map[string]string{"Authorization": "Bearer " + sessionToken(t, "47", "shh")}, http.StatusUnauthorized, 0},
		{"lookup failure", "prod", map[string]string{"Authorization": "Bearer " + sessionToken(t, "500", "shh")}, http.StatusInternalServerError, 0},
		{"no token in prod", "prod", map[string]string{"X-Store-Id": "46"}, http.StatusUnauthorized, 0},
		{"dev header", "dev", map[string]string{"X-Store-Id": "46"}, http.StatusOK, 46},
		{"dev header not numeric", "dev", map[string]string{"X-Store-Id": "abc"}, http.StatusUnauthorized, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			cfg := config.Config{AppEnv: tc.env, Nube: config.NubeConfig{AppID: "1234", ClientSecret: "shh"}}
			h := SessionAuth(cfg, installs, zap.NewNop())(next)

			req := httptest.NewRequest(http.MethodGet, "/v1/admin/products", nil)
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.store != 0 {
				require.NotNil(t, seen)
				assert.Equal(t, tc.store, seen.StoreID)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	h := CORSMiddleware(CORSOptions{AllowedOrigins: []string{"https://admin.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }))

	req := httptest.NewRequest(http.MethodOptions, "/v1/admin/products", nil)
	req.Header.Set("Origin", "https://admin.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://admin.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
