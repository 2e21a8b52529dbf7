package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"tiendanube/internal/installation"
	"tiendanube/pkg/config"
)

type emptyInstallations struct{}

func (emptyInstallations) Upsert(context.Context, int64, string, string) (*installation.Installation, error) {
	return nil, installation.ErrNotFound
}
func (emptyInstallations) FindByStoreID(context.Context, int64) (*installation.Installation, error) {
	return nil, installation.ErrNotFound
}
func (emptyInstallations) Delete(context.Context, int64) error { return nil }
func (emptyInstallations) RecordWebhook(context.Context, int64, string, string) (bool, error) {
	return true, nil
}
func (emptyInstallations) ForgetWebhook(context.Context, int64, string) error { return nil }

func TestRouter(t *testing.T) {
	r := NewRouter(Dependencies{
		Cfg: config.Config{
			AppEnv:              "prod",
			AdminAllowedOrigins: []string{"https://admin.example"},
			Nube:                config.NubeConfig{AppID: "1234", ClientSecret: "shh"},
		},
		Installations: emptyInstallations{},
		Log:           zap.NewNop(),
	})

	cases := []struct {
		method, target string
		status         int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/v1/auth/install", http.StatusFound},
		{http.MethodGet, "/v1/auth/callback", http.StatusBadRequest},
		{http.MethodPost, "/v1/webhooks/tiendanube", http.StatusUnauthorized},
		{http.MethodGet, "/v1/admin/products", http.StatusUnauthorized},
		{http.MethodOptions, "/v1/admin/products", http.StatusNoContent},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
