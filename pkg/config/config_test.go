package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "PORT", "APP_ENV", "NUBE_USER_AGENT", "DB_NAME"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, "MyNubeApp (mynubeapp.com)", cfg.Nube.UserAgent)
	assert.Equal(t, "tiendanube", cfg.DB.Name)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "9090")
	assert.Equal(t, ":9090", Load().HTTPAddr)

	t.Setenv("HTTP_ADDR", "127.0.0.1:7000")
	assert.Equal(t, "127.0.0.1:7000", Load().HTTPAddr)
}

func TestNubeConfigValidation(t *testing.T) {
	c := NubeConfig{UserAgent: "ua"}
	err := c.ValidateClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessToken(required)")
	assert.Contains(t, err.Error(), "StoreID(required)")

	c.AccessToken = "tok"
	c.StoreID = "not-a-number"
	err = c.ValidateClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "StoreID(numeric)")

	c.StoreID = "46"
	require.NoError(t, c.ValidateClient())

	require.Error(t, c.ValidateApp())
	c.AppID = "123"
	c.ClientSecret = "shh"
	require.NoError(t, c.ValidateApp())

	c.APIBaseURL = "not a url"
	require.Error(t, c.ValidateApp())
}

func TestEnvList(t *testing.T) {
	t.Setenv("ADMIN_ALLOWED_ORIGINS", " https://a.example ,,https://b.example ")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, Load().AdminAllowedOrigins)

	t.Setenv("ADMIN_ALLOWED_ORIGINS", "")
	assert.Equal(t, []string{"http://localhost:5173"}, Load().AdminAllowedOrigins)
}
