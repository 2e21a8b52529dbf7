package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// DATABASE_URL is the runtime connection, DIRECT_URL the one used for
	// migrations. Both fall back to DB when empty.
	DatabaseURL string
	DirectURL   string

	// PublicBaseURL is the externally reachable URL of this backend. When set,
	// webhooks are registered on install.
	PublicBaseURL string

	DB DBConfig

	Nube NubeConfig

	// AdminAllowedOrigins is a comma-separated allowlist of origins that may
	// call the /v1/admin endpoints from a browser.
	AdminAllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type NubeConfig struct {
	// AppID and ClientSecret identify the app in the partners portal. The
	// secret also signs webhooks.
	AppID        string `validate:"required"`
	ClientSecret string `validate:"required"`

	// AccessToken and StoreID let the CLI talk to one store directly,
	// without going through the install flow.
	AccessToken string `validate:"required"`
	StoreID     string `validate:"required,numeric"`

	UserAgent   string `validate:"required"`
	APIBaseURL  string `validate:"omitempty,url"`
	AuthBaseURL string `validate:"omitempty,url"`
}

var validate = validator.New()

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	_ = godotenv.Load()

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		PublicBaseURL:  os.Getenv("PUBLIC_BASE_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "tiendanube"),
			User:     env("DB_USER", "tiendanube"),
			Password: env("DB_PASSWORD", "tiendanube"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Nube: NubeConfig{
			AppID:        os.Getenv("NUBE_APP_ID"),
			ClientSecret: os.Getenv("NUBE_CLIENT_SECRET"),
			AccessToken:  os.Getenv("NUBE_ACCESS_TOKEN"),
			StoreID:      os.Getenv("NUBE_STORE_ID"),
			UserAgent:    env("NUBE_USER_AGENT", "MyNubeApp (mynubeapp.com)"),
			APIBaseURL:   os.Getenv("NUBE_API_BASE_URL"),
			AuthBaseURL:  os.Getenv("NUBE_AUTH_BASE_URL"),
		},
		AdminAllowedOrigins: envList("ADMIN_ALLOWED_ORIGINS", "http://localhost:5173"),
	}
}

// ValidateApp checks what the install and webhook endpoints need.
func (c NubeConfig) ValidateApp() error {
	return validatePartial(c, "AppID", "ClientSecret", "UserAgent", "AuthBaseURL", "APIBaseURL")
}

// ValidateClient checks what a direct API client for one store needs.
func (c NubeConfig) ValidateClient() error {
	return validatePartial(c, "AccessToken", "StoreID", "UserAgent", "APIBaseURL")
}

func validatePartial(c NubeConfig, fields ...string) error {
	if err := validate.StructPartial(c, fields...); err != nil {
		var missing []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				missing = append(missing, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid tiendanube config: %s", strings.Join(missing, ", "))
		}
		return err
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
