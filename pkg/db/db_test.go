package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tiendanube/pkg/config"
)

func TestConnStrings(t *testing.T) {
	cfg := config.Config{
		DB: config.DBConfig{Host: "db", Port: "5432", Name: "nube", User: "u", Password: "p"},
	}
	assert.Equal(t, "postgres://u:p@db:5432/nube?sslmode=disable", runtimeConnString(cfg))
	assert.Equal(t, runtimeConnString(cfg), migrationConnString(cfg))

	cfg.DatabaseURL = "postgres://pooler/nube?pgbouncer=true"
	cfg.DirectURL = "postgres://direct/nube"
	assert.Equal(t, "postgres://pooler/nube?pgbouncer=true", runtimeConnString(cfg))
	assert.Equal(t, "postgres://direct/nube", migrationConnString(cfg))
}
