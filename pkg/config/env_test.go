package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testConfig struct {
	Http     HttpServer `koanf:"http"`
	Postgres Postgres   `koanf:"postgres"`
}

func TestProvide(t *testing.T) {
	t.Setenv("FIXJOB_HTTP__ADDRESS", ":8080")
	t.Setenv("FIXJOB_POSTGRES__HOST", "db.local")

	cfg := Provide("fixjob", testConfig{
		Postgres: Postgres{Host: "localhost", Port: "5432"},
	})

	assert.Equal(t, ":8080", cfg.Http.Address)
	assert.Equal(t, "db.local", cfg.Postgres.Host)
	assert.Equal(t, "5432", cfg.Postgres.Port, "defaults survive when no env override is set")
}
