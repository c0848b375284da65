package config

import (
	"time"
)

type Postgres struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	DB       string `koanf:"db"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"ssl_mode"`
}

type HttpServer struct {
	Address string `koanf:"address"`
}

type NATS struct {
	URL string `koanf:"url"`
}

type OpenAI struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type ERecht24 struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
}

type ComplyoService struct {
	BaseURL string `koanf:"base_url"`
}

type FixQuota struct {
	FreeFixesPerDomain int `koanf:"free_fixes_per_domain"`
}

type Auth struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type Company struct {
	Name          string `koanf:"name"`
	Owner         string `koanf:"owner"`
	Street        string `koanf:"street"`
	City          string `koanf:"city"`
	Email         string `koanf:"email"`
	Phone         string `koanf:"phone"`
	VATID         string `koanf:"vat_id"`
	RegisterCourt string `koanf:"register_court"`
}

type FixPolling struct {
	Interval time.Duration `koanf:"interval"`
	Deadline time.Duration `koanf:"deadline"`
}
