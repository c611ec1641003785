package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Fare.BaseFare != 25 || cfg.Fare.PerKmRate != 12 {
		t.Errorf("expected tariff 25 + 12/km, got %v + %v/km", cfg.Fare.BaseFare, cfg.Fare.PerKmRate)
	}
	if cfg.Fare.PlatformFeeRate != "0.10" {
		t.Errorf("expected fee rate 0.10, got %s", cfg.Fare.PlatformFeeRate)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token TTL, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.RabbitMQ.Enabled || cfg.NewRelic.Enabled {
		t.Error("expected optional integrations to be disabled by default")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FARE_BASE", "30")
	t.Setenv("PLATFORM_FEE_RATE", "0.15")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.campus.edu, ,https://b.campus.edu")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Fare.BaseFare != 30 {
		t.Errorf("expected base fare 30, got %v", cfg.Fare.BaseFare)
	}
	if cfg.Fare.PlatformFeeRate != "0.15" {
		t.Errorf("expected fee rate 0.15, got %s", cfg.Fare.PlatformFeeRate)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %v", cfg.Auth.TokenTTL)
	}
	if !cfg.RabbitMQ.Enabled {
		t.Error("expected RabbitMQ enabled")
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.campus.edu" {
		t.Errorf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("FARE_PER_KM", "twelve")
	t.Setenv("DB_AUTO_MIGRATE", "maybe")
	t.Setenv("AUTH_RATE_LIMIT_WINDOW", "soon")

	cfg := Load()

	if cfg.Fare.PerKmRate != 12 {
		t.Errorf("expected fallback 12, got %v", cfg.Fare.PerKmRate)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("expected fallback auto-migrate true")
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("expected fallback 1m, got %v", cfg.RateLimit.Window)
	}
}
