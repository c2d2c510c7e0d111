package config

import (
	"os"
	"testing"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if val, ok := os.LookupEnv(key); ok {
		t.Cleanup(func() { os.Setenv(key, val) })
	}
	os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	t.Run("returns config with defaults when no env vars set", func(t *testing.T) {
		for _, key := range []string{"DB_DRIVER", "DB_HOST", "SERVER_PORT", "STORAGE_BACKEND", "STORAGE_ENDPOINT", "UPLOAD_MAX_IMAGE_BYTES", "OIDC_REDIRECT_URL", "OIDC_SCOPES"} {
			unsetEnv(t, key)
		}

		cfg := Load()
		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if cfg.DB.Driver != "postgres" {
			t.Errorf("expected DB.Driver 'postgres', got %s", cfg.DB.Driver)
		}
		if cfg.DB.Host != "localhost" {
			t.Errorf("expected DB.Host 'localhost', got %s", cfg.DB.Host)
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("expected Server.Port '8080', got %s", cfg.Server.Port)
		}
		if cfg.Storage.Endpoint != "localhost:9000" {
			t.Errorf("expected Storage.Endpoint 'localhost:9000', got %s", cfg.Storage.Endpoint)
		}
		if cfg.Upload.MaxImageBytes != 5*1024*1024 {
			t.Errorf("expected Upload.MaxImageBytes 5MiB, got %d", cfg.Upload.MaxImageBytes)
		}
		if cfg.OIDC.RedirectURL != "http://localhost:8080/api/callback" {
			t.Errorf("unexpected OIDC.RedirectURL %s", cfg.OIDC.RedirectURL)
		}
		if got := cfg.OIDC.ScopeList(); len(got) != 3 || got[0] != "openid" {
			t.Errorf("unexpected OIDC scopes %v", got)
		}
	})

	t.Run("reads environment variables", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "SQLite")
		t.Setenv("DB_SQLITE_PATH", "/tmp/tv.db")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("JWT_SECRET", "my-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "48")
		t.Setenv("FRONTEND_URL", "https://app.example.com/")
		t.Setenv("COOKIE_SECURE", "true")

		cfg := Load()

		if cfg.DB.Driver != "sqlite" {
			t.Errorf("expected DB.Driver 'sqlite', got %s", cfg.DB.Driver)
		}
		if cfg.DB.SQLitePath != "/tmp/tv.db" {
			t.Errorf("expected DB.SQLitePath '/tmp/tv.db', got %s", cfg.DB.SQLitePath)
		}
		if cfg.Server.Port != "9090" {
			t.Errorf("expected Server.Port '9090', got %s", cfg.Server.Port)
		}
		if cfg.JWT.Secret != "my-secret" {
			t.Errorf("expected JWT.Secret 'my-secret', got %s", cfg.JWT.Secret)
		}
		if cfg.JWT.ExpirationHours != 48 {
			t.Errorf("expected JWT.ExpirationHours 48, got %d", cfg.JWT.ExpirationHours)
		}
		if cfg.Server.FrontendURL != "https://app.example.com" {
			t.Errorf("expected trailing slash trimmed, got %s", cfg.Server.FrontendURL)
		}
		if !cfg.Server.CookieSecure {
			t.Error("expected CookieSecure true")
		}
	})

	t.Run("S3 endpoint defaults to AWS format when not set", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "s3")
		t.Setenv("S3_REGION", "eu-west-1")
		unsetEnv(t, "STORAGE_ENDPOINT")
		unsetEnv(t, "STORAGE_USE_SSL")

		cfg := Load()

		if cfg.Storage.Endpoint != "s3.eu-west-1.amazonaws.com" {
			t.Errorf("expected AWS endpoint, got %q", cfg.Storage.Endpoint)
		}
		if !cfg.Storage.UseSSL {
			t.Error("expected SSL on by default for s3")
		}
	})

	t.Run("non-positive limits fall back to defaults", func(t *testing.T) {
		for _, raw := range []string{"0", "-1"} {
			t.Setenv("UPLOAD_MAX_IMAGE_BYTES", raw)
			t.Setenv("JWT_EXPIRATION_HOURS", raw)

			cfg := Load()

			if cfg.Upload.MaxImageBytes != 5*1024*1024 {
				t.Errorf("UPLOAD_MAX_IMAGE_BYTES=%s: expected default upload limit, got %d", raw, cfg.Upload.MaxImageBytes)
			}
			if cfg.JWT.ExpirationHours != 24*7 {
				t.Errorf("JWT_EXPIRATION_HOURS=%s: expected default expiration, got %d", raw, cfg.JWT.ExpirationHours)
			}
		}
	})

	t.Run("invalid numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("JWT_EXPIRATION_HOURS", "soon")
		t.Setenv("UPLOAD_MAX_IMAGE_BYTES", "big")

		cfg := Load()

		if cfg.JWT.ExpirationHours != 24*7 {
			t.Errorf("expected default expiration, got %d", cfg.JWT.ExpirationHours)
		}
		if cfg.Upload.MaxImageBytes != 5*1024*1024 {
			t.Errorf("expected default upload limit, got %d", cfg.Upload.MaxImageBytes)
		}
	})
}

func TestOIDCConfigEnabled(t *testing.T) {
	if (OIDCConfig{}).Enabled() {
		t.Error("empty config should be disabled")
	}
	if !(OIDCConfig{IssuerURL: "https://id.example.com", ClientID: "tv"}).Enabled() {
		t.Error("issuer + client id should enable oidc")
	}
}
