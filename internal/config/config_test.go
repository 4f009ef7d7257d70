package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ZOHO_ENDPOINT", "")
	t.Setenv("ZOHO_TIMEOUT", "")
	t.Setenv("AMOUNT_FIELD", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.ZohoEndpoint != "https://crm.zoho.com.au/crm/WebToLeadForm" {
		t.Fatalf("expected default zoho endpoint, got %s", cfg.ZohoEndpoint)
	}
	if cfg.ZohoTimeout != 30*time.Second {
		t.Fatalf("expected default zoho timeout, got %s", cfg.ZohoTimeout)
	}
	if cfg.ZohoStrictStatus {
		t.Fatal("expected strict status disabled by default")
	}
	if cfg.AmountField != "LEADCF66" {
		t.Fatalf("expected default amount field, got %s", cfg.AmountField)
	}
	if cfg.TLSEnabled() {
		t.Fatal("expected TLS disabled without cert and key")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9443")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ZOHO_TIMEOUT", "5s")
	t.Setenv("ZOHO_STRICT_STATUS", "true")
	t.Setenv("TLS_CERT_FILE", "/etc/ssl/server.crt")
	t.Setenv("TLS_KEY_FILE", "/etc/ssl/server.key")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("ALERT_RECIPIENTS", "ops@example.com")

	cfg := Load()
	if cfg.Port != "9443" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.ZohoTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.ZohoTimeout)
	}
	if !cfg.ZohoStrictStatus {
		t.Fatal("expected strict status enabled")
	}
	if !cfg.TLSEnabled() {
		t.Fatal("expected TLS enabled with cert and key set")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("expected two trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
	if len(cfg.AlertRecipients) != 1 {
		t.Fatalf("expected one alert recipient, got %v", cfg.AlertRecipients)
	}
}

func TestGetEnvAsListEmpty(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
	cfg := Load()
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no origins, got %v", cfg.CORSAllowedOrigins)
	}
}
