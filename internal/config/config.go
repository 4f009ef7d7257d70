package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// TLS listener (optional; plain HTTP when unset)
	TLSCertFile string
	TLSKeyFile  string

	// Observability sink
	EventLogDir    string
	ChatWebhookURL string

	// Zoho web-to-lead forwarding
	ZohoEndpoint     string
	ZohoTimeout      time.Duration
	ZohoStrictStatus bool
	ZohoOrgToken     string
	ZohoSessionToken string
	ZohoActionType   string
	ZohoReturnURL    string

	// Submission fields
	AmountField string

	// Email alerts
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	AlertRecipients   []string
	NotifyOnLead      bool
	NotifyOnError     bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "*"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		EventLogDir:    getEnv("EVENT_LOG_DIR", "logs"),
		ChatWebhookURL: getEnv("CHAT_WEBHOOK_URL", ""),

		ZohoEndpoint:     getEnv("ZOHO_ENDPOINT", "https://crm.zoho.com.au/crm/WebToLeadForm"),
		ZohoTimeout:      getEnvAsDuration("ZOHO_TIMEOUT", 30*time.Second),
		ZohoStrictStatus: getEnvAsBool("ZOHO_STRICT_STATUS", false),
		ZohoOrgToken:     getEnv("ZOHO_ORG_TOKEN", "p2qZ0rUeHnLMivRuCtEYzSg4eW1BGJ7x"),
		ZohoSessionToken: getEnv("ZOHO_SESSION_TOKEN", "61021d7cf4a06cc2cd4d1b693ba79fa3e9bbcb7c8e"),
		ZohoActionType:   getEnv("ZOHO_ACTION_TYPE", "TGVhZHM="),
		ZohoReturnURL:    getEnv("ZOHO_RETURN_URL", "https://www.oceaniadigital.com.au/thank-you"),

		AmountField: getEnv("AMOUNT_FIELD", "LEADCF66"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Lead Relay"),
		AlertRecipients:   getEnvAsList("ALERT_RECIPIENTS", ""),
		NotifyOnLead:      getEnvAsBool("NOTIFY_ON_LEAD", true),
		NotifyOnError:     getEnvAsBool("NOTIFY_ON_ERROR", true),
	}
}

// TLSEnabled reports whether both certificate and key paths are configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping empty entries
func getEnvAsList(key, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
