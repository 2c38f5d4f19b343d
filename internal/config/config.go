package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Dealership identity used in caller-facing utterances and transfers.
	DealershipName  string
	DealershipPhone string

	// Voice platform webhook verification.
	VoiceWebhookSecret string

	// Outbound communications.
	EmailProvider     string // "sendgrid", "ses", or "disabled"
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	SESFromName       string
	SMSProviderURL    string
	SMSAccountSID     string
	SMSAuthToken      string
	SMSFromNumber     string

	// AWS (SES).
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Google Sheets lead log.
	SheetsSpreadsheetID   string
	SheetsCredentialsJSON string

	// Comms sweep cadence.
	SweepInterval  time.Duration
	SweepBatchSize int

	// Summary email delay after qualification.
	SummaryEmailDelay time.Duration

	// Shareable inventory link lifetime.
	ShareLinkTTL time.Duration

	AdminJWTSecret string

	SalesRosterJSON  string
	AssignmentPolicy string // "round_robin" or "expertise"
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		DealershipName:  getEnv("DEALERSHIP_NAME", "Wheelhouse Motors"),
		DealershipPhone: getEnv("DEALERSHIP_PHONE", ""),

		VoiceWebhookSecret: getEnv("VOICE_WEBHOOK_SECRET", ""),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "disabled"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Wheelhouse Motors"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "Wheelhouse Motors"),
		SMSProviderURL:    getEnv("SMS_PROVIDER_URL", ""),
		SMSAccountSID:     getEnv("SMS_ACCOUNT_SID", ""),
		SMSAuthToken:      getEnv("SMS_AUTH_TOKEN", ""),
		SMSFromNumber:     getEnv("SMS_FROM_NUMBER", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		SheetsSpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsJSON: getEnv("SHEETS_CREDENTIALS_JSON", ""),

		SweepInterval:  getEnvAsDuration("SWEEP_INTERVAL", 30*time.Second),
		SweepBatchSize: getEnvAsInt("SWEEP_BATCH_SIZE", 50),

		SummaryEmailDelay: getEnvAsDuration("SUMMARY_EMAIL_DELAY", 20*time.Minute),

		ShareLinkTTL: getEnvAsDuration("SHARE_LINK_TTL", 72*time.Hour),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		SalesRosterJSON:  getEnv("SALES_ROSTER_JSON", ""),
		AssignmentPolicy: strings.ToLower(strings.TrimSpace(getEnv("ASSIGNMENT_POLICY", "round_robin"))),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
