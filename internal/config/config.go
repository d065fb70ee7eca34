package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	// Code issuance policy. Charset and length are deliberately
	// configurable: historical deployments issued 6-digit numeric codes,
	// newer ones issue longer alphanumeric codes.
	DefaultCountryCode string
	CodeLength         int
	CodeCharset        string
	CodeLifetime       time.Duration
	OnsetDateRequired  bool
	UseTestDateAsOnset bool
	OnsetOffsetHours   int

	// Delivery routing. Precedence: proxy > queue > direct provider.
	IssueProxyURL    string
	DeliveryQueueURL string

	EnableSNS   bool
	SMSRegion   string
	SMSSender   string
	SMSTemplate string

	TwilioAccountSID          string
	TwilioAuthToken           string
	TwilioMessagingServiceSID string

	// Mobile numbers are persisted encrypted only, and only when queued
	// delivery needs the destination later. An empty passphrase disables
	// at-rest storage of the destination entirely.
	MobileEncryptPassphrase string
	MobileEncryptSalt       string

	MetricsTimezone string
	MetricsOrigin   string

	AllowedOrigins []string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Verifications string
	Metrics       string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "eu-west-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Verifications: getEnv("DYNAMO_TABLE_VERIFICATIONS", "verifications"),
			Metrics:       getEnv("DYNAMO_TABLE_METRICS", "metrics"),
		},

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "IE"),
		CodeLength:         getEnvInt("CODE_LENGTH", 6),
		CodeCharset:        getEnv("CODE_CHARSET", "0123456789"),
		CodeLifetime:       time.Duration(getEnvInt("CODE_LIFETIME_MINUTES", 30)) * time.Minute,
		OnsetDateRequired:  getEnvBool("ONSET_DATE_REQUIRED", false),
		UseTestDateAsOnset: getEnvBool("USE_TEST_DATE_AS_ONSET", false),
		OnsetOffsetHours:   getEnvInt("ONSET_OFFSET_HOURS", 0),

		IssueProxyURL:    getEnv("ISSUE_PROXY_URL", ""),
		DeliveryQueueURL: getEnv("DELIVERY_QUEUE_URL", ""),

		EnableSNS:   getEnvBool("ENABLE_SNS", true),
		SMSRegion:   getEnv("SMS_REGION", "eu-west-1"),
		SMSSender:   getEnv("SMS_SENDER", "NOTICE"),
		SMSTemplate: getEnv("SMS_TEMPLATE", "Your verification code is ${code}"),

		TwilioAccountSID:          getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:           getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioMessagingServiceSID: getEnv("TWILIO_MESSAGING_SERVICE_SID", ""),

		MobileEncryptPassphrase: getEnv("MOBILE_ENCRYPT_PASSPHRASE", ""),
		MobileEncryptSalt:       getEnv("MOBILE_ENCRYPT_SALT", "verifications"),

		MetricsTimezone: getEnv("METRICS_TIMEZONE", "UTC"),
		MetricsOrigin:   getEnv("METRICS_ORIGIN", "push"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
