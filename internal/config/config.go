package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	StatementTTL   time.Duration

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration
	RefreshTokenDur   time.Duration

	SNSRegion      string
	AllowedOrigins []string // CORS allowed origins

	Portal Portal
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Sessions      string
	Notifications string
	Reports       string
	Salaries      string
	Expenses      string
	Performance   string
}

// Portal configures the single-user web front end.
type Portal struct {
	Port           string
	APIBaseURL     string
	StateDir       string
	ClientTimeout  time.Duration
	SearchDebounce time.Duration
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Sessions:      getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			Notifications: getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			Reports:       getEnv("DYNAMO_TABLE_REPORTS", "reports"),
			Salaries:      getEnv("DYNAMO_TABLE_SALARIES", "salaries"),
			Expenses:      getEnv("DYNAMO_TABLE_EXPENSES", "expenses"),
			Performance:   getEnv("DYNAMO_TABLE_PERFORMANCE", "performance_reports"),
		},
		S3BucketName:      getEnv("S3_BUCKET_NAME", "staff-portal-statements"),
		StatementTTL:      time.Duration(getEnvInt("STATEMENT_URL_TTL_MINUTES", 15)) * time.Minute,
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		RefreshTokenDur:   time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30)) * 24 * time.Hour,
		SNSRegion:         getEnv("SNS_REGION", "us-east-1"),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		Portal: Portal{
			Port:           getEnv("PORTAL_PORT", "8080"),
			APIBaseURL:     getEnv("PORTAL_API_URL", "http://localhost:3000"),
			StateDir:       getEnv("PORTAL_STATE_DIR", "./.portal"),
			ClientTimeout:  time.Duration(getEnvInt("PORTAL_CLIENT_TIMEOUT_SECONDS", 15)) * time.Second,
			SearchDebounce: time.Duration(getEnvInt("PORTAL_SEARCH_DEBOUNCE_MS", 300)) * time.Millisecond,
		},
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
