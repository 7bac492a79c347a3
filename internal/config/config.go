package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Admin auth strategies. SharedSecret compares the bearer token against a
// single pre-shared operator secret; SignedToken requires a JWT issued by
// the admin login endpoint.
const (
	AdminAuthSharedSecret = "shared_secret"
	AdminAuthSignedToken  = "signed_token"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	Database    DatabaseConfig
	Recaptcha   RecaptchaConfig

	// Deployment toggles. Historical deployments differ on which of these
	// are enabled, so they are configuration rather than separate builds.
	RequireLanguage   bool
	RequireCaptcha    bool
	RateLimitMax      int
	RateLimitWindow   time.Duration
	UniqueEmailPerDay bool

	AdminAuthMode        string
	AdminAPIToken        string
	JWTSecret            string
	JWTExpirationMinutes int
	AdminEmail           string
	AdminPassword        string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RecaptchaConfig holds CAPTCHA verification settings
type RecaptchaConfig struct {
	Secret    string
	VerifyURL string
	Timeout   time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dental_clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	rateLimitMax, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX: %w", err)
	}

	rateLimitWindowMinutes, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW_MINUTES: %w", err)
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	captchaTimeoutSeconds, err := strconv.Atoi(getEnv("RECAPTCHA_TIMEOUT_SECONDS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECAPTCHA_TIMEOUT_SECONDS: %w", err)
	}

	adminAuthMode := getEnv("ADMIN_AUTH_MODE", AdminAuthSharedSecret)
	if adminAuthMode != AdminAuthSharedSecret && adminAuthMode != AdminAuthSignedToken {
		return nil, fmt.Errorf("invalid ADMIN_AUTH_MODE: %q", adminAuthMode)
	}

	// Return complete configuration
	return &Config{
		Port:        getEnv("PORT", "3001"),
		Origin:      getEnv("ORIGIN", "http://localhost:4200"),
		Environment: getEnv("APP_ENV", "development"),
		Database:    dbConfig,
		Recaptcha: RecaptchaConfig{
			Secret:    getEnv("RECAPTCHA_SECRET", ""),
			VerifyURL: getEnv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
			Timeout:   time.Duration(captchaTimeoutSeconds) * time.Second,
		},
		RequireLanguage:      getEnvBool("REQUIRE_LANGUAGE", true),
		RequireCaptcha:       getEnvBool("REQUIRE_CAPTCHA", true),
		RateLimitMax:         rateLimitMax,
		RateLimitWindow:      time.Duration(rateLimitWindowMinutes) * time.Minute,
		UniqueEmailPerDay:    getEnvBool("UNIQUE_EMAIL_PER_DAY", false),
		AdminAuthMode:        adminAuthMode,
		AdminAPIToken:        getEnv("ADMIN_API_TOKEN", ""),
		JWTSecret:            getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationMinutes: jwtExpMinutes,
		AdminEmail:           getEnv("ADMIN_EMAIL", ""),
		AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
	}, nil
}

// IsProduction reports whether error detail should be masked in responses.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
