package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type OAuthProvider struct {
	ClientID     string
	ClientSecret string
}

type Config struct {
	Port              string
	BaseURL           string
	BasePath          string
	FrontendURL       string
	BackendAPIURL     string
	PagesUpstream     string
	LoginRedirectPath string
	Google            OAuthProvider
	GitHub            OAuthProvider
	LinkedIn          OAuthProvider
	PostgresURI       string
	RedisURI          string
	RedisPassword     string
	R2                R2
	SecretKey         string
	CookieName        string
	SessionTTL        time.Duration
	LogLevel          string
	LogFormat         string
	MigrateOnStart    bool
	WorkerConcurrency int
}

func LoadConfig() *Config {
	return &Config{
		Port:              getEnv("PORT", "3000"),
		BaseURL:           strings.TrimRight(getEnv("BASE_URL", "http://localhost:3000"), "/"),
		BasePath:          strings.TrimRight(getEnv("BASE_PATH", ""), "/"),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		BackendAPIURL:     strings.TrimRight(getEnv("BACKEND_API_URL", "http://localhost:8000"), "/"),
		PagesUpstream:     strings.TrimRight(getEnv("PAGES_UPSTREAM", ""), "/"),
		LoginRedirectPath: getEnv("LOGIN_REDIRECT_PATH", "/dashboard"),
		Google: OAuthProvider{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
		GitHub: OAuthProvider{
			ClientID:     getEnv("GITHUB_ID", ""),
			ClientSecret: getEnv("GITHUB_SECRET", ""),
		},
		LinkedIn: OAuthProvider{
			ClientID:     getEnv("LINKEDIN_ID", ""),
			ClientSecret: getEnv("LINKEDIN_SECRET", ""),
		},
		PostgresURI:   getEnv("POSTGRES_URI", ""),
		RedisURI:      getEnv("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  strings.TrimRight(getEnv("R2_PUBLIC_URL", ""), "/"),
		},
		SecretKey:         getEnv("SECRET_KEY", ""),
		CookieName:        getEnv("COOKIE_NAME", "dagbok.session-token"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		MigrateOnStart:    getEnvBool("MIGRATE_ON_START", true),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 5),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	if c.PostgresURI == "" {
		errs = append(errs, errors.New("POSTGRES_URI is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}
