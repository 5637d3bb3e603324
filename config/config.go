// config/config.go - Environment-backed settings, loaded once per process
package config

import (
	"log"
	"os"
	"strings"
	"sync"
)

type Config struct {
	// Database
	DatabaseURL string

	// Identity provider (Supabase-compatible)
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string
	SupabaseJWKSURL   string

	// Google OAuth (PKCE flow through the provider)
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	// NAVER map API (served to the web client)
	NaverMapClientID string

	ProjectVersion string
	Port           string
	CORSOrigins    string
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the cached process configuration.
func Get() *Config {
	once.Do(func() {
		cfg = &Config{
			DatabaseURL:        os.Getenv("DATABASE_URL"),
			SupabaseURL:        strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
			SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
			SupabaseJWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),
			SupabaseJWKSURL:    os.Getenv("SUPABASE_JWKS_URL"),
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
			NaverMapClientID:   os.Getenv("NAVER_MAP_CLIENT_ID"),
			ProjectVersion:     getEnv("PROJECT_VERSION", "0.1.0"),
			Port:               getEnv("PORT", "8000"),
			CORSOrigins:        getEnv("CORS_ORIGINS", "http://localhost:3000"),
		}

		// The JWKS endpoint is derivable from the provider base URL
		if cfg.SupabaseJWKSURL == "" && cfg.SupabaseURL != "" {
			cfg.SupabaseJWKSURL = cfg.SupabaseURL + "/auth/v1/.well-known/jwks.json"
		}
	})
	return cfg
}

// Validate fails fast when a required setting is missing at startup.
func Validate() {
	c := Get()

	required := map[string]string{
		"DATABASE_URL":        c.DatabaseURL,
		"SUPABASE_URL":        c.SupabaseURL,
		"SUPABASE_ANON_KEY":   c.SupabaseAnonKey,
		"GOOGLE_REDIRECT_URI": c.GoogleRedirectURI,
	}
	for name, value := range required {
		if value == "" {
			log.Fatalf("FATAL: %s environment variable must be set", name)
		}
	}

	if c.SupabaseJWTSecret == "" {
		log.Println("WARNING: SUPABASE_JWT_SECRET not set, HMAC tokens will be rejected")
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
