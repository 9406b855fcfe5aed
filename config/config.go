package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	LogLevel    string
	APIBaseURL  string
	HTTPTimeout time.Duration
	// Session persistence (replaces browser local storage)
	SessionFile string
	// Cache
	CacheDirectoryTTL time.Duration
	CacheProductTTL   time.Duration
	// Outbound rate limit
	RateLimitRPS   float64
	RateLimitBurst int
	// Doctor AI uploads
	MaxUploadSizeMB int64
	UploadMaxWidth  int
}

func LoadConfig() (*Config, error) {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		}
	} else {
		// 2. Default fallback: .env in the working directory, if any
		_ = godotenv.Load()
	}

	cfg := &Config{
		Env:         getEnv("ENV", "production"),
		LogLevel:    getEnv("LOG_LEVEL", "warn"),
		APIBaseURL:  strings.TrimSuffix(getEnv("API_BASE_URL", "http://localhost:5000"), "/"),
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT", 30*time.Second),
		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),

		// Cache defaults: 10m clinic/doctor directory, 5m products
		CacheDirectoryTTL: getDurationEnv("CACHE_DIRECTORY_TTL", 10*time.Minute),
		CacheProductTTL:   getDurationEnv("CACHE_PRODUCT_TTL", 5*time.Minute),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 20),

		// Upload defaults: 10MB max, downscale to 2000px wide
		MaxUploadSizeMB: getInt64Env("MAX_UPLOAD_SIZE_MB", 10),
		UploadMaxWidth:  getIntEnv("UPLOAD_MAX_WIDTH", 2000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
	}
	if c.SessionFile == "" {
		return fmt.Errorf("SESSION_FILE is required")
	}
	if u.Scheme == "http" && c.Env == "production" && u.Hostname() != "localhost" {
		log.Println("WARNING: API_BASE_URL is plain http; bearer tokens will travel unencrypted.")
	}
	return nil
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".petclinic-session.json"
	}
	return filepath.Join(home, ".petclinic", "session.json")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}
