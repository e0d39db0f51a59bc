// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Search      SearchConfig
	Scraper     ScraperConfig
	I18n        I18nConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type RedisConfig struct {
	URL        string
	PopularTTL int // in seconds; TTL of the cached popular-searches list
}

type JWTConfig struct {
	SecretKey string
}

// SearchConfig carries the tunables of the suggestion pipeline. The defaults
// mirror production values; none of them are hard invariants.
type SearchConfig struct {
	SimilarityThreshold float64 // per-field trigram score needed for fuzzy eligibility
	CandidateLimit      int     // raw candidates pulled before classification
	SuggestionLimit     int     // classified suggestions returned to the client
	PopularLimit        int     // popular queries returned
	HistoryLimit        int     // per-user history entries returned
}

type ScraperConfig struct {
	BaseURL string
	APIKey  string
	Timeout int // in seconds; hard upper bound on a provider lookup
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "recambia"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", ""),
			PopularTTL: getEnvAsInt("REDIS_POPULAR_TTL", 60),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Search: SearchConfig{
			SimilarityThreshold: getEnvAsFloat("SEARCH_SIMILARITY_THRESHOLD", 0.2),
			CandidateLimit:      getEnvAsInt("SEARCH_CANDIDATE_LIMIT", 50),
			SuggestionLimit:     getEnvAsInt("SEARCH_SUGGESTION_LIMIT", 10),
			PopularLimit:        getEnvAsInt("SEARCH_POPULAR_LIMIT", 5),
			HistoryLimit:        getEnvAsInt("SEARCH_HISTORY_LIMIT", 3),
		},
		Scraper: ScraperConfig{
			BaseURL: getEnv("SCRAPER_BASE_URL", ""),
			APIKey:  getEnv("SCRAPER_API_KEY", ""),
			Timeout: getEnvAsInt("SCRAPER_TIMEOUT", 240),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "es"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Search.SimilarityThreshold <= 0 || c.Search.SimilarityThreshold >= 1 {
		return fmt.Errorf("similarity threshold must be in (0,1), got %v", c.Search.SimilarityThreshold)
	}

	if c.Search.CandidateLimit < c.Search.SuggestionLimit {
		return fmt.Errorf("candidate limit (%d) must not be smaller than suggestion limit (%d)",
			c.Search.CandidateLimit, c.Search.SuggestionLimit)
	}

	return nil
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
