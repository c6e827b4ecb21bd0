package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Learning schedule
	LearnSchedule string // "daily" or "weekly"
	TimeZone      string

	// Posts scoring below this are analyzed but not learned into the store
	MinLearnScore int

	// Azure Storage configuration (analysis archive + store snapshots)
	StorageAccount   string
	StorageContainer string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Scraping provider (black-box "fetch posts" API)
	ScraperAPIURL string
	ScraperAPIKey string

	// Accounts to pull viral posts from
	LinkedInHandles []string
	TwitterHandles  []string

	// LLM draft polish (optional)
	OpenAIAPIKey string
	OpenAIModel  string

	// Trending-topics override for the signal extractor
	TrendingTopics []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Debug:         getBoolEnv("DEBUG", false),
		LearnSchedule: getEnv("LEARN_SCHEDULE", "weekly"),
		TimeZone:      getEnv("TIMEZONE", "UTC"),
		MinLearnScore: getIntEnv("MIN_LEARN_SCORE", 40),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "viral-formats"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		ScraperAPIURL: getEnv("SCRAPER_API_URL", ""),
		ScraperAPIKey: getEnv("SCRAPER_API_KEY", ""),

		LinkedInHandles: getSliceEnv("LINKEDIN_HANDLES", nil),
		TwitterHandles:  getSliceEnv("TWITTER_HANDLES", nil),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		TrendingTopics: getSliceEnv("TRENDING_TOPICS", nil),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.LearnSchedule != "daily" && c.LearnSchedule != "weekly" {
		return fmt.Errorf("LEARN_SCHEDULE must be 'daily' or 'weekly'")
	}

	if c.MinLearnScore < 0 || c.MinLearnScore > 100 {
		return fmt.Errorf("MIN_LEARN_SCORE must be between 0 and 100")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
