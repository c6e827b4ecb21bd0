package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DEBUG", "LEARN_SCHEDULE", "TIMEZONE", "MIN_LEARN_SCORE",
		"AZURE_STORAGE_ACCOUNT", "AZURE_STORAGE_CONTAINER",
		"TEAMS_WEBHOOK_URL", "NOTIFICATION_EMAIL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD",
		"SCRAPER_API_URL", "SCRAPER_API_KEY",
		"LINKEDIN_HANDLES", "TWITTER_HANDLES",
		"OPENAI_API_KEY", "OPENAI_MODEL", "TRENDING_TOPICS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "weekly", cfg.LearnSchedule)
	assert.Equal(t, 40, cfg.MinLearnScore)
	assert.Equal(t, "viral-formats", cfg.StorageContainer)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Empty(t, cfg.LinkedInHandles)
}

func TestLoad_InvalidSchedule(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEARN_SCHEDULE", "hourly")

	_, err := Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LEARN_SCHEDULE")
}

func TestLoad_MinLearnScoreOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("MIN_LEARN_SCORE", "150")

	_, err := Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_LEARN_SCORE")
}

func TestLoad_EmailRequiresSMTP(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTIFICATION_EMAIL", "team@example.com")

	_, err := Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP")
}

func TestLoad_SliceParsing(t *testing.T) {
	clearEnv(t)
	t.Setenv("LINKEDIN_HANDLES", "alice, bob ,carol")
	t.Setenv("TRENDING_TOPICS", "ai,creator economy")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.LinkedInHandles)
	assert.Equal(t, []string{"ai", "creator economy"}, cfg.TrendingTopics)
}

func TestLoad_IntAndBoolParsing(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBUG", "true")
	t.Setenv("MIN_LEARN_SCORE", "55")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 55, cfg.MinLearnScore)
	assert.Equal(t, 2525, cfg.SMTPPort)
}
