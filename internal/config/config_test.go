package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "seen_jobs.txt", cfg.RegistryPath)
	assert.Equal(t, "logs/screenshots", cfg.ScreenshotsDir)
	assert.Equal(t, 3, cfg.PerJobWaitSeconds)
	assert.Equal(t, "TWO", cfg.Search.PostedDate)
	assert.Equal(t, []string{"CONTRACTS", "THIRD_PARTY"}, cfg.Search.EmploymentTypes)
	assert.Equal(t, "US", cfg.Search.CountryCode)
}

func TestHeadlessDefaultsTrue(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	require.NotNil(t, cfg.Headless)
	assert.True(t, *cfg.Headless, "absent headless key must default to true")
}

func TestHeadlessExplicitFalseSurvivesDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, yaml.Unmarshal([]byte("headless: false"), cfg))
	applyDefaults(cfg)

	require.NotNil(t, cfg.Headless)
	assert.False(t, *cfg.Headless)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DICE_EMAIL", "env@example.com")
	t.Setenv("DICE_PASSWORD", "hunter2")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg := &Config{DiceEmail: "yaml@example.com"}
	applyEnvOverrides(cfg)

	assert.Equal(t, "env@example.com", cfg.DiceEmail, "env should win over yaml")
	assert.Equal(t, "hunter2", cfg.DicePassword)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
}

func TestSearchURL(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Search.Query = "AI/ML"

	url := cfg.SearchURL(2)

	assert.Contains(t, url, "https://www.dice.com/jobs?")
	assert.Contains(t, url, "q=AI%2FML")
	assert.Contains(t, url, "filters.employmentType=CONTRACTS%7CTHIRD_PARTY")
	assert.Contains(t, url, "page=2")
}
