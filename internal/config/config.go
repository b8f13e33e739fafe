// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Search struct {
	Query           string   `yaml:"query"`
	PostedDate      string   `yaml:"posted_date"`
	EmploymentTypes []string `yaml:"employment_types"`
	Radius          int      `yaml:"radius"`
	RadiusUnit      string   `yaml:"radius_unit"`
	CountryCode     string   `yaml:"country_code"`
	Language        string   `yaml:"language"`
}

type Config struct {
	DiceEmail    string `yaml:"dice_email" env:"DICE_EMAIL"`
	DicePassword string `yaml:"dice_password" env:"DICE_PASSWORD"`
	ResumePath   string `yaml:"resume_path" env:"RESUME_PATH"`
	//Search criteria
	Search          Search   `yaml:"search"`
	Keywords        []string `yaml:"keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	//Paths
	RegistryPath   string `yaml:"registry_path"`
	CookiesPath    string `yaml:"cookies_path"`
	ScreenshotsDir string `yaml:"screenshots_dir"`
	//Pacing & browser
	PerJobWaitSeconds int `yaml:"per_job_wait_seconds"`
	//Headless defaults to true; set headless: false to watch the browser
	Headless *bool `yaml:"headless"`
	//Optional reporting
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	//Validate required fields
	if cfg.DiceEmail == "" {
		log.Fatal("DICE_EMAIL is required")
	}

	if cfg.DicePassword == "" {
		log.Fatal("DICE_PASSWORD is required")
	}

	if cfg.ResumePath == "" {
		log.Fatal("RESUME_PATH is required")
	}

	if cfg.Search.Query == "" {
		log.Fatal("search.query is required (configs/config.yaml)")
	}

	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if email := os.Getenv("DICE_EMAIL"); email != "" {
		cfg.DiceEmail = email
	}

	if password := os.Getenv("DICE_PASSWORD"); password != "" {
		cfg.DicePassword = password
	}

	if resume := os.Getenv("RESUME_PATH"); resume != "" {
		cfg.ResumePath = resume
	}

	if registry := os.Getenv("REGISTRY_PATH"); registry != "" {
		cfg.RegistryPath = registry
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}
}

func applyDefaults(cfg *Config) {
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = "seen_jobs.txt"
	}

	if cfg.CookiesPath == "" {
		cfg.CookiesPath = ".cookies"
	}

	if cfg.ScreenshotsDir == "" {
		cfg.ScreenshotsDir = "logs/screenshots"
	}

	if cfg.PerJobWaitSeconds == 0 {
		cfg.PerJobWaitSeconds = 3
	}

	if cfg.Headless == nil {
		headless := true
		cfg.Headless = &headless
	}

	if cfg.Search.PostedDate == "" {
		cfg.Search.PostedDate = "TWO"
	}

	if len(cfg.Search.EmploymentTypes) == 0 {
		cfg.Search.EmploymentTypes = []string{"CONTRACTS", "THIRD_PARTY"}
	}

	if cfg.Search.Radius == 0 {
		cfg.Search.Radius = 30
	}

	if cfg.Search.RadiusUnit == "" {
		cfg.Search.RadiusUnit = "mi"
	}

	if cfg.Search.CountryCode == "" {
		cfg.Search.CountryCode = "US"
	}

	if cfg.Search.Language == "" {
		cfg.Search.Language = "en"
	}
}

// SearchURL builds the Dice search-results URL for one result page.
func (c *Config) SearchURL(page int) string {
	q := url.Values{}
	q.Set("q", c.Search.Query)
	q.Set("filters.postedDate", c.Search.PostedDate)
	q.Set("filters.employmentType", strings.Join(c.Search.EmploymentTypes, "|"))
	q.Set("radius", strconv.Itoa(c.Search.Radius))
	q.Set("radiusUnit", c.Search.RadiusUnit)
	q.Set("countryCode", c.Search.CountryCode)
	q.Set("language", c.Search.Language)
	q.Set("page", strconv.Itoa(page))
	return "https://www.dice.com/jobs?" + q.Encode()
}
