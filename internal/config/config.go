// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//Acceptance thresholds. The source material disagreed with itself on
	//these, so they are tunable rather than hard-coded.
	TitleMinLength       int `yaml:"title_min_length"`
	CompanyMinLength     int `yaml:"company_min_length"`
	DescriptionMinLength int `yaml:"description_min_length"`

	//Plain HTTP fetching
	FetchRetries        int      `yaml:"fetch_retries"`
	FetchTimeoutSeconds int      `yaml:"fetch_timeout_seconds"`
	UserAgents          []string `yaml:"user_agents"`

	//Stealth browser fetching
	Headless               bool   `yaml:"headless"`
	PageLoadTimeoutSeconds int    `yaml:"page_load_timeout_seconds"`
	SelectorTimeoutMillis  int    `yaml:"selector_timeout_millis"`
	CookiesPath            string `yaml:"cookies_path"`
	ScreenshotOnBlock      bool   `yaml:"screenshot_on_block"`

	//Domains that actively block naive clients and must go straight to
	//the stealth browser
	ProtectedSites []string `yaml:"protected_sites"`

	//Per-site selector tables, versioned configuration data
	SelectorsPath string `yaml:"selectors_path"`

	//Optional generative parse for the manual fallback
	GroqAPIKey string `yaml:"groq_api_key" env:"GROQ_API_KEY"`
	GroqModel  string `yaml:"groq_model"`

	//External collaborators
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL       string `yaml:"redis_url" env:"REDIS_URL"`
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load() *Config {
	return LoadFrom("configs/config.yaml")
}

func LoadFrom(path string) *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
	}

	//Override with env vars
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.GroqAPIKey = key
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cfg.RedisURL = redisURL
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

	cfg.applyDefaults()
	return cfg
}

// Default returns a config with every default applied and nothing loaded
// from disk or environment. Tests build fixture configs from this.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.TitleMinLength == 0 {
		cfg.TitleMinLength = 5
	}
	if cfg.CompanyMinLength == 0 {
		cfg.CompanyMinLength = 2
	}
	if cfg.DescriptionMinLength == 0 {
		cfg.DescriptionMinLength = 100
	}
	if cfg.FetchRetries == 0 {
		cfg.FetchRetries = 2
	}
	if cfg.FetchTimeoutSeconds == 0 {
		cfg.FetchTimeoutSeconds = 30
	}
	if cfg.PageLoadTimeoutSeconds == 0 {
		cfg.PageLoadTimeoutSeconds = 30
	}
	if cfg.SelectorTimeoutMillis == 0 {
		cfg.SelectorTimeoutMillis = 3000
	}
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = ".cookies"
	}
	if cfg.SelectorsPath == "" {
		cfg.SelectorsPath = "configs/selectors.yaml"
	}
	if cfg.GroqModel == "" {
		cfg.GroqModel = "llama-3.3-70b-versatile"
	}
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0",
		}
	}
	if len(cfg.ProtectedSites) == 0 {
		cfg.ProtectedSites = []string{
			"seek.com",
			"linkedin.com",
			"glassdoor.com",
			"indeed.com",
			"monster.com",
			"ziprecruiter.com",
		}
	}
}
