package config

import (
	"golang-ai-newsroom/pkg/config"
)

// Storage selects and tunes the persistence backend.
type Storage struct {
	// Backend is "redis" or "postgres"; both satisfy the same store contract.
	Backend string `mapstructure:"backend"`
}

// AI holds configuration for the model providers.
type AI struct {
	// Provider is "openai" (any OpenAI-compatible endpoint) or "gemini".
	Provider            string `mapstructure:"provider"`
	RequestTimeout      string `mapstructure:"request_timeout"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// OpenAI holds process-level defaults for the OpenAI-compatible provider;
// tenants may override key, base URL and model per call.
type OpenAI struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Gemini holds the configuration for the Gemini provider.
type Gemini struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Feed holds the social feed fetcher configuration.
type Feed struct {
	// Source is "bluesky" or "rss".
	Source       string   `mapstructure:"source"`
	BaseURL      string   `mapstructure:"base_url"`
	RSSFeedURLs  []string `mapstructure:"rss_feed_urls"`
	FetchTimeout string   `mapstructure:"fetch_timeout"`
}

// Scheduler holds cron expressions for the generation jobs.
type Scheduler struct {
	Enabled                   bool   `mapstructure:"enabled"`
	ArticlesCron              string `mapstructure:"articles_cron"`
	EventsCron                string `mapstructure:"events_cron"`
	ArticlesFromEventsCron    string `mapstructure:"articles_from_events_cron"`
	EditionCron               string `mapstructure:"edition_cron"`
	DailyCron                 string `mapstructure:"daily_cron"`
	JobTimeout                string `mapstructure:"job_timeout"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Audit holds configuration for the raw model response sink.
type Audit struct {
	// Sink is "file" or "postgres".
	Sink string `mapstructure:"sink"`
	Dir  string `mapstructure:"dir"`
}

// Config holds the full configuration for the newsroom service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Storage   Storage         `mapstructure:"storage"`
	AI        AI              `mapstructure:"ai"`
	OpenAI    OpenAI          `mapstructure:"openai"`
	Gemini    Gemini          `mapstructure:"gemini"`
	Feed      Feed            `mapstructure:"feed"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
	Telegram  Telegram        `mapstructure:"telegram"`
	Audit     Audit           `mapstructure:"audit"`
}

// Load loads the newsroom service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
