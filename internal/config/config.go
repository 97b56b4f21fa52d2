package config

import (
	"os"
	"strings"
)

// Config carries every credential and tunable the pipeline components need.
// Components receive their slice of it at construction so tests can run with
// fixture values instead of ambient env state.
type Config struct {
	DatabaseURL string
	RedisURL    string

	NewsDataAPIKey     string
	FirecrawlAPIKey    string
	SafeBrowsingAPIKey string
	FinnhubAPIKey      string

	OpenAIAPIKey    string
	AnthropicAPIKey string

	FrontendURL string
	Countries   string

	// Extra domains appended to the built-in trusted/bad lists.
	ExtraTrustedDomains []string
	ExtraBadDomains     []string
}

func Load() *Config {
	return &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            os.Getenv("REDIS_URL"),
		NewsDataAPIKey:      os.Getenv("NEWSDATA_API_KEY"),
		FirecrawlAPIKey:     os.Getenv("FIRECRAWL_API_KEY"),
		SafeBrowsingAPIKey:  os.Getenv("GOOGLE_SB_API_KEY"),
		FinnhubAPIKey:       os.Getenv("FINNHUB_API_KEY"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		FrontendURL:         os.Getenv("FRONTEND_URL"),
		Countries:           getEnv("NEWS_COUNTRIES", "us,in,gb"),
		ExtraTrustedDomains: getListEnv("EXTRA_TRUSTED_DOMAINS"),
		ExtraBadDomains:     getListEnv("EXTRA_BAD_DOMAINS"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if d := strings.TrimSpace(part); d != "" {
			out = append(out, strings.ToLower(d))
		}
	}
	return out
}
