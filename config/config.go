package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the env-driven service configuration. A .env file in the working
// directory is honored when present.
type Config struct {
	Port             string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIImageModel string
	OpenAIBaseURL    string
	CatalogPath      string
	// PriceTimeout bounds one recalculate-price call end to end, separate
	// from the transport timeout inside the HTTP client.
	PriceTimeout time.Duration
	AgentTimeout time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		OpenAIAPIKey:     apiKey,
		OpenAIModel:      getenv("OPENAI_MODEL", "gpt-5.1"),
		OpenAIImageModel: getenv("OPENAI_IMAGE_MODEL", "gpt-image-1"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		CatalogPath:      getenv("CATALOG_PATH", "./data/brand_models.csv"),
		PriceTimeout:     getenvDuration("PRICE_TIMEOUT_SECONDS", 180*time.Second),
		AgentTimeout:     getenvDuration("AGENT_TIMEOUT_SECONDS", 120*time.Second),
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		log.Printf("config: ignoring invalid %s=%q", key, v)
		return def
	}
	return time.Duration(secs) * time.Second
}
