package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sadopc/waterflow/internal/hydration"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

var validProviders = []string{ProviderGemini, ProviderOpenAI, ProviderNone}

type Config struct {
	// Storage
	DBPath      string
	DefaultGoal int

	// Logging
	LogFile  string
	LogLevel string

	// Advice
	AdviceProvider string
	AdviceLanguage string
	AdviceTimeout  time.Duration
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
}

// Load reads configuration from the environment, after merging an optional
// .env file in the working directory. Variables already set win over .env.
func Load() *Config {
	_ = godotenv.Load()

	dataDir := defaultDataDir()
	return &Config{
		DBPath:      getEnv("WATERFLOW_DB_PATH", filepath.Join(dataDir, "waterflow.db")),
		DefaultGoal: getEnvInt("WATERFLOW_DEFAULT_GOAL", 2500),

		LogFile:  getEnv("WATERFLOW_LOG_FILE", filepath.Join(dataDir, "waterflow.log")),
		LogLevel: getEnv("WATERFLOW_LOG_LEVEL", "info"),

		AdviceProvider: strings.ToLower(getEnv("ADVICE_PROVIDER", ProviderGemini)),
		AdviceLanguage: getEnv("ADVICE_LANGUAGE", "English"),
		AdviceTimeout:  getEnvDuration("ADVICE_TIMEOUT", 30*time.Second),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash-001"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}
	if !hydration.ValidGoal(c.DefaultGoal) {
		problems = append(problems, fmt.Sprintf("invalid default goal %d: must be between 1 and %d millilitres", c.DefaultGoal, hydration.MaxGoal))
	}
	if !slices.Contains(validProviders, c.AdviceProvider) {
		problems = append(problems, fmt.Sprintf("invalid advice provider '%s': must be one of %v", c.AdviceProvider, validProviders))
	}
	if c.AdviceTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid advice timeout %v: must be positive", c.AdviceTimeout))
	}
	if c.AdviceProvider == ProviderOpenAI {
		if u, err := url.Parse(c.OpenAIBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			problems = append(problems, fmt.Sprintf("invalid OpenAI base URL '%s'", c.OpenAIBaseURL))
		}
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

// AdviceEnabled reports whether the selected provider has credentials.
func (c *Config) AdviceEnabled() bool {
	switch c.AdviceProvider {
	case ProviderGemini:
		return c.GeminiAPIKey != ""
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	}
	return false
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "waterflow")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
