package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Data sources understood by the repository layer
const (
	DataSourceFile     = "file"
	DataSourcePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	DataSource       string
	TransactionsPath string
	ProfilePath      string
	DBConn           string

	LLMProvider    string
	LLMModel       string
	LLMTemperature float32
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OllamaURL      string
	DeepSeekAPIKey string
	GeminiAPIKey   string

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	CBRURL          string
	KeyRateInPrompt bool

	AmbientSchedule string
	AlertEmail      string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
}

// NewConfig loads configuration from the environment, reading a .env file first when present
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.2"), 32)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		DataSource:       getEnv("DATA_SOURCE", DataSourceFile),
		TransactionsPath: getEnv("TRANSACTIONS_PATH", "data/transactions.json"),
		ProfilePath:      getEnv("PROFILE_PATH", "data/user_profile.json"),
		DBConn:           getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finance sslmode=disable"),

		LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
		LLMModel:       getEnv("LLM_MODEL", ""),
		LLMTemperature: float32(temperature),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		DeepSeekAPIKey: getEnv("DEEPSEEK_API_KEY", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),

		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		CBRURL:          getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		KeyRateInPrompt: getEnvBool("KEY_RATE_IN_PROMPT", false),

		AmbientSchedule: getEnv("AMBIENT_SCHEDULE", "@every 1h"),
		AlertEmail:      getEnv("ALERT_EMAIL", ""),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and provider-specific settings
func (c *Config) Validate() error {
	switch c.DataSource {
	case DataSourceFile:
		if c.TransactionsPath == "" {
			return fmt.Errorf("TRANSACTIONS_PATH is required")
		}
	case DataSourcePostgres:
		if c.DBConn == "" {
			return fmt.Errorf("DB_CONN is required")
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q", c.DataSource)
	}

	switch c.LLMProvider {
	case "ollama":
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider openai")
		}
	case "deepseek":
		if c.DeepSeekAPIKey == "" {
			return fmt.Errorf("DEEPSEEK_API_KEY is required for provider deepseek")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider gemini")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// SMTPEnabled reports whether alert emails can be sent
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultVal
	}
	return b
}
