package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	AI       AI       `mapstructure:"ai"`
	Cache    Cache    `mapstructure:"cache"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Server   Server   `mapstructure:"server"`
	Logging  Logging  `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	ConfigFile string `mapstructure:"config_file"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// Cache holds research cache configuration
type Cache struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Pipeline holds research retry and script rendering configuration
type Pipeline struct {
	MaxAttempts              int           `mapstructure:"max_attempts"`
	RetryDelay               time.Duration `mapstructure:"retry_delay"`
	ConversationalOnCacheHit bool          `mapstructure:"conversational_on_cache_hit"`
}

// Server holds HTTP server configuration
type Server struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	MaxConcurrent   int           `mapstructure:"max_concurrent"` // 0 disables throttling
	CORS            CORS          `mapstructure:"cors"`
}

// CORS holds cross-origin configuration for the HTTP server
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".podcaster")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.App.ConfigFile = viper.ConfigFileUsed()

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)

	viper.SetDefault("ai.gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("ai.gemini.max_tokens", 2000)
	viper.SetDefault("ai.gemini.temperature", 0.7)

	viper.SetDefault("cache.ttl", "1h")

	viper.SetDefault("pipeline.max_attempts", 3)
	viper.SetDefault("pipeline.retry_delay", "500ms")
	viper.SetDefault("pipeline.conversational_on_cache_hit", false)

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "180s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.request_timeout", "170s")
	viper.SetDefault("server.max_concurrent", 0)
	viper.SetDefault("server.cors.enabled", true)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("server.port", []string{
		"PORT",
		"PODCASTER_PORT",
		"PYTHON_SERVICE_PORT",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"PODCASTER_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig checks value ranges. The Gemini key is optional here; calls
// without it fail individually.
func validateConfig(config *Config) error {
	var errors []string

	if config.AI.Gemini.MaxTokens <= 0 {
		errors = append(errors, "ai.gemini.max_tokens must be positive")
	}
	if config.Cache.TTL < 0 {
		errors = append(errors, "cache.ttl must not be negative")
	}
	if config.Pipeline.MaxAttempts < 1 {
		errors = append(errors, "pipeline.max_attempts must be at least 1")
	}
	if config.Pipeline.RetryDelay < 0 {
		errors = append(errors, "pipeline.retry_delay must not be negative")
	}
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port %d is out of range", config.Server.Port))
	}
	if config.Server.MaxConcurrent < 0 {
		errors = append(errors, "server.max_concurrent must not be negative")
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("Unknown logging level: %s. Supported: debug, info, warn, error", config.Logging.Level))
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("Unknown logging format: %s. Supported: json, text", config.Logging.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Address returns the host:port the server listens on.
func (s Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Convenience getters for commonly used configuration values
func GetAI() AI             { return Get().AI }
func GetCache() Cache       { return Get().Cache }
func GetPipeline() Pipeline { return Get().Pipeline }
func GetServer() Server     { return Get().Server }
func GetLogging() Logging   { return Get().Logging }

func GetGeminiAPIKey() string { return Get().AI.Gemini.APIKey }
func GetGeminiModel() string  { return Get().AI.Gemini.Model }
func IsDebugMode() bool       { return Get().App.Debug }

// HasValidGeminiKey returns true if a usable Gemini key is configured
func HasValidGeminiKey() bool {
	return isValidAPIKey(GetGeminiAPIKey())
}

// isValidAPIKey checks if an API key is valid (not empty and not a placeholder)
func isValidAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}

	placeholders := []string{
		"your-api-key", "your-gemini-key", "your-google-api-key",
		"YOUR_API_KEY", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}

	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			return false
		}
	}

	return true
}

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
