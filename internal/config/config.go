package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Gemini    Gemini    `mapstructure:"gemini"`
	Images    Images    `mapstructure:"images"`
	Generator Generator `mapstructure:"generator"`
	Scheduler Scheduler `mapstructure:"scheduler"`
	Store     Store     `mapstructure:"store"`
}

// Gemini holds the text-generation provider configuration.
type Gemini struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// Images holds the image-provider chain configuration.
type Images struct {
	Provider     string  `mapstructure:"provider"` // freepik | pollinations | gemini | static
	PublicDir    string  `mapstructure:"public_dir"`
	Freepik      Freepik `mapstructure:"freepik"`
	PollTimeout  string  `mapstructure:"poll_timeout"`
	PollInterval string  `mapstructure:"poll_interval"`
	PollAttempts int     `mapstructure:"poll_attempts"`
}

// Freepik holds the remote image API configuration.
type Freepik struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// Generator holds the retry policy for text generation attempts.
type Generator struct {
	MaxRetries     int    `mapstructure:"max_retries"`
	RetryBaseDelay string `mapstructure:"retry_base_delay"`
	AttemptTimeout string `mapstructure:"attempt_timeout"`
}

// Scheduler holds the daily generation schedule configuration.
type Scheduler struct {
	DailyAt      string `mapstructure:"daily_at"` // "HH:MM" wall-clock time
	Timezone     string `mapstructure:"timezone"`
	BacklogDelay string `mapstructure:"backlog_delay"`
}

// Store holds the SQLite post store configuration.
type Store struct {
	Path string `mapstructure:"path"`
}

var globalConfig *Config

// Load loads configuration from a .env file, an optional YAML config file,
// environment variables and defaults. Environment variables win over the
// config file, which wins over defaults.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".blogsmith")
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

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
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

func setDefaults() {
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.timeout", "60s")

	viper.SetDefault("images.provider", "static")
	viper.SetDefault("images.public_dir", "public")
	viper.SetDefault("images.freepik.base_url", "https://api.freepik.com/v1/ai/mystic")
	viper.SetDefault("images.poll_interval", "3s")
	viper.SetDefault("images.poll_attempts", 30)
	viper.SetDefault("images.poll_timeout", "30s")

	viper.SetDefault("generator.max_retries", 3)
	viper.SetDefault("generator.retry_base_delay", "1s")
	viper.SetDefault("generator.attempt_timeout", "120s")

	viper.SetDefault("scheduler.daily_at", "09:00")
	viper.SetDefault("scheduler.timezone", "Asia/Kolkata")
	viper.SetDefault("scheduler.backlog_delay", "3s")

	viper.SetDefault("store.path", ".blogsmith/blog.db")
}

// bindEnvironmentVariables sets up flexible environment variable binding.
func bindEnvironmentVariables() {
	bindEnvKeys("gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("images.freepik.api_key", []string{
		"FREEPIK_API_KEY",
	})

	bindEnvKeys("images.provider", []string{
		"IMAGE_PROVIDER",
		"BLOGSMITH_IMAGE_PROVIDER",
	})

	bindEnvKeys("images.public_dir", []string{
		"FRONTEND_PUBLIC_PATH",
		"PUBLIC_IMAGE_DIR",
	})

	bindEnvKeys("scheduler.timezone", []string{
		"SCHEDULER_TIMEZONE",
		"TZ_SCHEDULE",
	})

	bindEnvKeys("store.path", []string{
		"BLOG_DB_PATH",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key.
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig expands paths and validates durations.
func postProcessConfig(config *Config) error {
	if config.Images.PublicDir != "" {
		config.Images.PublicDir = expandPath(config.Images.PublicDir)
	}
	if config.Store.Path != "" {
		config.Store.Path = expandPath(config.Store.Path)
	}

	durations := map[string]string{
		"gemini.timeout":             config.Gemini.Timeout,
		"images.poll_interval":       config.Images.PollInterval,
		"images.poll_timeout":        config.Images.PollTimeout,
		"generator.retry_base_delay": config.Generator.RetryBaseDelay,
		"generator.attempt_timeout":  config.Generator.AttemptTimeout,
		"scheduler.backlog_delay":    config.Scheduler.BacklogDelay,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// expandPath expands ~ and environment variables in paths.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures required configuration is present.
func validateConfig(config *Config) error {
	var errs []string

	switch config.Images.Provider {
	case "freepik":
		if config.Images.Freepik.APIKey == "" {
			errs = append(errs, "Freepik image provider requires an API key. Set FREEPIK_API_KEY or images.freepik.api_key")
		}
	case "pollinations", "gemini", "static":
		// No extra keys needed; gemini reuses the text-generation key.
	default:
		errs = append(errs, fmt.Sprintf("Unknown image provider: %s. Supported: freepik, pollinations, gemini, static", config.Images.Provider))
	}

	if config.Scheduler.DailyAt != "" {
		if _, err := time.Parse("15:04", config.Scheduler.DailyAt); err != nil {
			errs = append(errs, fmt.Sprintf("scheduler.daily_at must be HH:MM, got %q", config.Scheduler.DailyAt))
		}
	}

	if config.Scheduler.Timezone != "" {
		if _, err := time.LoadLocation(config.Scheduler.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("scheduler.timezone is not a valid IANA zone: %q", config.Scheduler.Timezone))
		}
	}

	if config.Generator.MaxRetries < 1 {
		errs = append(errs, "generator.max_retries must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// Convenience getters for commonly used configuration values.
func GetGemini() Gemini       { return Get().Gemini }
func GetImages() Images       { return Get().Images }
func GetGenerator() Generator { return Get().Generator }
func GetScheduler() Scheduler { return Get().Scheduler }
func GetStore() Store         { return Get().Store }

func GetGeminiAPIKey() string  { return Get().Gemini.APIKey }
func GetGeminiModel() string   { return Get().Gemini.Model }
func GetImageProvider() string { return Get().Images.Provider }

// Duration returns the parsed duration for a config value, falling back to
// def when the value is empty. postProcessConfig already rejected malformed
// values at load time.
func Duration(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}

// Reset clears the global configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viper.Reset()
}
