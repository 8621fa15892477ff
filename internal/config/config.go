package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string `mapstructure:"-"`   // Telegram API token loaded from environment
	DB               DB     `mapstructure:"database"`
	Trivia           Trivia `mapstructure:"trivia"`
	Images           Images `mapstructure:"images"`
	HTTP             HTTP   `mapstructure:"http"`
	Game             Game   `mapstructure:"game"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Trivia configures the question source.
type Trivia struct {
	BaseURL string `mapstructure:"base_url"`
}

// Images configures the photo search source.
type Images struct {
	BaseURL   string `mapstructure:"base_url"`
	AccessKey string `mapstructure:"-"` // API credential loaded from environment
}

// HTTP configures outgoing requests to the sources.
type HTTP struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Game holds gameplay defaults.
type Game struct {
	DefaultQuestions   int    `mapstructure:"default_questions"`    // question count of a new player
	AnswerOrder        string `mapstructure:"answer_order"`         // "per_question" or "per_access"
	StrictResponseCode bool   `mapstructure:"strict_response_code"` // fail a load on a non-zero trivia response_code
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Enabled reports whether a database is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Values from .env never override variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("trivia.base_url", "https://opentdb.com/api.php")
	v.SetDefault("images.base_url", "https://api.unsplash.com/search/photos")
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("game.default_questions", 10)
	v.SetDefault("game.answer_order", "per_question")
	v.SetDefault("game.strict_response_code", true)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("images_access_key", "UNSPLASH_ACCESS_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	// Without a database the bot runs but does not record results.
	cfg.DB.URL = v.GetString("database_url")
	cfg.Images.AccessKey = v.GetString("images_access_key")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Game.DefaultQuestions < 5 || c.Game.DefaultQuestions > 30 {
		return fmt.Errorf("%w: game.default_questions must be between 5 and 30, got %d", ErrInvalidConfig, c.Game.DefaultQuestions)
	}

	switch c.Game.AnswerOrder {
	case "per_question", "per_access":
	default:
		return fmt.Errorf("%w: unknown game.answer_order %q", ErrInvalidConfig, c.Game.AnswerOrder)
	}

	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("%w: http.timeout must be positive", ErrInvalidConfig)
	}

	return nil
}
