package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/joho/godotenv"
)

const (
	DefaultEndpoint       = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod    = 600 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// AppConfig holds all configuration for the application.
// It is built once at startup and never mutated afterwards.
type AppConfig struct {
	PracticumToken     string
	TelegramToken      string
	TelegramChatID     int64
	Endpoint           string
	RetryPeriod        time.Duration
	RequestTimeout     time.Duration
	LogLevel           string
	Environment        string
	LogFile            string // optional, logs are mirrored there when set
	DatabaseURL        string // optional, enables the notification journal
	MetricsAddr        string // optional, enables /healthz and /metrics
	BotCommandsEnabled bool
}

// Load reads configuration from environment variables and .env file (if present).
// A missing or malformed credential yields a *homework.StartupError.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from the given lookup function.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.PracticumToken = getenv("PRACTICUM_TOKEN")
	cfg.TelegramToken = getenv("TELEGRAM_TOKEN")
	chatIDStr := getenv("TELEGRAM_CHAT_ID")

	var missing []string
	if cfg.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if chatIDStr == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return nil, &homework.StartupError{Missing: missing}
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, &homework.StartupError{Cause: fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)}
	}
	cfg.TelegramChatID = chatID

	cfg.Endpoint = getenv("PRACTICUM_ENDPOINT")
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	cfg.RetryPeriod, err = parseDuration(getenv("RETRY_PERIOD"), DefaultRetryPeriod)
	if err != nil {
		return nil, fmt.Errorf("invalid RETRY_PERIOD: %w", err)
	}
	cfg.RequestTimeout, err = parseDuration(getenv("REQUEST_TIMEOUT"), DefaultRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	cfg.Environment = strings.ToLower(getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.LogFile = getenv("LOG_FILE")
	cfg.DatabaseURL = getenv("DATABASE_URL")
	cfg.MetricsAddr = getenv("METRICS_ADDR")

	if v := getenv("BOT_COMMANDS_ENABLED"); v != "" {
		cfg.BotCommandsEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BOT_COMMANDS_ENABLED: %w", err)
		}
	}

	return cfg, nil
}

// parseDuration accepts Go durations ("10m") and bare seconds ("600").
func parseDuration(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("must be positive, got %d", secs)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
