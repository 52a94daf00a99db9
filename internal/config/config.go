// Package config loads and validates application configuration from
// environment variables, config.yaml, and the prompts file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"
)

// ErrConfiguration marks any failure that should abort startup.
var ErrConfiguration = errors.New("configuration error")

// Config holds the immutable application settings. It is constructed once
// by LoadConfig and passed by reference into every component; nothing
// mutates it after startup except BotInfo, which is filled in before
// handlers run.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	AI        AIConfig        `mapstructure:"ai"`
	Geocode   GeocodeConfig   `mapstructure:"geocode"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Commands  CommandsConfig  `mapstructure:"commands"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and the admin allow-list.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// AdminUserIDs is the raw comma-separated allow-list as configured
	// (ADMIN_USER_IDS env or telegram.admin_user_ids); AdminIDs is the
	// parsed form used at runtime.
	AdminUserIDs string  `mapstructure:"admin_user_ids"`
	AdminIDs     []int64 `mapstructure:"-" validate:"dive,gt=0"`

	// BotInfo is populated from GetMe after the bot client is created.
	BotInfo *models.User `mapstructure:"-"`
}

// IsAdmin reports whether userID is in the admin allow-list.
func (t TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range t.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AIConfig holds LLM gateway settings.
type AIConfig struct {
	Backend      string        `mapstructure:"backend"        validate:"oneof=openrouter gemini"`
	Token        string        `mapstructure:"token"          validate:"required_if=Backend openrouter"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key" validate:"required_if=Backend gemini"`
	BaseURL      string        `mapstructure:"base_url"       validate:"required,url"`
	Model        string        `mapstructure:"model"          validate:"required"`
	Instruction  string        `mapstructure:"instruction"    validate:"required"`
	PromptsFile  string        `mapstructure:"prompts_file"`
	Timeout      time.Duration `mapstructure:"timeout"        validate:"min=1s,max=10m"`
}

// GeocodeConfig holds reverse-geocoding settings.
type GeocodeConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"min=1s,max=1m"`
}

// DatabaseConfig holds the interaction log settings.
type DatabaseConfig struct {
	Path          string `mapstructure:"path"           validate:"required"`
	RetentionDays int    `mapstructure:"retention_days" validate:"min=1"`
}

// TaskConfig describes one scheduled task entry.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds user-facing reply texts.
type MessagesConfig struct {
	Welcome          string `mapstructure:"welcome"            validate:"required"`
	HealthOK         string `mapstructure:"health_ok"          validate:"required"`
	LocationNotFound string `mapstructure:"location_not_found" validate:"required"`
	GeneralError     string `mapstructure:"general_error"      validate:"required"`
	LocationButton   string `mapstructure:"location_button"    validate:"required"`
}

// CommandsConfig holds the command menu descriptions.
type CommandsConfig struct {
	Start  string `mapstructure:"start"  validate:"required"`
	Hello  string `mapstructure:"hello"  validate:"required"`
	Health string `mapstructure:"health" validate:"required"`
}

// LoadConfig reads configuration from defaults, the given YAML file (a
// missing file is fine), and environment variables, resolves the system
// prompt, and validates the result. Any failure aborts startup with
// ErrConfiguration before any network connection is attempted.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Well-known environment names take precedence over file values.
	bindings := map[string]string{
		"ai.token":                "OPENROUTER_API_KEY",
		"ai.gemini_api_key":       "GEMINI_API_KEY",
		"ai.model":                "LANGUAGE_MODEL",
		"ai.instruction":          "SYSTEM_PROMPT",
		"telegram.token":          "TELEGRAM_BOT_TOKEN",
		"telegram.admin_user_ids": "ADMIN_USER_IDS",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if cfg.AI.Instruction == "" {
		instruction, err := loadPromptsFile(cfg.AI.PromptsFile)
		if err != nil {
			return nil, err
		}
		cfg.AI.Instruction = instruction
	}

	adminIDs, err := parseAdminIDs(cfg.Telegram.AdminUserIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid admin user id list: %v", ErrConfiguration, err)
	}
	cfg.Telegram.AdminIDs = adminIDs

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	slog.Info("Configuration loaded",
		"ai_backend", cfg.AI.Backend,
		"ai_model", cfg.AI.Model,
		"instruction_len", len(cfg.AI.Instruction),
		"admin_ids", len(cfg.Telegram.AdminIDs))
	slog.Debug("Resolved system prompt", "instruction", cfg.AI.Instruction)

	return cfg, nil
}

// loadPromptsFile reads the system prompt from the prompts YAML file. An
// empty system prompt is fatal at startup: the bot cannot answer anything
// without one.
func loadPromptsFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: system prompt not set and no prompts file configured", ErrConfiguration)
	}

	pv := viper.New()
	pv.SetConfigFile(path)
	pv.SetConfigType("yaml")
	if err := pv.ReadInConfig(); err != nil {
		return "", fmt.Errorf("%w: failed to read prompts file %q: %v", ErrConfiguration, path, err)
	}

	instruction := pv.GetString("system_prompt")
	if instruction == "" {
		return "", fmt.Errorf("%w: prompts file %q has no system_prompt", ErrConfiguration, path)
	}
	return instruction, nil
}

func parseAdminIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	v.SetDefault("ai.backend", "openrouter")
	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.prompts_file", "prompts.yaml")
	v.SetDefault("ai.timeout", 2*time.Minute)

	v.SetDefault("geocode.base_url", "https://api.bigdatacloud.net")
	v.SetDefault("geocode.timeout", 10*time.Second)

	v.SetDefault("database.path", "storage.db")
	v.SetDefault("database.retention_days", 90)

	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 0 4 * * *")
	v.SetDefault("scheduler.tasks.log_retention.enabled", true)
	v.SetDefault("scheduler.tasks.log_retention.schedule", "0 30 4 * * *")

	v.SetDefault("messages.welcome",
		"✈️ Welcome to the History Around Me Bot! 🌎 \n\n I'm your professional travel guide! Click the button below to send your current location.")
	v.SetDefault("messages.health_ok", "Bot is live and running!")
	v.SetDefault("messages.location_not_found", "Location details not found.")
	v.SetDefault("messages.general_error", "Sorry, I couldn't generate a response. Please try again later.")
	v.SetDefault("messages.location_button", "Send Location")

	v.SetDefault("commands.start", "Start interacting with the bot")
	v.SetDefault("commands.hello", "Say hello and show the location button")
	v.SetDefault("commands.health", "Check that the bot is alive (admin only)")
}
