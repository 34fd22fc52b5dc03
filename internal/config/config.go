package config

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/kakarot0105/JobBot/internal/model"
)

// Config is the root configuration for the JobBot daemon.
type Config struct {
	Schedule     string // cron spec for the daily run
	TaskName     string // run-marker key
	StorePath    string
	Providers    []ProviderConfig
	Retry        RetryConfig
	RateLimit    RateLimitConfig
	Delivery     DeliveryConfig
	Notification NotificationConfig
	Recipients   []RecipientConfig
}

// ProviderConfig describes one job source. List order is registration
// order, which fixes both the merge order and the ranking tie-break.
type ProviderConfig struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"` // required by keyed providers (jsearch)
}

// RetryConfig controls the transient-failure retry decorator.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// RateLimitConfig controls the per-provider minimum request gap.
type RateLimitConfig struct {
	MinDelay time.Duration
}

// DeliveryConfig bounds notification volume per run.
type DeliveryConfig struct {
	MaxPerRun int           // fresh deliveries per recipient per run
	SendDelay time.Duration // pause between successive sends
}

// NotificationConfig selects and configures the notifier.
type NotificationConfig struct {
	Type     string `yaml:"type"`      // "log" or "telegram"
	BotToken string `yaml:"bot_token"` // required if type is "telegram"
}

// RecipientConfig seeds one recipient's preference profile. Profiles are
// written to the store on startup and read back per run.
type RecipientConfig struct {
	ID          string   `yaml:"id"` // telegram chat id (or any stable id for log mode)
	Keywords    []string `yaml:"keywords"`
	Location    string   `yaml:"location"`
	SalaryMin   int      `yaml:"salary_min"`
	Levels      []string `yaml:"levels"`
	JobTypes    []string `yaml:"job_types"`
	MaxAgeDays  int      `yaml:"max_age_days"`
	StrictDates bool     `yaml:"strict_dates"`
}

// Profile converts the seed into the model type.
func (r RecipientConfig) Profile() model.PreferenceProfile {
	p := model.PreferenceProfile{
		Keywords:    r.Keywords,
		Location:    r.Location,
		SalaryMin:   r.SalaryMin,
		MaxAgeDays:  r.MaxAgeDays,
		StrictDates: r.StrictDates,
	}
	for _, l := range r.Levels {
		p.Levels = append(p.Levels, model.Level(l))
	}
	for _, jt := range r.JobTypes {
		p.JobTypes = append(p.JobTypes, model.JobType(jt))
	}
	return p
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	Schedule     string             `yaml:"schedule"`
	TaskName     string             `yaml:"task_name"`
	StorePath    string             `yaml:"store_path"`
	Providers    []ProviderConfig   `yaml:"providers"`
	Retry        rawRetryConfig     `yaml:"retry"`
	RateLimit    rawRateLimitConfig `yaml:"rate_limit"`
	Delivery     rawDeliveryConfig  `yaml:"delivery"`
	Notification NotificationConfig `yaml:"notification"`
	Recipients   []RecipientConfig  `yaml:"recipients"`
}

type rawRetryConfig struct {
	MaxRetries int    `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

type rawRateLimitConfig struct {
	MinDelay string `yaml:"min_delay"`
}

type rawDeliveryConfig struct {
	MaxPerRun int    `yaml:"max_per_run"`
	SendDelay string `yaml:"send_delay"`
}

// Load reads and parses the YAML config file at path, expands environment
// variables, applies defaults, validates, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables (tokens, API keys).
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		Schedule:     raw.Schedule,
		TaskName:     raw.TaskName,
		StorePath:    raw.StorePath,
		Providers:    raw.Providers,
		Notification: raw.Notification,
		Recipients:   raw.Recipients,
	}

	if cfg.Schedule == "" {
		cfg.Schedule = "0 9 * * *" // daily at 09:00
	}
	if cfg.TaskName == "" {
		cfg.TaskName = "daily_search"
	}
	if cfg.StorePath == "" {
		cfg.StorePath = "jobbot.db"
	}

	cfg.Retry.MaxRetries = raw.Retry.MaxRetries
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = 2
	}
	cfg.Retry.BaseDelay = 5 * time.Second
	if raw.Retry.BaseDelay != "" {
		cfg.Retry.BaseDelay, err = time.ParseDuration(raw.Retry.BaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse retry.base_delay %q: %w", raw.Retry.BaseDelay, err)
		}
	}

	cfg.RateLimit.MinDelay = 2 * time.Second
	if raw.RateLimit.MinDelay != "" {
		cfg.RateLimit.MinDelay, err = time.ParseDuration(raw.RateLimit.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.min_delay %q: %w", raw.RateLimit.MinDelay, err)
		}
	}

	cfg.Delivery.MaxPerRun = raw.Delivery.MaxPerRun
	if cfg.Delivery.MaxPerRun == 0 {
		cfg.Delivery.MaxPerRun = 10
	}
	cfg.Delivery.SendDelay = 500 * time.Millisecond
	if raw.Delivery.SendDelay != "" {
		cfg.Delivery.SendDelay, err = time.ParseDuration(raw.Delivery.SendDelay)
		if err != nil {
			return nil, fmt.Errorf("parse delivery.send_delay %q: %w", raw.Delivery.SendDelay, err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}

	enabled := 0
	for _, p := range cfg.Providers {
		if !p.Enabled {
			continue
		}
		enabled++
		if p.Name == "jsearch" && p.APIKey == "" {
			return fmt.Errorf("providers[%s].api_key is required (set RAPIDAPI_KEY)", p.Name)
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one provider must be enabled")
	}

	if len(cfg.Recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	for _, r := range cfg.Recipients {
		if r.ID == "" {
			return fmt.Errorf("recipient id must not be empty")
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("recipient %s: keywords must not be empty", r.ID)
		}
	}

	if cfg.Delivery.MaxPerRun < 1 {
		return fmt.Errorf("delivery.max_per_run must be positive, got %d", cfg.Delivery.MaxPerRun)
	}

	if cfg.Notification.Type == "telegram" && cfg.Notification.BotToken == "" {
		return fmt.Errorf("notification.bot_token is required when type is \"telegram\"")
	}

	return nil
}
