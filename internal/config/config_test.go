package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
schedule: "0 9 * * *"
store_path: /tmp/jobbot.db
providers:
  - name: remoteok
    enabled: true
  - name: arbeitnow
    enabled: false
retry:
  max_retries: 3
  base_delay: 2s
delivery:
  max_per_run: 5
  send_delay: 250ms
notification:
  type: log
recipients:
  - id: "chat-42"
    keywords:
      - data engineer
    location: Remote
    salary_min: 150000
    levels:
      - senior
    max_age_days: 7
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Schedule != "0 9 * * *" {
		t.Errorf("Schedule = %q", cfg.Schedule)
	}
	if cfg.StorePath != "/tmp/jobbot.db" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if len(cfg.Providers) != 2 || !cfg.Providers[0].Enabled || cfg.Providers[1].Enabled {
		t.Errorf("Providers = %+v", cfg.Providers)
	}
	if cfg.Retry.MaxRetries != 3 || cfg.Retry.BaseDelay != 2*time.Second {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if cfg.Delivery.MaxPerRun != 5 || cfg.Delivery.SendDelay != 250*time.Millisecond {
		t.Errorf("Delivery = %+v", cfg.Delivery)
	}
	if len(cfg.Recipients) != 1 {
		t.Fatalf("Recipients = %+v", cfg.Recipients)
	}

	p := cfg.Recipients[0].Profile()
	if len(p.Keywords) != 1 || p.Keywords[0] != "data engineer" {
		t.Errorf("profile keywords = %v", p.Keywords)
	}
	if p.SalaryMin != 150000 || p.Location != "Remote" || p.MaxAgeDays != 7 {
		t.Errorf("profile = %+v", p)
	}
	if len(p.Levels) != 1 || string(p.Levels[0]) != "senior" {
		t.Errorf("profile levels = %v", p.Levels)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: remoteok
    enabled: true
recipients:
  - id: "chat-1"
    keywords: [golang]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Schedule != "0 9 * * *" {
		t.Errorf("default Schedule = %q", cfg.Schedule)
	}
	if cfg.TaskName != "daily_search" {
		t.Errorf("default TaskName = %q", cfg.TaskName)
	}
	if cfg.StorePath != "jobbot.db" {
		t.Errorf("default StorePath = %q", cfg.StorePath)
	}
	if cfg.Retry.MaxRetries != 2 || cfg.Retry.BaseDelay != 5*time.Second {
		t.Errorf("default Retry = %+v", cfg.Retry)
	}
	if cfg.RateLimit.MinDelay != 2*time.Second {
		t.Errorf("default RateLimit = %+v", cfg.RateLimit)
	}
	if cfg.Delivery.MaxPerRun != 10 || cfg.Delivery.SendDelay != 500*time.Millisecond {
		t.Errorf("default Delivery = %+v", cfg.Delivery)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_RAPIDAPI_KEY", "secret-key")
	path := writeConfig(t, `
providers:
  - name: jsearch
    enabled: true
    api_key: ${TEST_RAPIDAPI_KEY}
recipients:
  - id: "chat-1"
    keywords: [golang]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Providers[0].APIKey != "secret-key" {
		t.Errorf("APIKey = %q, want env expansion", cfg.Providers[0].APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "providers: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_InvalidSchedule(t *testing.T) {
	path := writeConfig(t, `
schedule: "not a cron spec"
providers:
  - name: remoteok
    enabled: true
recipients:
  - id: "chat-1"
    keywords: [golang]
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for bad schedule")
	}
}

func TestLoad_NoEnabledProviders(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: remoteok
    enabled: false
recipients:
  - id: "chat-1"
    keywords: [golang]
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error when no provider is enabled")
	}
}

func TestLoad_JSearchRequiresAPIKey(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: jsearch
    enabled: true
recipients:
  - id: "chat-1"
    keywords: [golang]
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for jsearch without api_key")
	}
}

func TestLoad_RecipientNeedsKeywords(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: remoteok
    enabled: true
recipients:
  - id: "chat-1"
    keywords: []
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for recipient without keywords")
	}
}

func TestLoad_TelegramRequiresToken(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: remoteok
    enabled: true
notification:
  type: telegram
recipients:
  - id: "chat-1"
    keywords: [golang]
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for telegram without bot_token")
	}
}
