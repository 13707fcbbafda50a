package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: courtside
  environment: test
  port: 8080
database:
  driver: sqlite
  filename: ./data/test.db
redis:
  addr: localhost:6379
  cache_ttl_seconds: 30
reminders:
  enabled: true
  hours_before: 12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Name != "courtside" {
		t.Errorf("app name = %q", cfg.App.Name)
	}
	if cfg.App.Port != 8080 {
		t.Errorf("port = %d", cfg.App.Port)
	}
	if cfg.Redis.CacheTTLDuration() != 30*time.Second {
		t.Errorf("cache ttl = %v, want 30s", cfg.Redis.CacheTTLDuration())
	}
	if cfg.Reminders.HoursBefore != 12 {
		t.Errorf("hours before = %d, want 12", cfg.Reminders.HoursBefore)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: courtside
  port: 8080
database:
  driver: sqlite
  filename: ./data/test.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Reminders.HoursBefore != 24 {
		t.Errorf("hours before = %d, want default 24", cfg.Reminders.HoursBefore)
	}
	if cfg.Redis.CacheTTL != 60 {
		t.Errorf("cache ttl = %d, want default 60", cfg.Redis.CacheTTL)
	}
}

func TestLoadRedisPasswordFromEnv(t *testing.T) {
	t.Setenv("REDIS_PASSWORD", "hunter2")

	path := writeConfig(t, `
app:
  name: courtside
  port: 8080
database:
  driver: sqlite
  filename: ./data/test.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Redis.Password != "hunter2" {
		t.Errorf("redis password = %q", cfg.Redis.Password)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing name",
			"app:\n  port: 8080\ndatabase:\n  driver: sqlite\n  filename: ./x.db\n",
			"app name is required",
		},
		{
			"missing port",
			"app:\n  name: courtside\ndatabase:\n  driver: sqlite\n  filename: ./x.db\n",
			"app port is required",
		},
		{
			"unsupported driver",
			"app:\n  name: courtside\n  port: 8080\ndatabase:\n  driver: postgres\n  filename: ./x.db\n",
			"unsupported database driver",
		},
		{
			"missing filename",
			"app:\n  name: courtside\n  port: 8080\ndatabase:\n  driver: sqlite\n",
			"database filename is required",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want to contain %q", err, tc.wantErr)
			}
		})
	}
}
