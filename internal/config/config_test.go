package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.Goal != 50 {
		t.Errorf("Goal = %d, want 50", cfg.Goal)
	}
	if cfg.StorageKey != "attendanceState-v2" {
		t.Errorf("StorageKey = %q", cfg.StorageKey)
	}
	if cfg.GreetingTTL != 4*time.Second || cfg.CelebrationTTL != 6*time.Second {
		t.Errorf("TTLs = %s / %s", cfg.GreetingTTL, cfg.CelebrationTTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.AdminPasswordHash != "" {
		t.Errorf("admin enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHECKIN_GOAL", "3")
	t.Setenv("GREETING_TTL", "1500ms")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_PATH", ":memory:")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Goal != 3 || cfg.GreetingTTL != 1500*time.Millisecond || cfg.LogLevel != slog.LevelDebug || cfg.DBPath != ":memory:" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{name: "zero goal", key: "CHECKIN_GOAL", val: "0", want: "CHECKIN_GOAL"},
		{name: "negative goal", key: "CHECKIN_GOAL", val: "-1", want: "CHECKIN_GOAL"},
		{name: "non-numeric goal", key: "CHECKIN_GOAL", val: "fifty", want: "parsing environment"},
		{name: "zero ttl", key: "CELEBRATION_TTL", val: "0s", want: "CELEBRATION_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
