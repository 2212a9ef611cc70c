package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7433 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7433)
	}
	if cfg.Engine.TickInterval != "1m" {
		t.Errorf("Engine.TickInterval = %q, want %q", cfg.Engine.TickInterval, "1m")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestEngineInterval(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"1m", time.Minute},
		{"30s", 30 * time.Second},
		{"", time.Minute},        // default
		{"not-a-d", time.Minute}, // malformed falls back
		{"-5s", time.Minute},     // non-positive falls back
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := EngineConfig{TickInterval: tt.input}.Interval()
			if got != tt.want {
				t.Errorf("Interval(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("QUESTFORGE_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9000
	cfg.Telemetry.Prometheus = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(Home(), "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", loaded.API.Port)
	}
	if !loaded.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus not preserved")
	}
}
