package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/pinboard/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Document != def.Document || cfg.Autosave.Backend != def.Autosave.Backend {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
document = "roadmap"
grid_snap = true

[autosave]
backend = "redis"
interval = "2m"

[autosave.redis]
addr = "redis.internal:6379"
db = 3

[server]
addr = ":9000"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document != "roadmap" {
		t.Errorf("document = %q", cfg.Document)
	}
	if !cfg.GridSnap {
		t.Error("grid_snap not applied")
	}
	if cfg.Autosave.Backend != "redis" {
		t.Errorf("backend = %q", cfg.Autosave.Backend)
	}
	if cfg.Autosave.Interval.Duration != 2*time.Minute {
		t.Errorf("interval = %v", cfg.Autosave.Interval.Duration)
	}
	if cfg.Autosave.Redis.Addr != "redis.internal:6379" || cfg.Autosave.Redis.DB != 3 {
		t.Errorf("redis = %+v", cfg.Autosave.Redis)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadPartialFileKeepsOtherDefaults(t *testing.T) {
	path := writeConfig(t, `document = "notes"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document != "notes" {
		t.Errorf("document = %q", cfg.Document)
	}
	if cfg.Autosave.Backend != "file" {
		t.Errorf("backend = %q, want default file", cfg.Autosave.Backend)
	}
	if cfg.Autosave.Interval.Duration != 30*time.Second {
		t.Errorf("interval = %v, want default 30s", cfg.Autosave.Interval.Duration)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"notToml", `{"json": true}`},
		{"badBackend", "[autosave]\nbackend = \"s3\""},
		{"badLevel", "[log]\nlevel = \"loud\""},
		{"badDuration", "[autosave]\ninterval = \"soon\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("bad config accepted")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %q, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestCacheDirExplicit(t *testing.T) {
	c := AutosaveConfig{Dir: "/tmp/somewhere"}
	dir, err := c.CacheDir()
	if err != nil || dir != "/tmp/somewhere" {
		t.Errorf("CacheDir = (%q, %v)", dir, err)
	}
}
