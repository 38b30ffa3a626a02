package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/nPaBwaYT/desblock/codec"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := &Config{KeyFormat: "text", Padding: "pkcs7", Workers: 1}
	want.Logging.LogLevel = "warn"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("key: secret\npadding: zeros\nworkers: 2\ncache:\n  ttl: 5m\nlogging:\n  log_level: info\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("DESBLOCK_LOGGING_LOG_LEVEL", "debug")
	t.Setenv("DESBLOCK_CHECK_PARITY", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", 1, "")
	flags.String("padding", "pkcs7", "")
	if err := flags.Parse([]string{"--workers=8"}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	cfg, err := LoadConfig(dir, flags)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Key != "secret" {
		t.Errorf("Key = %q, want from file", cfg.Key)
	}
	if cfg.Padding != "zeros" {
		t.Errorf("Padding = %q, unchanged flag should not override the file", cfg.Padding)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8 from flag", cfg.Workers)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Logging.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug from env", cfg.Logging.LogLevel)
	}
	if !cfg.CheckParity {
		t.Errorf("CheckParity = false, want true from env")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(t.TempDir(), nil); err == nil {
		t.Errorf("expected an error for a directory without config.yaml")
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{KeyFormat: "text", Padding: "pkcs7", Workers: 1}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"hex key", func(c *Config) { c.KeyFormat = "hex" }, false},
		{"bad key format", func(c *Config) { c.KeyFormat = "base64" }, true},
		{"bad padding", func(c *Config) { c.Padding = "ansi" }, true},
		{"zeros padding", func(c *Config) { c.Padding = "zeros" }, false},
		{"upper case padding", func(c *Config) { c.Padding = "PKCS7" }, false},
		{"no workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.LogLevel = "debug"
	cfg.Logging.LogFilePath = filepath.Join(t.TempDir(), "desblock.log")

	log, closeLog, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Debug("hello")
	closeLog()

	data, err := os.ReadFile(cfg.Logging.LogFilePath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(data) == 0 {
		t.Errorf("nothing was logged")
	}

	// Closing releases the file: further writes go nowhere.
	log.Info("after close")
	after, err := os.ReadFile(cfg.Logging.LogFilePath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(after) != len(data) {
		t.Errorf("log grew from %d to %d bytes after cleanup", len(data), len(after))
	}

	stderrCfg := &Config{}
	stderrCfg.Logging.LogLevel = "info"
	stderrLog, closeStderr, err := NewLogger(stderrCfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	closeStderr()
	if stderrLog == nil {
		t.Fatalf("nil logger")
	}

	cfg.Logging.LogLevel = "loud"
	if _, _, err := NewLogger(cfg); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}

// Every padding name accepted by the config must resolve to a scheme, and
// every name the config rejects must be unknown to the codec.
func TestConfig_ValidatePaddingMatchesCodec(t *testing.T) {
	for _, name := range []string{"pkcs7", "PKCS7", "zeros", "zero", "ansi", "iso10126"} {
		cfg := &Config{KeyFormat: "text", Padding: name, Workers: 1}
		_, codecErr := codec.PaddingByName(name)
		if err := cfg.Validate(); (err == nil) != (codecErr == nil) {
			t.Errorf("padding %q: Validate() = %v, PaddingByName() = %v", name, err, codecErr)
		}
	}
}
