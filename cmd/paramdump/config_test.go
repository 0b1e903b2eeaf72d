package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paramdump.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
describe_limit = 128
hook_events = true

[capture]
namespace = "renderer"
provider = "redis"
record_codec = "protobuf"
ttl = "15m"

[redis]
addr = "redis.internal:6379"
db = 2
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.DescribeLimit != 128 || !cfg.HookEvents {
		t.Fatalf("unexpected top-level settings: %+v", cfg)
	}
	if cfg.Namespace != "renderer" || cfg.Provider != "redis" || cfg.RecordCodec != "protobuf" {
		t.Fatalf("unexpected capture settings: %+v", cfg)
	}
	if cfg.TTL != 15*time.Minute {
		t.Fatalf("unexpected ttl: %v", cfg.TTL)
	}
	if cfg.RedisAddr != "redis.internal:6379" || cfg.RedisDB != 2 {
		t.Fatalf("unexpected redis settings: %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.LogFormat != "console" || cfg.MaxMessageSize != 0 {
		t.Fatalf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Fatalf("empty path should return defaults")
	}
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string]string{
		"provider":    "[capture]\nprovider = \"memcached\"\n",
		"codec":       "[capture]\nrecord_codec = \"xml\"\n",
		"ttl":         "[capture]\nttl = \"soon\"\n",
		"namespace":   "[capture]\nnamespace = \"  \"\n",
		"level":       "log_level = \"loud\"\n",
		"unknown key": "colour = \"blue\"\n",
		"syntax":      "log_level = \n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, content))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), "load paramdump config") {
				t.Fatalf("error should name the config: %v", err)
			}
		})
	}
}
