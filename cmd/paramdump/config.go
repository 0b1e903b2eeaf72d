package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds paramdump runtime settings.
type Config struct {
	LogLevel       string
	LogFormat      string
	MaxMessageSize int
	DescribeLimit  int
	LogValues      bool
	HookEvents     bool

	Namespace   string
	Provider    string
	RecordCodec string
	TTL         time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// paramdump config.toml key mapping to Config.
type fileConfig struct {
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
	MaxMessageSize int    `toml:"max_message_size"`
	DescribeLimit  int    `toml:"describe_limit"`
	LogValues      bool   `toml:"log_values"`
	HookEvents     bool   `toml:"hook_events"`

	Capture struct {
		Namespace   string `toml:"namespace"`
		Provider    string `toml:"provider"`
		RecordCodec string `toml:"record_codec"`
		TTL         string `toml:"ttl"`
	} `toml:"capture"`

	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
	} `toml:"redis"`
}

var (
	providers    = []string{"ristretto", "bigcache", "redis"}
	recordCodecs = []string{"msgpack", "json", "cbor", "protobuf"}
	logLevels    = []string{"debug", "info", "warn", "error"}
	logFormats   = []string{"console", "json"}
)

func defaultConfig() Config {
	return Config{
		LogLevel:    "warn",
		LogFormat:   "console",
		Namespace:   "paramdump",
		Provider:    "ristretto",
		RecordCodec: "msgpack",
		TTL:         time.Hour,
		RedisAddr:   "127.0.0.1:6379",
	}
}

// loadConfig overlays the TOML file at path on the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load paramdump config: %w", err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("load paramdump config: unknown key %q", undec[0].String())
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("log_format") {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(raw.LogFormat))
	}
	if meta.IsDefined("max_message_size") {
		cfg.MaxMessageSize = raw.MaxMessageSize
	}
	if meta.IsDefined("describe_limit") {
		cfg.DescribeLimit = raw.DescribeLimit
	}
	if meta.IsDefined("log_values") {
		cfg.LogValues = raw.LogValues
	}
	if meta.IsDefined("hook_events") {
		cfg.HookEvents = raw.HookEvents
	}
	if meta.IsDefined("capture", "namespace") {
		cfg.Namespace = strings.TrimSpace(raw.Capture.Namespace)
	}
	if meta.IsDefined("capture", "provider") {
		cfg.Provider = strings.ToLower(strings.TrimSpace(raw.Capture.Provider))
	}
	if meta.IsDefined("capture", "record_codec") {
		cfg.RecordCodec = strings.ToLower(strings.TrimSpace(raw.Capture.RecordCodec))
	}
	if meta.IsDefined("capture", "ttl") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Capture.TTL))
		if err != nil {
			return Config{}, fmt.Errorf("load paramdump config: capture.ttl: %w", err)
		}
		cfg.TTL = d
	}
	if meta.IsDefined("redis", "addr") {
		cfg.RedisAddr = strings.TrimSpace(raw.Redis.Addr)
	}
	if meta.IsDefined("redis", "password") {
		cfg.RedisPassword = raw.Redis.Password
	}
	if meta.IsDefined("redis", "db") {
		cfg.RedisDB = raw.Redis.DB
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load paramdump config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := oneOf("log_level", c.LogLevel, logLevels); err != nil {
		return err
	}
	if err := oneOf("log_format", c.LogFormat, logFormats); err != nil {
		return err
	}
	if err := oneOf("capture.provider", c.Provider, providers); err != nil {
		return err
	}
	if err := oneOf("capture.record_codec", c.RecordCodec, recordCodecs); err != nil {
		return err
	}
	if c.Namespace == "" {
		return fmt.Errorf("capture.namespace must not be empty")
	}
	if c.TTL < 0 {
		return fmt.Errorf("capture.ttl must not be negative")
	}
	if c.Provider == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("redis.addr is required for the redis provider")
	}
	return nil
}

func oneOf(key, v string, allowed []string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported %s %q (expected one of %s)", key, v, strings.Join(allowed, ", "))
}
