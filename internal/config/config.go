package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"astuart.co/goswipe"
)

const (
	defaultDirective     = "x-swiper"
	defaultListen        = "127.0.0.1:3400"
	defaultDebounceMs    = 300
	defaultAutoplayDelay = 5000
)

// Config is the goswipe.yaml tool configuration.
type Config struct {
	Directive string `yaml:"directive"`
	// Breakpoints override or extend the built-in sizes.
	Breakpoints map[string]int `yaml:"breakpoints"`
	// UnitModifiers are extra flag modifiers on top of the built-in ones.
	UnitModifiers []string `yaml:"unit_modifiers"`

	Navigation struct {
		NextEl string `yaml:"next_el"`
		PrevEl string `yaml:"prev_el"`
	} `yaml:"navigation"`

	Autoplay struct {
		DelayMs int `yaml:"delay_ms"`
	} `yaml:"autoplay"`

	Server struct {
		Listen string `yaml:"listen"`
		// MaxBodyBytes caps the markup accepted per request.
		MaxBodyBytes int64 `yaml:"max_body_bytes"`
	} `yaml:"server"`

	Watch struct {
		Dir        string `yaml:"dir"`
		OutDir     string `yaml:"out_dir"`
		DebounceMs int    `yaml:"debounce_ms"`
		// Render writes rendered html next to the json reports.
		Render bool `yaml:"render"`
	} `yaml:"watch"`

	Logging struct {
		Level string `yaml:"level"`
		// Development switches to zap's console encoder.
		Development bool `yaml:"development"`
	} `yaml:"logging"`
}

// Load reads path. A missing file yields the defaults, so the CLI works
// without any configuration.
func Load(path string) (*Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path != "" {
		// #nosec G304 -- path is provided by trusted flag.
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %q: %w", path, err)
			}
		}
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Directive) == "" {
		cfg.Directive = defaultDirective
	}
	if strings.TrimSpace(cfg.Navigation.NextEl) == "" {
		cfg.Navigation.NextEl = ".swiper-button-next"
	}
	if strings.TrimSpace(cfg.Navigation.PrevEl) == "" {
		cfg.Navigation.PrevEl = ".swiper-button-prev"
	}
	if cfg.Autoplay.DelayMs == 0 {
		cfg.Autoplay.DelayMs = defaultAutoplayDelay
	}
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = defaultListen
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 4 << 20
	}
	if strings.TrimSpace(cfg.Watch.Dir) == "" {
		cfg.Watch.Dir = "."
	}
	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = defaultDebounceMs
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("GOSWIPE_DIRECTIVE")); v != "" {
		cfg.Directive = v
	}
	if v := strings.TrimSpace(os.Getenv("GOSWIPE_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("GOSWIPE_WATCH_DIR")); v != "" {
		cfg.Watch.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("GOSWIPE_WATCH_OUT_DIR")); v != "" {
		cfg.Watch.OutDir = v
	}
	if n, ok := envInt("GOSWIPE_WATCH_DEBOUNCE_MS"); ok {
		cfg.Watch.DebounceMs = n
	}
	cfg.Watch.Render = envBool("GOSWIPE_WATCH_RENDER", cfg.Watch.Render)
	if n, ok := envInt("GOSWIPE_AUTOPLAY_DELAY_MS"); ok {
		cfg.Autoplay.DelayMs = n
	}
	if v := strings.TrimSpace(os.Getenv("GOSWIPE_LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	cfg.Logging.Development = envBool("GOSWIPE_LOG_DEVELOPMENT", cfg.Logging.Development)
}

func validate(cfg *Config) error {
	if strings.ContainsAny(cfg.Directive, ".: \t") {
		return fmt.Errorf("directive %q must not contain '.', ':' or spaces", cfg.Directive)
	}
	for name, width := range cfg.Breakpoints {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, ".:") {
			return fmt.Errorf("breakpoints: invalid name %q", name)
		}
		if width <= 0 {
			return fmt.Errorf("breakpoints.%s must be > 0", name)
		}
	}
	for _, u := range cfg.UnitModifiers {
		if strings.TrimSpace(u) == "" || strings.Contains(u, ".") {
			return fmt.Errorf("unit_modifiers: invalid modifier %q", u)
		}
	}
	if cfg.Autoplay.DelayMs < 0 {
		return errors.New("autoplay.delay_ms must be >= 0")
	}
	if cfg.Watch.DebounceMs <= 0 {
		return errors.New("watch.debounce_ms must be > 0")
	}
	if cfg.Server.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes must be non-negative")
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", cfg.Logging.Level)
	}
	return nil
}

// CompilerOptions turns the configuration into compiler options.
func (c *Config) CompilerOptions() goswipe.Options {
	opts := goswipe.DefaultOptions()
	opts.Directive = c.Directive
	for name, width := range c.Breakpoints {
		opts.Breakpoints[strings.TrimSpace(name)] = width
	}
	for _, u := range c.UnitModifiers {
		opts.Units[strings.TrimSpace(u)] = true
	}
	opts.NextEl = c.Navigation.NextEl
	opts.PrevEl = c.Navigation.PrevEl
	opts.AutoplayDelay = c.Autoplay.DelayMs
	return opts
}

func envInt(name string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
