package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	"iss-telemetry-bot/internal/domain"
)

const (
	MenuInline = "inline"
	MenuReply  = "reply"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token          string        `yaml:"token" env:"TOKEN"`
	Proxy          string        `yaml:"proxy" env:"PROXY"` // applies to every outbound HTTP call
	PollTimeout    int           `yaml:"poll_timeout"`      // long-poll seconds
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`
	Menu           string        `yaml:"menu"` // inline | reply
	SkipMenuResend bool          `yaml:"skip_menu_resend"`
	Debug          bool          `yaml:"debug"`
	DryRun         bool          `yaml:"dry_run" env:"DRY_RUN"` // log replies instead of sending them
}

// MenuAfterReply reports whether the menu is re-sent after every handled request.
func (b BotConfig) MenuAfterReply() bool {
	return !b.SkipMenuResend
}

// PassTimesEnabled is true for the variant whose keyboard can share a location.
func (b BotConfig) PassTimesEnabled() bool {
	return b.Menu == MenuReply
}

type TelemetryConfig struct {
	BaseURL  string        `yaml:"base_url" env:"TELEMETRY_BASE_URL"`
	Timeout  time.Duration `yaml:"timeout"`
	TimeZone string        `yaml:"timezone" env:"TZ_NAME"`
}

// Location resolves the zone pass times are printed in.
func (t TelemetryConfig) Location() (*time.Location, error) {
	return time.LoadLocation(t.TimeZone)
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL"` // trace|debug|info|warn|error
	Format   string `yaml:"format"`                // json|console
	File     string `yaml:"file" env:"LOG_FILE"`   // append-only; "-" disables
	Sampling bool   `yaml:"sampling"`
}

type AdminConfig struct {
	Port int `yaml:"port" env:"ADMIN_PORT"` // 0 disables the health server
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path, then lets the process environment
// override it. A missing file is not an error so env-only deployments work.
func LoadConfig(path string, dev bool) (*Config, error) {
	return load(path, dev, nil)
}

func load(path string, dev bool, environ map[string]string) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.PollTimeout <= 0 {
		cfg.Bot.PollTimeout = 60
	}
	if cfg.Bot.ReconnectDelay <= 0 {
		cfg.Bot.ReconnectDelay = 5 * time.Second
	}
	cfg.Bot.Menu = strings.ToLower(strings.TrimSpace(cfg.Bot.Menu))
	if cfg.Bot.Menu == "" {
		cfg.Bot.Menu = MenuInline
	}
	if cfg.Telemetry.BaseURL == "" {
		cfg.Telemetry.BaseURL = "http://api.open-notify.org"
	}
	cfg.Telemetry.BaseURL = strings.TrimRight(cfg.Telemetry.BaseURL, "/")
	if cfg.Telemetry.Timeout <= 0 {
		cfg.Telemetry.Timeout = 10 * time.Second
	}
	if cfg.Telemetry.TimeZone == "" {
		cfg.Telemetry.TimeZone = "Local"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "iss_bot.log"
	}
}

// Minimal validation
func validate(cfg *Config) error {
	if cfg.Bot.Token == "" {
		return fmt.Errorf("%w: bot.token (TOKEN) is required", domain.ErrInvalidConfig)
	}
	if cfg.Bot.Proxy != "" {
		u, err := url.Parse(cfg.Bot.Proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: bot.proxy %q is not a valid URL", domain.ErrInvalidConfig, cfg.Bot.Proxy)
		}
	}
	if cfg.Bot.Menu != MenuInline && cfg.Bot.Menu != MenuReply {
		return fmt.Errorf("%w: bot.menu must be %q or %q, got %q", domain.ErrInvalidConfig, MenuInline, MenuReply, cfg.Bot.Menu)
	}
	if _, err := url.ParseRequestURI(cfg.Telemetry.BaseURL); err != nil {
		return fmt.Errorf("%w: telemetry.base_url: %v", domain.ErrInvalidConfig, err)
	}
	if _, err := cfg.Telemetry.Location(); err != nil {
		return fmt.Errorf("%w: telemetry.timezone: %v", domain.ErrInvalidConfig, err)
	}
	if cfg.Admin.Port < 0 || cfg.Admin.Port > 65535 {
		return fmt.Errorf("%w: admin.port %d out of range", domain.ErrInvalidConfig, cfg.Admin.Port)
	}
	return nil
}
