// Package config loads configuration for the cexpr command and server.
package config

import (
	"os"
	"strings"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/cexpr"
	"github.com/zephyrtronium/cexpr/internal/logging"
	"github.com/zephyrtronium/cexpr/plot"
)

// Config is the complete configuration.
type Config struct {
	Log    Log         `yaml:"log"`
	Parse  Parse       `yaml:"parse"`
	Plot   plot.Params `yaml:"plot"`
	Server Server      `yaml:"server"`
}

// Log configures logging.
type Log struct {
	// Level is one of debug, info, warn, or error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// Parse configures expression parsing.
type Parse struct {
	MaxDepth          int  `yaml:"max_depth"`
	PowerBindsTighter bool `yaml:"power_binds_tighter"`
}

// Options returns the parse options described by c.
func (c Parse) Options() []cexpr.ParseOption {
	opts := []cexpr.ParseOption{cexpr.MaxDepth(c.MaxDepth)}
	if c.PowerBindsTighter {
		opts = append(opts, cexpr.PowerBindsTighter())
	}
	return opts
}

// Server configures the HTTP service.
type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// CacheSize is the number of parsed expressions kept by the server.
	CacheSize int `yaml:"cache_size"`
	// MaxExprLen limits the length of expressions accepted by the server.
	MaxExprLen int `yaml:"max_expr_len"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: logging.FormatText,
		},
		Parse: Parse{
			MaxDepth: cexpr.DefaultMaxDepth,
		},
		Plot: plot.DefaultParams(),
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			CacheSize:       256,
			MaxExprLen:      4096,
		},
	}
}

// ApplyDefaults fills every unset field of cfg with its default value.
func ApplyDefaults(cfg *Config) {
	d := Default()
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = d.Log.Format
	}
	if cfg.Parse.MaxDepth == 0 {
		cfg.Parse.MaxDepth = d.Parse.MaxDepth
	}
	p := &cfg.Plot
	if p.Width == 0 {
		p.Width = d.Plot.Width
	}
	if p.Height == 0 {
		p.Height = d.Plot.Height
	}
	if p.Cells == 0 {
		p.Cells = d.Plot.Cells
	}
	if p.Range == 0 {
		p.Range = d.Plot.Range
	}
	if p.Scale == 0 {
		p.Scale = d.Plot.Scale
	}
	if p.Angle == 0 {
		p.Angle = d.Plot.Angle
	}
	s := &cfg.Server
	if s.Addr == "" {
		s.Addr = d.Server.Addr
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = d.Server.ReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = d.Server.WriteTimeout
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if s.CacheSize == 0 {
		s.CacheSize = d.Server.CacheSize
	}
	if s.MaxExprLen == 0 {
		s.MaxExprLen = d.Server.MaxExprLen
	}
}

// Validate reports every problem with cfg.
func (cfg *Config) Validate() error {
	var errs *multierror.Error
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		errs = multierror.Append(errs, errors.Wrap(err, "log.level"))
	}
	if f := strings.ToLower(cfg.Log.Format); f != logging.FormatText && f != logging.FormatJSON {
		errs = multierror.Append(errs, errors.Errorf("log.format: unknown format %q", f))
	}
	if cfg.Parse.MaxDepth < 0 {
		errs = multierror.Append(errs, errors.Errorf("parse.max_depth: must not be negative, got %d", cfg.Parse.MaxDepth))
	}
	if err := cfg.Plot.Validate(); err != nil {
		errs = multierror.Append(errs, errors.Wrap(err, "plot"))
	}
	s := &cfg.Server
	if s.Addr == "" {
		errs = multierror.Append(errs, errors.New("server.addr: must not be empty"))
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 || s.ShutdownTimeout < 0 {
		errs = multierror.Append(errs, errors.New("server: timeouts must not be negative"))
	}
	if s.CacheSize < 0 {
		errs = multierror.Append(errs, errors.Errorf("server.cache_size: must not be negative, got %d", s.CacheSize))
	}
	if s.MaxExprLen <= 0 {
		errs = multierror.Append(errs, errors.Errorf("server.max_expr_len: must be positive, got %d", s.MaxExprLen))
	}
	return errs.ErrorOrNil()
}

// Load reads the YAML configuration at path, fills in defaults, applies
// environment overrides, and validates the result. An empty path loads only
// defaults and the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
	}
	ApplyDefaults(cfg)
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Environment variables that override file settings.
const (
	EnvServerAddr = "CEXPR_SERVER_ADDR"
	EnvLogLevel   = "CEXPR_LOG_LEVEL"
	EnvLogFormat  = "CEXPR_LOG_FORMAT"
)

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvServerAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
}
