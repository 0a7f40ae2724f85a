// Package config loads the snaker configuration file.
//
// The file is TOML or YAML, chosen by extension. Every setting has a
// default, so a missing file at the default location is not an error. CLI
// flags override whatever the file sets.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/snaker/pkg/animate"
	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/palette"
	"github.com/matzehuels/snaker/pkg/pipeline"
)

const appName = "snaker"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config holds all snaker configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid" yaml:"grid"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
	Animate AnimateConfig `toml:"animate" yaml:"animate"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// GridConfig sizes the grid. Zero width or height fits the grid to the
// default viewport; zero seed picks a random one per run.
type GridConfig struct {
	Width    int     `toml:"width" yaml:"width"`
	Height   int     `toml:"height" yaml:"height"`
	CellSize float64 `toml:"cell_size" yaml:"cell_size"`
	Seed     uint64  `toml:"seed" yaml:"seed"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Style     string   `toml:"style" yaml:"style"`
	Formats   []string `toml:"formats" yaml:"formats"`
	Spectrum  string   `toml:"spectrum" yaml:"spectrum"`
	GridLines bool     `toml:"grid_lines" yaml:"grid_lines"`
	Scale     float64  `toml:"scale" yaml:"scale"`
}

// AnimateConfig paces the watch and stream views.
type AnimateConfig struct {
	Interval time.Duration `toml:"interval" yaml:"interval"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend     string `toml:"backend" yaml:"backend"`
	Dir         string `toml:"dir" yaml:"dir"` // file backend; empty uses the user cache dir
	RedisAddr   string `toml:"redis_addr" yaml:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix" yaml:"redis_prefix"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr          string `toml:"addr" yaml:"addr"`
	Store         string `toml:"store" yaml:"store"`
	MongoURI      string `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database" yaml:"mongo_database"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultPath returns $XDG_CONFIG_HOME/snaker/config.toml, falling back to
// ~/.config/snaker/config.toml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path. An empty path reads the default
// location, where a missing file yields the defaults; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config file")
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".toml", ".yaml" or
// ".yml"), applies defaults and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unsupported config format %q (must be .toml, .yaml or .yml)", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Grid.CellSize == 0 {
		c.Grid.CellSize = pipeline.DefaultCellSize
	}
	if c.Render.Style == "" {
		c.Render.Style = pipeline.DefaultStyle
	}
	if len(c.Render.Formats) == 0 {
		c.Render.Formats = []string{pipeline.FormatSVG}
	}
	if c.Render.Spectrum == "" {
		c.Render.Spectrum = palette.Random
	}
	if c.Render.Scale == 0 {
		c.Render.Scale = pipeline.DefaultScale
	}
	if c.Animate.Interval == 0 {
		c.Animate.Interval = animate.DefaultInterval
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheFile
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Store == "" {
		c.Server.Store = StoreMemory
	}
	if c.Server.MongoURI == "" {
		c.Server.MongoURI = "mongodb://localhost:27017"
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if err := pipeline.ValidateSpectrum(c.Render.Spectrum); err != nil {
		return err
	}
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return errs.New(errs.ErrCodeInvalidDimensions, "grid dimensions cannot be negative, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if err := errs.ValidateCellSize(c.Grid.CellSize); err != nil {
		return err
	}
	if c.Animate.Interval < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "animate interval cannot be negative")
	}
	if err := errs.ValidateChoice(errs.ErrCodeInvalidConfig, "cache backend", c.Cache.Backend, []string{CacheFile, CacheRedis, CacheNone}); err != nil {
		return err
	}
	return errs.ValidateChoice(errs.ErrCodeInvalidConfig, "store", c.Server.Store, []string{StoreMemory, StoreMongo})
}

// PipelineOptions returns pipeline options seeded from the file settings.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:     c.Grid.Width,
		Height:    c.Grid.Height,
		CellSize:  c.Grid.CellSize,
		Seed:      c.Grid.Seed,
		Formats:   append([]string(nil), c.Render.Formats...),
		Style:     c.Render.Style,
		Spectrum:  c.Render.Spectrum,
		GridLines: c.Render.GridLines,
		Scale:     c.Render.Scale,
	}
}
