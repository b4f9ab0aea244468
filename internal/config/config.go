package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlenet/internal/connect"
	"github.com/san-kum/particlenet/internal/field"
	"github.com/san-kum/particlenet/internal/geom"
	"github.com/san-kum/particlenet/internal/surface"
)

const (
	DefaultParticles = field.DefaultCount
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultFPS       = 60
	DefaultStrategy  = "naive"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Particles          int     `yaml:"particles" toml:"particles"`
	ConnectionDistance float64 `yaml:"connection_distance" toml:"connection_distance"`
	MouseRadius        float64 `yaml:"mouse_radius" toml:"mouse_radius"`
	RelaxDivisor       float64 `yaml:"relax_divisor" toml:"relax_divisor"`
	MaxSpeed           float64 `yaml:"max_speed" toml:"max_speed"`
	RadiusMin          float64 `yaml:"radius_min" toml:"radius_min"`
	RadiusMax          float64 `yaml:"radius_max" toml:"radius_max"`
	MassMin            float64 `yaml:"mass_min" toml:"mass_min"`
	MassMax            float64 `yaml:"mass_max" toml:"mass_max"`
	Accent             string  `yaml:"accent" toml:"accent"`
	LineWidth          float64 `yaml:"line_width" toml:"line_width"`
	Width              int     `yaml:"width" toml:"width"`
	Height             int     `yaml:"height" toml:"height"`
	FPS                int     `yaml:"fps" toml:"fps"`
	Seed               int64   `yaml:"seed" toml:"seed"`
	Strategy           string  `yaml:"strategy" toml:"strategy"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles:          DefaultParticles,
		ConnectionDistance: connect.DefaultDistance,
		MouseRadius:        field.MouseInfluenceRadius,
		RelaxDivisor:       field.RelaxDivisor,
		MaxSpeed:           field.MaxDrift,
		RadiusMin:          field.MinRadius,
		RadiusMax:          field.MaxRadius,
		MassMin:            field.MinMass,
		MassMax:            field.MaxMass,
		Accent:             surface.Accent.Hex(),
		LineWidth:          connect.DefaultWidth,
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		FPS:                DefaultFPS,
		Strategy:           DefaultStrategy,
	}
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Load reads a YAML or TOML file (chosen by extension) over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func (c *Config) Validate() error {
	switch {
	case c.Particles <= 0:
		return fmt.Errorf("%w: particles must be positive, got %d", ErrInvalid, c.Particles)
	case c.ConnectionDistance <= 0:
		return fmt.Errorf("%w: connection_distance must be positive, got %g", ErrInvalid, c.ConnectionDistance)
	case c.LineWidth <= 0:
		return fmt.Errorf("%w: line_width must be positive, got %g", ErrInvalid, c.LineWidth)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FPS < 0:
		return fmt.Errorf("%w: fps must not be negative, got %d", ErrInvalid, c.FPS)
	}
	if _, err := connect.NewStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.FieldParams(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) Color() (surface.Color, error) {
	return surface.ParseHex(c.Accent)
}

func (c *Config) FieldParams() (field.Params, error) {
	col, err := c.Color()
	if err != nil {
		return field.Params{}, err
	}
	p := field.Params{
		MouseRadius:  c.MouseRadius,
		RelaxDivisor: c.RelaxDivisor,
		MaxDrift:     c.MaxSpeed,
		RadiusMin:    c.RadiusMin,
		RadiusMax:    c.RadiusMax,
		MassMin:      c.MassMin,
		MassMax:      c.MassMax,
		Color:        col,
	}
	return p, p.Validate()
}

func (c *Config) Bounds() geom.Bounds {
	return geom.Bounds{W: float64(c.Width), H: float64(c.Height)}
}
