package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"dense": preset(func(c *Config) {
		c.Particles = 600
		c.ConnectionDistance = 70
		c.RadiusMin, c.RadiusMax = 0.5, 1.5
		c.Strategy = "grid"
	}),
	"calm": preset(func(c *Config) {
		c.Particles = 120
		c.MaxSpeed = 0.1
		c.MouseRadius = 120
		c.RelaxDivisor = 25
		c.MassMax = 10
	}),
	"storm": preset(func(c *Config) {
		c.Particles = 400
		c.MaxSpeed = 1.5
		c.MouseRadius = 300
		c.RelaxDivisor = 4
		c.Accent = "#ff4f6d"
		c.Strategy = "grid"
	}),
}

func preset(tweak func(*Config)) *Config {
	c := DefaultConfig()
	tweak(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
