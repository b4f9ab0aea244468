package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/particlenet/internal/field"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 200, cfg.Particles)
	assert.Equal(t, 120.0, cfg.ConnectionDistance)
	assert.Equal(t, "#00ff9d", cfg.Accent)
	assert.Equal(t, 1.0, cfg.LineWidth)

	p, err := cfg.FieldParams()
	require.NoError(t, err)
	assert.Equal(t, field.DefaultParams(), p)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.yaml")
	require.NoError(t, os.WriteFile(path, []byte("particles: 50\nstrategy: grid\naccent: \"#112233\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Particles)
	assert.Equal(t, "grid", cfg.Strategy)
	assert.Equal(t, 120.0, cfg.ConnectionDistance, "unset fields keep defaults")

	col, err := cfg.Color()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x22), col.G)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.toml")
	require.NoError(t, os.WriteFile(path, []byte("particles = 75\nmouse_radius = 150.0\nwidth = 1024\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Particles)
	assert.Equal(t, 150.0, cfg.MouseRadius)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := GetPreset("storm")
	cfg.Seed = 42

	for _, name := range []string{"a.yaml", "a.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, cfg))

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, got, name)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*Config)
	}{
		{"no particles", func(c *Config) { c.Particles = 0 }},
		{"zero distance", func(c *Config) { c.ConnectionDistance = 0 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative fps", func(c *Config) { c.FPS = -1 }},
		{"bad accent", func(c *Config) { c.Accent = "green" }},
		{"unknown strategy", func(c *Config) { c.Strategy = "octree" }},
		{"inverted mass", func(c *Config) { c.MassMin, c.MassMax = 10, 2 }},
		{"tiny divisor", func(c *Config) { c.RelaxDivisor = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.tweak(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("particles: -3\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	assert.Equal(t, []string{"calm", "default", "dense", "storm"}, names)

	for _, name := range names {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Validate(), name)
	}

	cfg := GetPreset("dense")
	cfg.Particles = 1
	assert.Equal(t, 600, GetPreset("dense").Particles, "GetPreset must return a copy")

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	require.NoError(t, os.WriteFile(path, []byte("particles: 10\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	changes := make(chan *Config, 8)
	go Watch(ctx, path, 20*time.Millisecond, func(c *Config, err error) {
		if err == nil {
			changes <- c
		}
	})

	// the watcher may not be registered yet; keep touching the file
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-changes:
			assert.Equal(t, 20, cfg.Particles)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("particles: 20\n"), 0644))
		case <-ctx.Done():
			t.Fatal("no reload observed")
		}
	}
}
