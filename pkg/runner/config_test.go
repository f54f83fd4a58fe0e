package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/grafter/pkg/runner"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grafter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := runner.DefaultConfig()
	assert.Equal(t, 256, cfg.Cases)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, 65536, cfg.MaxLocalRejects)
	assert.Equal(t, 4096, cfg.MaxShrinkIters)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, "cases: 1000\nseed: 42\n")

	cfg, err := runner.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Cases)
	assert.Equal(t, uint64(42), cfg.Seed)
	// Untouched fields keep their defaults.
	assert.Equal(t, 65536, cfg.MaxLocalRejects)
	assert.Equal(t, 4096, cfg.MaxShrinkIters)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := runner.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfig(t, "cases: [not an int\n")
	_, err := runner.LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "cases: 0\n")
	_, err := runner.LoadConfig(path)
	assert.ErrorIs(t, err, runner.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*runner.Config)
		wantErr bool
	}{
		{"defaults", func(*runner.Config) {}, false},
		{"zero cases", func(c *runner.Config) { c.Cases = 0 }, true},
		{"negative rejects", func(c *runner.Config) { c.MaxLocalRejects = -1 }, true},
		{"negative shrink iters", func(c *runner.Config) { c.MaxShrinkIters = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := runner.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, runner.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
