package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mver/oche/internal/game"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oche.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Server.LogLevel)
	require.NotEmpty(t, cfg.Modes)

	names := make([]string, len(cfg.Modes))
	for i, mc := range cfg.Modes {
		names[i] = mc.Name
	}
	assert.Contains(t, names, "legs-501")
	assert.Contains(t, names, "cricket")
}

func TestLoadConfig_ParsesModes(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9999
  log_level = "debug"
}

mode "pub-301" {
  variant       = "legs"
  score_per_leg = 301
  double_out    = true
  legs_to_win   = 2
}

mode "party" {
  variant        = "freeforall"
  score_per_leg  = 170
  darts_per_turn = 1
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	require.Len(t, cfg.Modes, 2)

	mode, err := cfg.Modes[0].Build()
	require.NoError(t, err)
	legs, ok := mode.(*game.ClassicLegs)
	require.True(t, ok)
	assert.Equal(t, 301, legs.Settings().ScorePerLeg)
	assert.True(t, legs.Settings().DoubleOut)
	assert.Equal(t, 2, legs.Settings().LegsToWin)

	mode, err = cfg.Modes[1].Build()
	require.NoError(t, err)
	assert.Equal(t, "freeforall", mode.Name())
	assert.Equal(t, 1, mode.DartsPerTurn())
}

func TestLoadConfig_RejectsUnknownVariant(t *testing.T) {
	path := writeConfig(t, `
mode "mystery" {
  variant = "around-the-clock"
}
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "around-the-clock")
}

func TestModeConfig_BuildVariants(t *testing.T) {
	tests := []struct {
		variant string
		want    string
	}{
		{"legs", "legs"},
		{"sets", "sets"},
		{"freeforall", "freeforall"},
		{"cricket", "cricket"},
	}
	for _, tt := range tests {
		mode, err := ModeConfig{Name: tt.variant, Variant: tt.variant}.Build()
		require.NoError(t, err)
		assert.Equal(t, tt.want, mode.Name())
	}

	_, err := ModeConfig{Name: "x", Variant: "bowling"}.Build()
	assert.Error(t, err)
}
