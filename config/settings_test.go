package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerSettings_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	cfg := "port: 9001\ntickRate: 30\nlaps: 5\ngameOptions: 0x41\nlogLevel: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	s, err := LoadServerSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, s.Port)
	assert.Equal(t, 30, s.TickRate)
	assert.Equal(t, 5, s.Laps)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.Options().Has(OptAllowWeapons))
	assert.False(t, s.Options().Has(OptAllowMines))
	assert.Equal(t, "hoverrace-mp", s.RecordsApp, "missing keys fall back to defaults")
}

func TestLoadServerSettings_Defaults(t *testing.T) {
	s, err := LoadServerSettings("")
	require.NoError(t, err)

	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, 60, s.TickRate)
	assert.Equal(t, 3, s.Laps)
	assert.Equal(t, OptDefault, s.Options())
	assert.Equal(t, "HoverRace Server", s.Name)
	assert.Empty(t, s.MasterURL, "no master listing by default")
}

func TestLoadServerSettings_EnvOverride(t *testing.T) {
	t.Setenv("HOVERRACE_LAPS", "7")

	s, err := LoadServerSettings("")
	require.NoError(t, err)

	assert.Equal(t, 7, s.Laps)
}

func TestLoadServerSettings_MissingFile(t *testing.T) {
	_, err := LoadServerSettings("/nonexistent/server.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	base, err := LoadServerSettings("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		modify func(*ServerSettings)
	}{
		{"zero tick rate", func(s *ServerSettings) { s.TickRate = 0 }},
		{"no laps", func(s *ServerSettings) { s.Laps = 0 }},
		{"negative pregame", func(s *ServerSettings) { s.PregameMs = -1 }},
		{"no crafts", func(s *ServerSettings) { s.GameOptions = int(OptAllowWeapons) }},
		{"options overflow", func(s *ServerSettings) { s.GameOptions = 0x1ff }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.modify(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
		})
	}
}

func TestGameOptions(t *testing.T) {
	opts := OptAllowBasic | OptAllowEon

	assert.True(t, opts.AllowsCraft(0))
	assert.False(t, opts.AllowsCraft(1))
	assert.True(t, opts.AllowsCraft(3))
	assert.False(t, opts.AllowsCraft(5))
}

func TestHoverModels(t *testing.T) {
	basic := HoverModels[0]

	assert.InDelta(t, 19.3314, basic.SteadySpeed, 1e-9)
	assert.InDelta(t, -basic.SteadySpeed/4000, basic.FrictionAccel, 1e-12)
	assert.InDelta(t, HoverModels[2].SteadySpeed/1050, HoverModels[2].MotorAccel, 1e-12)
	assert.Equal(t, int32(450), HoverModels[2].Weight)
	assert.Equal(t, "bump", SoundBump.String())
}
