package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/kmeansvis/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, model.DefaultConfig(), cfg.Model())
	assert.Equal(t, model.Bounds{Width: 600, Height: 600}, cfg.Bounds())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParseConfig_File(t *testing.T) {
	path := writeTOML(t, `
k = 5
clumpiness = 35.5
steps = 8
width = 320
height = 200
seed = 99
out = "out"
log_level = "debug"
stop_on_converge = true
`)

	cfg, err := parseConfig([]string{"-config", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.ClusterCount)
	assert.Equal(t, 35.5, cfg.Clumpiness)
	assert.Equal(t, 8, cfg.Steps)
	assert.Equal(t, model.Bounds{Width: 320, Height: 200}, cfg.Bounds())
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "out", cfg.Out)
	assert.True(t, cfg.StopOnConverge)
	assert.Equal(t, 1e-9, cfg.Epsilon, "unset keys keep defaults")
}

func TestParseConfig_FlagsOverrideFile(t *testing.T) {
	path := writeTOML(t, "k = 5\nclumpiness = 35\nwidth = 320\nheight = 200\n")

	cfg, err := parseConfig([]string{"-config", path, "-k", "2", "-size", "100"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.ClusterCount)
	assert.Equal(t, 35.0, cfg.Clumpiness)
	assert.Equal(t, model.Bounds{Width: 100, Height: 100}, cfg.Bounds())
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"negative steps", []string{"-steps", "-1"}},
		{"bad log level", []string{"-log-level", "loud"}},
		{"empty out", []string{"-out", ""}},
		{"negative epsilon", []string{"-epsilon", "-1"}},
		{"missing file", []string{"-config", filepath.Join(t.TempDir(), "missing.toml")}},
		{"unknown key", []string{"-config", writeTOML(t, "clusters = 3\n")}},
		{"bad toml", []string{"-config", writeTOML(t, "k = \n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}
