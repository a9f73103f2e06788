package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, '\\', cfg.Stop())
	assert.Equal(t, '`', cfg.Escape())
	assert.Equal(t, "Mapping", cfg.MappingDir)
}

func TestLoad(t *testing.T) {
	src := `
stop_symbol = "|"
escape_symbol = ""
log_level = "debug"
`
	cfg, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, '|', cfg.Stop())
	assert.Equal(t, rune(0), cfg.Escape())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Custom", cfg.CustomDir, "unset values keep their default")
}

func TestLoadInvalid(t *testing.T) {
	tests := []string{
		`stop_symbol = "ab"`,
		`stop_symbol = ""`,
		`escape_symbol = "\\"`,
		`log_level = "verbose"`,
	}
	for _, src := range tests {
		_, err := Load(strings.NewReader(src))
		require.ErrorIs(t, err, ErrInvalidConfig, "config %q", src)
	}
	_, err := Load(strings.NewReader(`stop_symbol = `))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRANSLIT_LOG_LEVEL", "info")
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	cfg.ApplyLogLevel()
}
