package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, "127.0.0.1:9001", c.ListenAddress())
	assert.Equal(t, 1000, c.Table.StartingChips)
	assert.Equal(t, 9, c.Table.MaxSeats)
	assert.Equal(t, 3*time.Second, c.RestartDelay())
	assert.Equal(t, 5*time.Second, c.DisconnectFoldDelay())
	assert.Equal(t, []string{"*"}, c.Server.AllowedOrigins)
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	src := `
server {
  address         = "0.0.0.0"
  port            = 8080
  log_level       = "debug"
  access_log      = true
  allowed_origins = ["https://poker.example"]
}

table {
  max_seats        = 6
  starting_chips   = 500
  restart_delay_ms = 1500
  seed             = 7
}
`
	c, err := ParseConfig([]byte(src), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "0.0.0.0:8080", c.ListenAddress())
	assert.Equal(t, "debug", c.Server.LogLevel)
	assert.True(t, c.Server.AccessLog)
	assert.Equal(t, []string{"https://poker.example"}, c.Server.AllowedOrigins)
	assert.Equal(t, 6, c.Table.MaxSeats)
	assert.Equal(t, 500, c.Table.StartingChips)
	assert.Equal(t, 1500*time.Millisecond, c.RestartDelay())
	assert.Equal(t, 5*time.Second, c.DisconnectFoldDelay(), "unset values take defaults")
	assert.Equal(t, 64, c.Table.SendBuffer)
	assert.Equal(t, int64(7), c.Table.Seed)
}

func TestParseConfigOnlyTableBlock(t *testing.T) {
	t.Parallel()

	c, err := ParseConfig([]byte("table {\n  max_seats = 4\n}\n"), "table.hcl")
	require.NoError(t, err)
	assert.Equal(t, 9001, c.Server.Port)
	assert.Equal(t, 4, c.Table.MaxSeats)
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		`server {`,
		`server { port = "high" }`,
		`unknown { }`,
		`table { blinds = 10 }`,
	} {
		_, err := ParseConfig([]byte(src), "bad.hcl")
		assert.Error(t, err, src)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	c, err := LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {\n  port = 9100\n}\n"), 0o600))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, c.Server.Port)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "loud" }},
		{"empty origin", func(c *Config) { c.Server.AllowedOrigins = []string{""} }},
		{"one seat", func(c *Config) { c.Table.MaxSeats = 1 }},
		{"too many seats", func(c *Config) { c.Table.MaxSeats = 11 }},
		{"no chips", func(c *Config) { c.Table.StartingChips = -5 }},
		{"negative restart", func(c *Config) { c.Table.RestartDelayMS = -1 }},
		{"negative fold delay", func(c *Config) { c.Table.DisconnectFoldDelayMS = -1 }},
		{"tiny send buffer", func(c *Config) { c.Table.SendBuffer = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}
