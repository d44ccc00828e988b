package server

import (
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings
	Table  TableSettings
}

// ServerSettings contains listener and logging configuration
type ServerSettings struct {
	Address        string   `hcl:"address,optional"`
	Port           int      `hcl:"port,optional"`
	LogLevel       string   `hcl:"log_level,optional"`
	LogFile        string   `hcl:"log_file,optional"`
	AccessLog      bool     `hcl:"access_log,optional"`
	AllowedOrigins []string `hcl:"allowed_origins,optional"`
}

// TableSettings defines the single table the server hosts
type TableSettings struct {
	MaxSeats              int   `hcl:"max_seats,optional"`
	StartingChips         int   `hcl:"starting_chips,optional"`
	RestartDelayMS        int   `hcl:"restart_delay_ms,optional"`
	DisconnectFoldDelayMS int   `hcl:"disconnect_fold_delay_ms,optional"`
	SendBuffer            int   `hcl:"send_buffer,optional"`
	Seed                  int64 `hcl:"seed,optional"`
}

// fileConfig mirrors the HCL layout, where both blocks may be omitted
type fileConfig struct {
	Server *ServerSettings `hcl:"server,block"`
	Table  *TableSettings  `hcl:"table,block"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source and fills in defaults for unset values
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c := &Config{}
	if fc.Server != nil {
		c.Server = *fc.Server
	}
	if fc.Table != nil {
		c.Table = *fc.Table
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9001
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	if c.Table.MaxSeats == 0 {
		c.Table.MaxSeats = 9
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = 1000
	}
	if c.Table.RestartDelayMS == 0 {
		c.Table.RestartDelayMS = 3000
	}
	if c.Table.DisconnectFoldDelayMS == 0 {
		c.Table.DisconnectFoldDelayMS = 5000
	}
	if c.Table.SendBuffer == 0 {
		c.Table.SendBuffer = 64
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Server.LogLevel, err)
	}
	if slices.Contains(c.Server.AllowedOrigins, "") {
		return fmt.Errorf("allowed origins must not contain an empty entry")
	}

	if c.Table.MaxSeats < 2 || c.Table.MaxSeats > 10 {
		return fmt.Errorf("max seats must be between 2 and 10, got %d", c.Table.MaxSeats)
	}
	if c.Table.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive, got %d", c.Table.StartingChips)
	}
	if c.Table.RestartDelayMS < 0 {
		return fmt.Errorf("restart delay must not be negative, got %dms", c.Table.RestartDelayMS)
	}
	if c.Table.DisconnectFoldDelayMS < 0 {
		return fmt.Errorf("disconnect fold delay must not be negative, got %dms", c.Table.DisconnectFoldDelayMS)
	}
	// welcome and the first snapshot are queued before the write pump starts
	if c.Table.SendBuffer < 4 {
		return fmt.Errorf("send buffer must be at least 4, got %d", c.Table.SendBuffer)
	}
	return nil
}

// ListenAddress returns the full server address
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.Server.Address, strconv.Itoa(c.Server.Port))
}

// RestartDelay is the pause between a showdown and the next deal
func (c *Config) RestartDelay() time.Duration {
	return time.Duration(c.Table.RestartDelayMS) * time.Millisecond
}

// DisconnectFoldDelay is how long a disconnected seat keeps its hand
func (c *Config) DisconnectFoldDelay() time.Duration {
	return time.Duration(c.Table.DisconnectFoldDelayMS) * time.Millisecond
}
