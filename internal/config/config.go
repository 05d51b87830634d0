// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Channel ChannelConfig `yaml:"channel"`
}

// ---- CHANNEL ----

type ChannelConfig struct {
	Transport string `yaml:"transport"` // tcp | serial
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// Data window size override in registers (optional; 0 keeps the
	// transport default).
	DataWindowRegs uint16 `yaml:"data_window_regs"`

	Serial SerialConfig `yaml:"serial"`
}

// Timeout returns the request timeout as a duration.
func (c ChannelConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ---- SERIAL LINE ----

type SerialConfig struct {
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"` // N | E | O
	StopBits int    `yaml:"stop_bits"`
}

// Default returns the built-in configuration used when no config file is
// given: the card's service processor on the local TCP bridge.
func Default() *Config {
	return &Config{
		Channel: ChannelConfig{
			Transport: "tcp",
			Endpoint:  "127.0.0.1:1502",
			UnitID:    1,
			TimeoutMs: 2000,
			Serial: SerialConfig{
				BaudRate: 115200,
				DataBits: 8,
				Parity:   "N",
				StopBits: 1,
			},
		},
	}
}

// Load reads a YAML configuration file. An empty path selects Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}
