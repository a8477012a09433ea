// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bus     BusConfig      `yaml:"bus"`
	Brokers []BrokerConfig `yaml:"brokers"`
	Poll    PollConfig     `yaml:"poll"`
	Log     LogConfig      `yaml:"log"`
}

// ---- BUS (field-bus instrument) ----

type BusConfig struct {
	Mode    string `yaml:"mode"`    // rtu | tcp
	Device  string `yaml:"device"`  // rtu: serial device path
	Address string `yaml:"address"` // tcp: host:port of the gateway

	SlaveID  uint8  `yaml:"slave_id"`
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"`
	StopBits int    `yaml:"stop_bits"`

	// Per-attempt timeout. Retries are bounded by the reader, not here.
	TimeoutMs int `yaml:"timeout_ms"`

	// FC 3 (holding) or 4 (input). 0 => 3.
	FC uint8 `yaml:"fc"`
}

// ---- BROKER ----

type BrokerConfig struct {
	Name     string `yaml:"name"`
	Server   string `yaml:"server"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Prefix   string `yaml:"prefix"` // literal topic prefix, no separator added
	ClientID string `yaml:"client_id"`
	QoS      uint8  `yaml:"qos"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs       int `yaml:"interval_ms"`
	FlushIntervalMs  int `yaml:"flush_interval_ms"`
	ConnectTimeoutMs int `yaml:"connect_timeout_ms"`
	ServiceTimeoutMs int `yaml:"service_timeout_ms"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// Load reads and decodes a YAML config file.
// It does not validate or apply defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	return &cfg, nil
}
