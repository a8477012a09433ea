// internal/config/normalize.go
package config

import (
	"strings"

	"github.com/google/uuid"
)

const (
	ModeRTU = "rtu"
	ModeTCP = "tcp"

	FormatConsole = "console"
	FormatJSON    = "json"
)

// Defaults match the inverter's factory RS485 settings.
const (
	DefaultDevice    = "/dev/ttyUSB0"
	DefaultSlaveID   = 1
	DefaultBaudRate  = 9600
	DefaultDataBits  = 8
	DefaultParity    = "N"
	DefaultStopBits  = 1
	DefaultTimeoutMs = 50
	DefaultFC        = 3

	DefaultBrokerPort = "1883"
	ClientIDPrefix    = "sun2000-"

	DefaultIntervalMs       = 10_000
	DefaultFlushIntervalMs  = 60_000
	DefaultConnectTimeoutMs = 5_000
	DefaultServiceTimeoutMs = 1_000

	DefaultLogLevel = "info"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ------------------------------------------------------------
	// BUS
	// ------------------------------------------------------------

	b := &cfg.Bus
	if b.Mode == "" {
		b.Mode = ModeRTU
	}
	if b.Mode == ModeRTU && b.Device == "" {
		b.Device = DefaultDevice
	}
	if b.SlaveID == 0 {
		b.SlaveID = DefaultSlaveID
	}
	if b.BaudRate == 0 {
		b.BaudRate = DefaultBaudRate
	}
	if b.DataBits == 0 {
		b.DataBits = DefaultDataBits
	}
	if b.Parity == "" {
		b.Parity = DefaultParity
	}
	if b.StopBits == 0 {
		b.StopBits = DefaultStopBits
	}
	if b.TimeoutMs == 0 {
		b.TimeoutMs = DefaultTimeoutMs
	}
	if b.FC == 0 {
		b.FC = DefaultFC
	}

	// ------------------------------------------------------------
	// BROKERS
	// ------------------------------------------------------------

	for i := range cfg.Brokers {
		br := &cfg.Brokers[i]

		if br.Name == "" {
			br.Name = br.Server
		}
		br.Server = brokerURL(br.Server)

		if br.ClientID == "" {
			br.ClientID = ClientIDPrefix + uuid.New().String()[:8]
		}
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	p := &cfg.Poll
	if p.IntervalMs == 0 {
		p.IntervalMs = DefaultIntervalMs
	}
	if p.FlushIntervalMs == 0 {
		p.FlushIntervalMs = DefaultFlushIntervalMs
	}
	if p.ConnectTimeoutMs == 0 {
		p.ConnectTimeoutMs = DefaultConnectTimeoutMs
	}
	if p.ServiceTimeoutMs == 0 {
		p.ServiceTimeoutMs = DefaultServiceTimeoutMs
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = FormatConsole
	}
}

// brokerURL turns "host", "host:port" or a full URL into a broker URL
// with an explicit scheme and port.
func brokerURL(server string) string {
	if strings.Contains(server, "://") {
		return server
	}

	host := server
	if !hasPort(host) {
		host = host + ":" + DefaultBrokerPort
	}

	return "tcp://" + host
}

func hasPort(host string) bool {
	// bracketed IPv6 literal: [::1]:1883
	if strings.HasPrefix(host, "[") {
		return strings.Contains(host, "]:")
	}
	return strings.Count(host, ":") == 1
}
