// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/sun2000-bridge/internal/config"
	pmodbus "github.com/tamzrod/sun2000-bridge/internal/poller/modbus"
)

// Build opens the bus instrument and wraps it in a Reader.
// Fails fast at startup if the port or gateway cannot be opened.
// The returned closer releases the instrument.
func Build(b cfg.BusConfig) (*Reader, func() error, error) {
	client, err := pmodbus.New(pmodbus.Config{
		Mode:     b.Mode,
		Device:   b.Device,
		BaudRate: b.BaudRate,
		DataBits: b.DataBits,
		Parity:   b.Parity,
		StopBits: b.StopBits,
		Address:  b.Address,
		SlaveID:  b.SlaveID,
		Timeout:  time.Duration(b.TimeoutMs) * time.Millisecond,
		FC:       b.FC,
	})
	if err != nil {
		return nil, nil, err
	}

	return NewReader(client), client.Close, nil
}
