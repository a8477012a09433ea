// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Client implements poller.Bus on top of goburrow/modbus.
// This adapter is geometry-only: it issues one read per call and decodes words.
// Requests are serialized: field-bus transports are not reentrant.
type Client struct {
	mu     sync.Mutex
	closer io.Closer
	client modbus.Client
	fc     uint8
}

// Config is minimal transport config.
type Config struct {
	Mode string // rtu | tcp

	// rtu
	Device   string
	BaudRate int
	DataBits int
	Parity   string
	StopBits int

	// tcp
	Address string

	SlaveID uint8
	Timeout time.Duration
	FC      uint8 // 3 or 4
}

// New opens the serial port (rtu) or dials the gateway (tcp).
func New(cfg Config) (*Client, error) {
	var (
		handler modbus.ClientHandler
		closer  io.Closer
	)

	switch cfg.Mode {
	case "rtu":
		if cfg.Device == "" {
			return nil, errors.New("modbus client: device required")
		}
		h := modbus.NewRTUClientHandler(cfg.Device)
		h.BaudRate = cfg.BaudRate
		h.DataBits = cfg.DataBits
		h.Parity = cfg.Parity
		h.StopBits = cfg.StopBits
		h.SlaveId = cfg.SlaveID
		h.Timeout = cfg.Timeout

		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("modbus client: open %s: %w", cfg.Device, err)
		}
		handler, closer = h, h

	case "tcp":
		if cfg.Address == "" {
			return nil, errors.New("modbus client: address required")
		}
		h := modbus.NewTCPClientHandler(cfg.Address)
		h.SlaveId = cfg.SlaveID
		h.Timeout = cfg.Timeout

		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("modbus client: dial %s: %w", cfg.Address, err)
		}
		handler, closer = h, h

	default:
		return nil, fmt.Errorf("modbus client: unknown mode %q", cfg.Mode)
	}

	fc := cfg.FC
	if fc == 0 {
		fc = 3
	}

	return &Client{
		closer: closer,
		client: modbus.NewClient(handler),
		fc:     fc,
	}, nil
}

// Close releases the serial port or TCP connection.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closer.Close()
}

// ---- poller.Bus interface ----

func (c *Client) ReadSignedShort(addr uint16) (int16, error) {
	w, err := c.readWords(addr, 1)
	if err != nil {
		return 0, err
	}
	return int16(w[0]), nil
}

func (c *Client) ReadUnsignedShort(addr uint16) (uint16, error) {
	w, err := c.readWords(addr, 1)
	if err != nil {
		return 0, err
	}
	return w[0], nil
}

// ReadSignedLong reads two consecutive words at addr, high word first.
func (c *Client) ReadSignedLong(addr uint16) (int32, error) {
	w, err := c.readWords(addr, 2)
	if err != nil {
		return 0, err
	}
	return int32(uint32(w[0])<<16 | uint32(w[1])), nil
}

// ---- internal request/response helpers ----

func (c *Client) readWords(addr, qty uint16) ([]uint16, error) {
	if c == nil || c.client == nil {
		return nil, &Error{Kind: KindOther, Addr: addr, Err: errors.New("modbus client: not connected")}
	}

	c.mu.Lock()
	var (
		raw []byte
		err error
	)
	switch c.fc {
	case 4:
		raw, err = c.client.ReadInputRegisters(addr, qty)
	default:
		raw, err = c.client.ReadHoldingRegisters(addr, qty)
	}
	c.mu.Unlock()

	if err != nil {
		return nil, classify(addr, err)
	}

	// Best-effort sanity check (still geometry-only).
	if len(raw) != int(qty)*2 {
		return nil, &Error{
			Kind: KindInvalidResponse,
			Addr: addr,
			Err:  fmt.Errorf("modbus: got %d bytes, want %d", len(raw), int(qty)*2),
		}
	}

	return unpackRegisters(raw), nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
