// internal/poller/modbus/errors.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
)

// Kind classifies a bus failure.
type Kind uint8

const (
	KindOther           Kind = iota // not retryable (port gone, bad request)
	KindNoResponse                  // timeout, connection closed mid-frame
	KindInvalidResponse             // CRC, length, slave id or function mismatch
	KindDeviceFault                 // Modbus exception reported by the device
)

func (k Kind) String() string {
	switch k {
	case KindNoResponse:
		return "no response"
	case KindInvalidResponse:
		return "invalid response"
	case KindDeviceFault:
		return "device fault"
	default:
		return "other"
	}
}

// Error is returned by every Client read.
type Error struct {
	Kind Kind
	Addr uint16
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("modbus read addr=%d (%s): %v", e.Addr, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transient reports whether an immediate retry may succeed.
func (e *Error) Transient() bool {
	switch e.Kind {
	case KindNoResponse, KindInvalidResponse, KindDeviceFault:
		return true
	default:
		return false
	}
}

// goburrow reports framing problems as plain formatted errors.
var invalidResponsePrefixes = []string{
	"modbus: response",
	"modbus: length in response",
}

func classify(addr uint16, err error) *Error {
	return &Error{Kind: kindOf(err), Addr: addr, Err: err}
}

func kindOf(err error) Kind {
	var me *modbus.ModbusError
	if errors.As(err, &me) {
		return KindDeviceFault
	}

	if errors.Is(err, serial.ErrTimeout) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return KindNoResponse
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindNoResponse
	}

	msg := err.Error()
	for _, p := range invalidResponsePrefixes {
		if strings.HasPrefix(msg, p) {
			return KindInvalidResponse
		}
	}

	return KindOther
}
