// internal/poller/types.go
package poller

// Bus abstracts the field-bus reads the reader needs.
// Implementations return errors exposing Transient() bool for
// failures an immediate retry may cure.
type Bus interface {
	ReadSignedShort(addr uint16) (int16, error)
	ReadUnsignedShort(addr uint16) (uint16, error)
	ReadSignedLong(addr uint16) (int32, error) // two words at addr
}

// MaxAttempts bounds the reads issued for one register per cycle.
const MaxAttempts = 20

// transient is satisfied by bus errors that classify themselves.
type transient interface {
	Transient() bool
}
