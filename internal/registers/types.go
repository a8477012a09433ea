// internal/registers/types.go
package registers

import (
	"fmt"
	"strconv"
)

// Encoding is how a register's raw words are interpreted.
// Fixed per catalogue entry.
type Encoding uint8

const (
	SignedShort   Encoding = iota + 1 // one word, two's complement
	UnsignedShort                     // one word
	SignedLong                        // two words, high word first, two's complement
)

func (e Encoding) String() string {
	switch e {
	case SignedShort:
		return "int16"
	case UnsignedShort:
		return "uint16"
	case SignedLong:
		return "int32"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// Words is the number of 16-bit bus words the encoding consumes.
func (e Encoding) Words() uint16 {
	if e == SignedLong {
		return 2
	}
	return 1
}

// Precision is the number of fractional digits a scaled reading is
// formatted with. Tied to the entry, never derived from the scale value.
type Precision uint8

const (
	PrecisionRaw Precision = iota // shortest exact representation
	PrecisionTenths
	PrecisionHundredths
	PrecisionThousandths
)

// Digits returns the strconv precision argument for p.
func (p Precision) Digits() int {
	switch p {
	case PrecisionTenths:
		return 1
	case PrecisionHundredths:
		return 2
	case PrecisionThousandths:
		return 3
	default:
		return -1
	}
}

// Spec is one catalogue entry.
type Spec struct {
	Name      string // topic suffix, unique
	Address   uint16
	Scale     float64
	Precision Precision
	Encoding  Encoding

	// Postprocess, when set, replaces decimal formatting entirely.
	Postprocess func(v float64) string
}

// Format renders an already scaled reading as its published payload.
func (s Spec) Format(v float64) string {
	if s.Postprocess != nil {
		return s.Postprocess(v)
	}
	return strconv.FormatFloat(v, 'f', s.Precision.Digits(), 64)
}
