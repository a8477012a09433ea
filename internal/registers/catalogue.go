// internal/registers/catalogue.go
package registers

import (
	"errors"
	"fmt"

	"github.com/tamzrod/sun2000-bridge/internal/status"
)

// Catalogue returns the inverter measurement registers.
// A fresh slice is returned on every call; callers own it.
func Catalogue() []Spec {
	return []Spec{
		// ---- DC strings ----
		{Name: "dc1_voltage", Address: 32016, Scale: 0.1, Precision: PrecisionTenths, Encoding: SignedShort},
		{Name: "dc1_current", Address: 32017, Scale: 0.01, Precision: PrecisionHundredths, Encoding: SignedShort},
		{Name: "dc2_voltage", Address: 32018, Scale: 0.1, Precision: PrecisionTenths, Encoding: SignedShort},
		{Name: "dc2_current", Address: 32019, Scale: 0.01, Precision: PrecisionHundredths, Encoding: SignedShort},

		// ---- AC phases ----
		{Name: "p1_voltage", Address: 32069, Scale: 0.1, Precision: PrecisionTenths, Encoding: SignedShort},
		{Name: "p2_voltage", Address: 32070, Scale: 0.1, Precision: PrecisionTenths, Encoding: SignedShort},
		{Name: "p3_voltage", Address: 32071, Scale: 0.1, Precision: PrecisionTenths, Encoding: SignedShort},

		{Name: "p1_current", Address: 32072, Scale: 0.001, Precision: PrecisionThousandths, Encoding: SignedLong},
		{Name: "p2_current", Address: 32074, Scale: 0.001, Precision: PrecisionThousandths, Encoding: SignedLong},
		{Name: "p3_current", Address: 32076, Scale: 0.001, Precision: PrecisionThousandths, Encoding: SignedLong},

		// ---- energy / power ----
		{Name: "energy_daily", Address: 32114, Scale: 0.01, Precision: PrecisionHundredths, Encoding: SignedLong},
		{Name: "input_power", Address: 32064, Scale: 0.001, Precision: PrecisionThousandths, Encoding: SignedLong},
		{Name: "output_power", Address: 32080, Scale: 0.001, Precision: PrecisionThousandths, Encoding: SignedLong},
		{Name: "output_reactive_power", Address: 32082, Scale: 0.001, Precision: PrecisionThousandths, Encoding: SignedLong},
		{Name: "output_power_factor", Address: 32084, Scale: 0.001, Precision: PrecisionThousandths, Encoding: SignedShort},
		{Name: "frequency", Address: 32085, Scale: 0.01, Precision: PrecisionHundredths, Encoding: SignedShort},
		{Name: "efficiency", Address: 32086, Scale: 0.01, Precision: PrecisionHundredths, Encoding: SignedShort},

		// ---- device state ----
		{Name: "status", Address: 32089, Scale: 1, Precision: PrecisionRaw, Encoding: UnsignedShort, Postprocess: statusLabel},
	}
}

func statusLabel(v float64) string {
	return status.Translate(uint16(v))
}

// Validate checks a catalogue for unique names, known encodings and
// positive scales.
func Validate(specs []Spec) error {
	if len(specs) == 0 {
		return errors.New("registers: empty catalogue")
	}

	seen := make(map[string]struct{}, len(specs))

	for _, s := range specs {
		if s.Name == "" {
			return fmt.Errorf("registers: entry at address %d has no name", s.Address)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("registers: duplicate name %q", s.Name)
		}
		seen[s.Name] = struct{}{}

		switch s.Encoding {
		case SignedShort, UnsignedShort, SignedLong:
		default:
			return fmt.Errorf("registers: %s: unknown %s", s.Name, s.Encoding)
		}

		if !(s.Scale > 0) {
			return fmt.Errorf("registers: %s: scale must be positive, got %v", s.Name, s.Scale)
		}
	}

	return nil
}
