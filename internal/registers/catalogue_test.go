// internal/registers/catalogue_test.go
package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue_Valid(t *testing.T) {
	require.NoError(t, Validate(Catalogue()))
}

func TestCatalogue_Names(t *testing.T) {
	want := []string{
		"dc1_voltage", "dc1_current", "dc2_voltage", "dc2_current",
		"p1_voltage", "p2_voltage", "p3_voltage",
		"p1_current", "p2_current", "p3_current",
		"energy_daily", "input_power", "output_power", "output_reactive_power",
		"output_power_factor", "frequency", "status", "efficiency",
	}

	var got []string
	for _, s := range Catalogue() {
		got = append(got, s.Name)
	}

	assert.ElementsMatch(t, want, got)
}

func TestCatalogue_LongRegistersDoNotOverlap(t *testing.T) {
	used := map[uint16]string{}
	for _, s := range Catalogue() {
		for w := uint16(0); w < s.Encoding.Words(); w++ {
			addr := s.Address + w
			if prev, ok := used[addr]; ok {
				t.Fatalf("address %d used by %s and %s", addr, prev, s.Name)
			}
			used[addr] = s.Name
		}
	}
}

func TestCatalogue_FreshSlice(t *testing.T) {
	a := Catalogue()
	a[0].Name = "mutated"
	assert.Equal(t, "dc1_voltage", Catalogue()[0].Name)
}

func TestFormat_Precision(t *testing.T) {
	cases := []struct {
		spec Spec
		v    float64
		want string
	}{
		{Spec{Precision: PrecisionTenths}, 230.1, "230.1"},
		{Spec{Precision: PrecisionHundredths}, -123 * 0.01, "-1.23"},
		{Spec{Precision: PrecisionThousandths}, 1234 * 0.001, "1.234"},
		{Spec{Precision: PrecisionHundredths}, 50, "50.00"},
		{Spec{Precision: PrecisionRaw}, 9999, "9999"},
		{Spec{Precision: PrecisionRaw}, 2.5, "2.5"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.spec.Format(c.v))
	}
}

func TestFormat_PostprocessReplacesPrecision(t *testing.T) {
	s := Spec{
		Precision:   PrecisionThousandths,
		Postprocess: func(float64) string { return "custom" },
	}
	assert.Equal(t, "custom", s.Format(1))
}

func TestStatusEntry(t *testing.T) {
	var st Spec
	for _, s := range Catalogue() {
		if s.Name == "status" {
			st = s
		}
	}

	require.NotNil(t, st.Postprocess)
	assert.Equal(t, UnsignedShort, st.Encoding)
	assert.Equal(t, "On-grid", st.Format(512))
	assert.Equal(t, "9999", st.Format(9999))
}

func TestValidate_Rejects(t *testing.T) {
	ok := Spec{Name: "a", Address: 1, Scale: 1, Encoding: SignedShort}

	assert.Error(t, Validate(nil))
	assert.Error(t, Validate([]Spec{ok, ok}), "duplicate name")

	bad := ok
	bad.Scale = 0
	assert.Error(t, Validate([]Spec{bad}), "zero scale")

	bad = ok
	bad.Encoding = 0
	assert.Error(t, Validate([]Spec{bad}), "unknown encoding")

	bad = ok
	bad.Name = ""
	assert.Error(t, Validate([]Spec{bad}), "missing name")
}

func TestEncodingWords(t *testing.T) {
	assert.EqualValues(t, 1, SignedShort.Words())
	assert.EqualValues(t, 1, UnsignedShort.Words())
	assert.EqualValues(t, 2, SignedLong.Words())
}
