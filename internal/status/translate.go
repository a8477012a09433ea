// internal/status/translate.go
package status

import "strconv"

var labels = map[uint16]string{
	IdleInitializing:         "Idle Initialising",
	IdleISODetecting:         "Idle ISO Detecting",
	IdleIrradiationDetecting: "Idle Irradiation Detecting",
	Starting:                 "Starting",
	OnGrid:                   "On-grid",
	OnGridLimited:            "On-grid Limited",
	ShutdownAbnormal:         "Shutdown Abnormal",
	ShutdownForced:           "Shutdown Forced",
	GridDispatchCosPhiP:      "Grid Dispatch: cosψ-P Curve",
	GridDispatchQU:           "Grid Dispatch: Q-U Curve",
	IdleNoIrradiation:        "Idle: No Irradiation",
}

// Lookup returns the label for a status code.
func Lookup(code uint16) (string, bool) {
	l, ok := labels[code]
	return l, ok
}

// Translate returns the label for a status code, or the code itself in
// decimal when the firmware reports a code not in the table.
// Pure. Never fails.
func Translate(code uint16) string {
	if l, ok := labels[code]; ok {
		return l
	}
	return strconv.FormatUint(uint64(code), 10)
}
