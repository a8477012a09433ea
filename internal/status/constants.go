// internal/status/constants.go
package status

// Inverter device status codes (register 32089).
// These values are defined by the inverter firmware and MUST NOT be configurable.

// ---- IDLE ----

const IdleInitializing uint16 = 0x0000
const IdleISODetecting uint16 = 0x0001
const IdleIrradiationDetecting uint16 = 0x0002

// IdleNoIrradiation is reported at night.
const IdleNoIrradiation uint16 = 0xA000

// ---- RUNNING ----

const Starting uint16 = 0x0100
const OnGrid uint16 = 0x0200

// OnGridLimited means output is derated (power limit or temperature).
const OnGridLimited uint16 = 0x0201

// ---- SHUTDOWN ----

const ShutdownAbnormal uint16 = 0x0300
const ShutdownForced uint16 = 0x0301

// ---- GRID DISPATCH ----

const GridDispatchCosPhiP uint16 = 0x0401
const GridDispatchQU uint16 = 0x0402
