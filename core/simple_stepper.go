package core

// Single-motor dispatch layer.
//
// The backend is fixed at compile time: callers instantiate the generic
// operations with the concrete backend type (normally the Motor alias picked
// by the hbridge build tag), so there is no runtime branching between
// backends. Handles are pointers owned by the caller; any state the backend
// changes is visible to the caller afterwards.
//
// SetMicrostepsPerRevolution does not mean the same thing on both backends:
// the driver chip programs its microstep divisor, the H-bridge overwrites the
// configured steps per revolution. Both behaviours are kept as-is.

// BackendKind identifies a motor-control backend
type BackendKind uint8

const (
	BackendDriverChip BackendKind = iota
	BackendHBridge
)

// String returns the backend name used in logs and console replies
func (k BackendKind) String() string {
	switch k {
	case BackendDriverChip:
		return "driver-chip"
	case BackendHBridge:
		return "h-bridge"
	default:
		return "unknown"
	}
}

// Backend is the capability set every motor backend provides
type Backend interface {
	Move(steps int32)
	Enable(enabled bool)
	SetMicrostepsPerRevolution(microsteps int)
	SetSpeed(rpm int)
	Kind() BackendKind
}

// Step moves the motor steps steps. Negative values reverse direction.
func Step[B Backend](motor B, steps int32) {
	DebugPrintln("Step() Steps: " + itoa(int(steps)))
	motor.Move(steps)
}

// Enable engages or disengages the motor holding current.
// Only the driver-chip backend can do this; the H-bridge backend logs that
// the request is unsupported.
func Enable[B Backend](motor B, enabled bool) {
	DebugPrintln("Enable() Enable: " + btoa(enabled))
	motor.Enable(enabled)
}

// SetMicrostepsPerRevolution forwards the microstep setting to the backend.
// Driver chip: hardware microstep divisor. H-bridge: replaces the configured
// steps per revolution.
func SetMicrostepsPerRevolution[B Backend](motor B, microsteps int) {
	DebugPrintln("SetMicrostepsPerRevolution() Microsteps: " + itoa(microsteps))
	motor.SetMicrostepsPerRevolution(microsteps)
}

// SetSpeed sets the target speed in RPM. No unit conversion happens here.
func SetSpeed[B Backend](motor B, rpm int) {
	DebugPrintln("SetSpeed() Speed: " + itoa(rpm))
	motor.SetSpeed(rpm)
}
