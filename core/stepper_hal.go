package core

// StepDirDriver is the native interface of a step/direction driver chip
// library (A4982 and similar). Calls cannot fail observably.
type StepDirDriver interface {
	// Move issues steps pulses; the sign selects the direction
	Move(steps int32)

	// Enable energizes the motor coils (holding current on)
	Enable()

	// Disable releases the motor coils
	Disable()

	// SetMicrostep selects the microstep divisor in hardware
	SetMicrostep(microsteps int)

	// SetRPM sets the target speed in revolutions per minute
	SetRPM(rpm int)
}

// CoilDriver is the native interface of a generic H-bridge stepping
// library. There is no primitive to release or hold the coils.
type CoilDriver interface {
	// Step walks the coil sequence steps times; the sign selects the direction
	Step(steps int32)

	// SetSpeed sets the target speed in revolutions per minute
	SetSpeed(rpm int)
}
