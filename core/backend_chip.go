package core

// ChipBackend drives a motor through a step/direction driver chip
type ChipBackend struct {
	Driver StepDirDriver
}

// NewChipBackend wraps a driver chip library
func NewChipBackend(driver StepDirDriver) *ChipBackend {
	return &ChipBackend{Driver: driver}
}

func (b *ChipBackend) Move(steps int32) {
	b.Driver.Move(steps)
}

func (b *ChipBackend) Enable(enabled bool) {
	if enabled {
		b.Driver.Enable()
	} else {
		b.Driver.Disable()
	}
}

// SetMicrostepsPerRevolution programs the chip's microstep divisor
func (b *ChipBackend) SetMicrostepsPerRevolution(microsteps int) {
	b.Driver.SetMicrostep(microsteps)
}

func (b *ChipBackend) SetSpeed(rpm int) {
	b.Driver.SetRPM(rpm)
}

func (b *ChipBackend) Kind() BackendKind {
	return BackendDriverChip
}
