// Package hbridge steps a four-wire motor through an H-bridge with the
// classic two-coil full-step sequence.
package hbridge

import (
	"time"

	"simplestepper/config"
	"simplestepper/core"
)

// Coil levels for pins 1-4, one row per step
var sequence = [4][4]bool{
	{true, false, true, false},
	{false, true, true, false},
	{false, true, false, true},
	{true, false, false, true},
}

var _ core.CoilDriver = (*Driver)(nil)

// Driver implements core.CoilDriver over a GPIODriver
type Driver struct {
	gpio core.GPIODriver
	pins [4]core.GPIOPin
	cfg  *config.MotorConfig

	phase    int
	position int64
	err      error

	// Sleep waits between steps; tests replace it
	Sleep func(time.Duration)
}

// New configures the four coil pins. cfg is read on every move so a change
// to StepsPerRevolution or RPM takes effect on the next Step call.
func New(gpio core.GPIODriver, pins [4]core.GPIOPin, cfg *config.MotorConfig) (*Driver, error) {
	for _, pin := range pins {
		if err := gpio.ConfigureOutput(pin); err != nil {
			return nil, err
		}
	}
	d := &Driver{
		gpio:  gpio,
		pins:  pins,
		cfg:   cfg,
		Sleep: time.Sleep,
	}
	d.Release()
	if d.err != nil {
		return nil, d.err
	}
	return d, nil
}

// PinsFromConfig converts a configured pin map
func PinsFromConfig(p config.PinMap) [4]core.GPIOPin {
	var pins [4]core.GPIOPin
	for i, pin := range p.HBridge {
		pins[i] = core.GPIOPin(pin)
	}
	return pins
}

// Step walks the sequence |steps| times, forward for positive steps
func (d *Driver) Step(steps int32) {
	delta := 1
	count := int64(steps)
	if steps < 0 {
		delta = -1
		count = -count
	}

	delay := d.StepDelay()
	for i := int64(0); i < count; i++ {
		d.Sleep(delay)
		d.phase = (d.phase + delta + len(sequence)) % len(sequence)
		d.position += int64(delta)
		d.writePhase()
	}
}

// SetSpeed sets the target speed in RPM
func (d *Driver) SetSpeed(rpm int) {
	d.cfg.RPM = rpm
}

// StepDelay is the time between coil changes at the configured speed
func (d *Driver) StepDelay() time.Duration {
	perMinute := int64(d.cfg.StepsPerRevolution) * int64(d.cfg.RPM)
	if perMinute <= 0 {
		return 0
	}
	return time.Minute / time.Duration(perMinute)
}

// Release de-energizes all coils
func (d *Driver) Release() {
	for _, pin := range d.pins {
		d.set(pin, false)
	}
}

// Position returns the net number of steps taken
func (d *Driver) Position() int64 {
	return d.position
}

// Phase returns the current index into the coil sequence
func (d *Driver) Phase() int {
	return d.phase
}

// Err returns the first GPIO error seen, if any
func (d *Driver) Err() error {
	return d.err
}

func (d *Driver) writePhase() {
	levels := sequence[d.phase]
	for i, pin := range d.pins {
		d.set(pin, levels[i])
	}
}

func (d *Driver) set(pin core.GPIOPin, value bool) {
	if err := d.gpio.SetPin(pin, value); err != nil && d.err == nil {
		d.err = err
	}
}
