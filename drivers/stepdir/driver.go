// Package stepdir drives a step/direction stepper driver chip such as the
// Allegro A4982 found on RAMPS boards.
package stepdir

import (
	"strconv"
	"time"

	"simplestepper/config"
	"simplestepper/core"
)

// Minimum step pulse high time; the A4982 needs 1µs
const PulseWidth = 2 * time.Microsecond

// Pins assigns driver signals to GPIO pins.
// MS1/MS2 are optional; zero means the microstep inputs are strapped on the board.
type Pins struct {
	Step   core.GPIOPin
	Dir    core.GPIOPin
	Enable core.GPIOPin // active low
	CS     core.GPIOPin // held low while the driver is in use
	MS1    core.GPIOPin
	MS2    core.GPIOPin
}

// PinsFromConfig converts a configured pin map
func PinsFromConfig(p config.PinMap) Pins {
	return Pins{
		Step:   core.GPIOPin(p.Step),
		Dir:    core.GPIOPin(p.Dir),
		Enable: core.GPIOPin(p.Enable),
		CS:     core.GPIOPin(p.CS),
		MS1:    core.GPIOPin(p.MS1),
		MS2:    core.GPIOPin(p.MS2),
	}
}

// MS1/MS2 levels for each supported divisor
var microstepTable = map[int][2]bool{
	1:  {false, false},
	2:  {true, false},
	4:  {false, true},
	16: {true, true},
}

var _ core.StepDirDriver = (*Driver)(nil)

// Driver implements core.StepDirDriver over a GPIODriver
type Driver struct {
	gpio core.GPIODriver
	pins Pins
	cfg  *config.MotorConfig

	pulser Pulser // nil: step/dir are bit-banged over gpio

	position int64
	enabled  bool
	err      error

	// Sleep waits between pulse edges; tests replace it
	Sleep func(time.Duration)
}

// Pulser emits a train of step pulses after setting the direction line.
// It owns the step and dir pins; Pulse returns once the train is done.
type Pulser interface {
	Pulse(count uint32, forward bool, period time.Duration)
}

// New configures the driver pins and leaves the motor disabled.
// cfg supplies steps per revolution and speed; its Microsteps field is kept
// in sync with the hardware divisor.
func New(gpio core.GPIODriver, pins Pins, cfg *config.MotorConfig) (*Driver, error) {
	return NewWithPulser(gpio, pins, cfg, nil)
}

// NewWithPulser is New with step generation handed to pulser. Only the
// enable, chip-select and microstep pins are driven through gpio.
func NewWithPulser(gpio core.GPIODriver, pins Pins, cfg *config.MotorConfig, pulser Pulser) (*Driver, error) {
	d := &Driver{
		gpio:   gpio,
		pins:   pins,
		cfg:    cfg,
		pulser: pulser,
		Sleep:  time.Sleep,
	}

	outputs := []core.GPIOPin{pins.Enable, pins.CS}
	if pulser == nil {
		outputs = append(outputs, pins.Step, pins.Dir)
	}
	if d.hasMicrostepPins() {
		outputs = append(outputs, pins.MS1, pins.MS2)
	}
	for _, pin := range outputs {
		if err := gpio.ConfigureOutput(pin); err != nil {
			return nil, err
		}
	}

	if pulser == nil {
		d.set(pins.Step, false)
		d.set(pins.Dir, false)
	}
	d.set(pins.CS, false)
	d.set(pins.Enable, true)
	if d.cfg.Microsteps < 1 {
		d.cfg.Microsteps = 1
	}
	d.writeMicrostep(d.cfg.Microsteps)
	if d.err != nil {
		return nil, d.err
	}

	core.DebugPrintln("[STEPDIR] Driver initialized: step=" + strconv.Itoa(int(pins.Step)) + " dir=" + strconv.Itoa(int(pins.Dir)))
	return d, nil
}

// Move issues |steps| pulses; positive steps drive the direction pin high
func (d *Driver) Move(steps int32) {
	if steps == 0 {
		return
	}

	forward := steps > 0
	count := int64(steps)
	if !forward {
		count = -count
	}

	if d.pulser != nil {
		d.pulser.Pulse(uint32(count), forward, d.StepPeriod())
	} else {
		d.bitBang(count, forward)
	}

	if forward {
		d.position += count
	} else {
		d.position -= count
	}
}

func (d *Driver) bitBang(count int64, forward bool) {
	d.set(d.pins.Dir, forward)

	period := d.StepPeriod()
	low := period - PulseWidth
	if low < 0 {
		low = 0
	}
	for i := int64(0); i < count; i++ {
		d.set(d.pins.Step, true)
		d.Sleep(PulseWidth)
		d.set(d.pins.Step, false)
		d.Sleep(low)
	}
}

// Enable drives the enable pin low, energizing the coils
func (d *Driver) Enable() {
	d.set(d.pins.Enable, false)
	d.enabled = true
}

// Disable releases the coils
func (d *Driver) Disable() {
	d.set(d.pins.Enable, true)
	d.enabled = false
}

// SetMicrostep selects 1, 2, 4 or 16 microsteps. Other values are ignored.
func (d *Driver) SetMicrostep(microsteps int) {
	if _, ok := microstepTable[microsteps]; !ok {
		core.DebugPrintln("[STEPDIR] Unsupported microsteps: " + strconv.Itoa(microsteps))
		return
	}
	d.writeMicrostep(microsteps)
	d.cfg.Microsteps = microsteps
}

// SetRPM sets the target speed
func (d *Driver) SetRPM(rpm int) {
	d.cfg.RPM = rpm
}

// StepPeriod is the time between pulses at the configured speed
func (d *Driver) StepPeriod() time.Duration {
	pulsesPerMinute := int64(d.cfg.RPM) * int64(d.cfg.StepsPerRevolution) * int64(d.cfg.Microsteps)
	if pulsesPerMinute <= 0 {
		return 0
	}
	return time.Minute / time.Duration(pulsesPerMinute)
}

// Position returns the net number of pulses issued, signed by direction
func (d *Driver) Position() int64 {
	return d.position
}

// Enabled reports whether the coils are energized
func (d *Driver) Enabled() bool {
	return d.enabled
}

// Microsteps returns the active microstep divisor
func (d *Driver) Microsteps() int {
	return d.cfg.Microsteps
}

// Err returns the first GPIO error seen, if any
func (d *Driver) Err() error {
	return d.err
}

func (d *Driver) hasMicrostepPins() bool {
	return d.pins.MS1 != 0 || d.pins.MS2 != 0
}

func (d *Driver) writeMicrostep(microsteps int) {
	if !d.hasMicrostepPins() {
		return
	}
	levels, ok := microstepTable[microsteps]
	if !ok {
		return
	}
	d.set(d.pins.MS1, levels[0])
	d.set(d.pins.MS2, levels[1])
}

func (d *Driver) set(pin core.GPIOPin, value bool) {
	if err := d.gpio.SetPin(pin, value); err != nil && d.err == nil {
		d.err = err
	}
}
