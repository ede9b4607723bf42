//go:build rp2040 && !hbridge

package main

import (
	"machine"

	"simplestepper/config"
	"simplestepper/core"
	"simplestepper/drivers/stepdir"
)

// newMotor builds the driver-chip backend. Step and dir pulses come from a
// PIO state machine; enable, chip-select and microstep pins stay on GPIO.
func newMotor(gpio core.GPIODriver, pins config.PinMap, cfg *config.MotorConfig) (*core.Motor, error) {
	pulser, err := newPIOPulser(machine.Pin(pins.Step), machine.Pin(pins.Dir))
	if err != nil {
		return nil, err
	}
	driver, err := stepdir.NewWithPulser(gpio, stepdir.PinsFromConfig(pins), cfg, pulser)
	if err != nil {
		return nil, err
	}
	return core.NewChipBackend(driver), nil
}
