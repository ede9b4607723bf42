//go:build rp2040 && hbridge

package main

import (
	"machine"

	"simplestepper/config"
	"simplestepper/core"
)

// newMotor builds the H-bridge backend on the four configured coil pins.
// Coils are driven by easystepper, which talks to machine pins directly.
func newMotor(_ core.GPIODriver, pins config.PinMap, cfg *config.MotorConfig) (*core.Motor, error) {
	coils, err := newEasyCoils([4]machine.Pin{
		machine.Pin(pins.HBridge[0]),
		machine.Pin(pins.HBridge[1]),
		machine.Pin(pins.HBridge[2]),
		machine.Pin(pins.HBridge[3]),
	}, cfg)
	if err != nil {
		return nil, err
	}
	return core.NewHBridgeBackend(coils, cfg), nil
}
