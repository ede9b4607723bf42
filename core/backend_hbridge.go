package core

import "simplestepper/config"

// HBridgeBackend drives a motor through a generic H-bridge stepping library
type HBridgeBackend struct {
	Driver CoilDriver
	Config *config.MotorConfig
}

// NewHBridgeBackend wraps a coil driver. cfg is shared with the driver and
// anything converting distances to steps.
func NewHBridgeBackend(driver CoilDriver, cfg *config.MotorConfig) *HBridgeBackend {
	return &HBridgeBackend{Driver: driver, Config: cfg}
}

func (b *HBridgeBackend) Move(steps int32) {
	b.Driver.Step(steps)
}

// Enable is unsupported: the H-bridge path has no disable primitive
func (b *HBridgeBackend) Enable(enabled bool) {
	DebugPrintln("Enable() Not implemented in H-bridge driver")
}

// SetMicrostepsPerRevolution overwrites the configured steps per revolution
func (b *HBridgeBackend) SetMicrostepsPerRevolution(microsteps int) {
	if b.Config != nil {
		b.Config.StepsPerRevolution = microsteps
	}
}

func (b *HBridgeBackend) SetSpeed(rpm int) {
	b.Driver.SetSpeed(rpm)
}

func (b *HBridgeBackend) Kind() BackendKind {
	return BackendHBridge
}
