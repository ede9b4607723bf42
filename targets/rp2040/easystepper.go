//go:build rp2040 && hbridge

package main

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/easystepper"

	"simplestepper/config"
	"simplestepper/core"
)

// easyCoils adapts easystepper to core.CoilDriver. easystepper fixes its
// step delay when the device is created, so the device is rebuilt whenever
// speed or steps per revolution change in cfg.
type easyCoils struct {
	pins [4]machine.Pin
	cfg  *config.MotorConfig

	dev       *easystepper.Device
	stepCount int
	rpm       int
}

func newEasyCoils(pins [4]machine.Pin, cfg *config.MotorConfig) (*easyCoils, error) {
	e := &easyCoils{pins: pins, cfg: cfg}
	if err := e.rebuild(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *easyCoils) Step(steps int32) {
	if e.cfg.StepsPerRevolution != e.stepCount || e.cfg.RPM != e.rpm {
		if err := e.rebuild(); err != nil {
			core.DebugPrintln("[EASYSTEPPER] " + err.Error())
			return
		}
	}
	e.dev.Move(steps)
}

func (e *easyCoils) SetSpeed(rpm int) {
	e.cfg.RPM = rpm
}

func (e *easyCoils) rebuild() error {
	if e.cfg.StepsPerRevolution <= 0 || e.cfg.RPM <= 0 {
		return errors.New("steps per revolution and rpm must be positive")
	}
	dev, err := easystepper.New(easystepper.DeviceConfig{
		Pin1:      e.pins[0],
		Pin2:      e.pins[1],
		Pin3:      e.pins[2],
		Pin4:      e.pins[3],
		StepCount: uint(e.cfg.StepsPerRevolution),
		RPM:       uint(e.cfg.RPM),
		Mode:      easystepper.ModeFour,
	})
	if err != nil {
		return errors.New("error creating stepper: " + err.Error())
	}
	dev.Configure()
	e.dev = dev
	e.stepCount = e.cfg.StepsPerRevolution
	e.rpm = e.cfg.RPM
	return nil
}
