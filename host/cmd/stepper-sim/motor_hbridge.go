//go:build hbridge

package main

import (
	"time"

	"simplestepper/config"
	"simplestepper/core"
	"simplestepper/drivers/hbridge"
)

func newMotor(gpio core.GPIODriver, pins config.PinMap, cfg *config.MotorConfig, sleep func(time.Duration)) (*core.Motor, error) {
	driver, err := hbridge.New(gpio, hbridge.PinsFromConfig(pins), cfg)
	if err != nil {
		return nil, err
	}
	driver.Sleep = sleep
	return core.NewHBridgeBackend(driver, cfg), nil
}
