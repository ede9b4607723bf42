//go:build rp2040

package main

import (
	"context"
	_ "embed"
	"machine"
	"time"

	"simplestepper/config"
	"simplestepper/console"
	"simplestepper/core"
)

// Pin map and motor settings for this board; missing values fall back to
// the compiled-in defaults.
//
//go:embed board.json
var boardJSON []byte

// ledBlink blinks the LED a specific number of times for diagnostics
func ledBlink(count int) {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for i := 0; i < count; i++ {
		led.High()
		time.Sleep(150 * time.Millisecond)
		led.Low()
		time.Sleep(150 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)
}

func main() {
	InitUSB()
	core.SetDebugWriter(console.DebugWriter(machine.Serial))

	board, err := config.Load(boardJSON)
	if err != nil {
		core.DebugPrintln("[MAIN] Bad board config: " + err.Error())
		board = &config.MachineConfig{Motor: *config.Default(), Pins: config.DefaultPins()}
	}
	cfg := &board.Motor

	motor, err := newMotor(NewRPGPIODriver(), board.Pins, cfg)
	if err != nil {
		core.DebugPrintln("[MAIN] Motor init failed: " + err.Error())
		for {
			ledBlink(3)
		}
	}

	core.SetSpeed(motor, cfg.RPM)
	core.DebugPrintln("[MAIN] Backend: " + core.ActiveBackend.String())

	c := console.New(motor, cfg, serialReader{}, machine.Serial)
	for {
		if err := c.Run(context.Background()); err != nil {
			core.DebugPrintln("[MAIN] Console stopped: " + err.Error())
		}
		c = console.New(motor, cfg, serialReader{}, machine.Serial)
	}
}
