package main

import (
	"fmt"
	"os"

	"simplestepper/core"
)

// simGPIO keeps pin levels in memory and optionally traces changes
type simGPIO struct {
	levels map[core.GPIOPin]bool
	trace  bool
}

func newSimGPIO(trace bool) *simGPIO {
	return &simGPIO{
		levels: make(map[core.GPIOPin]bool),
		trace:  trace,
	}
}

func (g *simGPIO) ConfigureOutput(pin core.GPIOPin) error {
	g.levels[pin] = false
	return nil
}

func (g *simGPIO) SetPin(pin core.GPIOPin, value bool) error {
	if _, ok := g.levels[pin]; !ok {
		return fmt.Errorf("pin %d not configured", pin)
	}
	if g.trace && g.levels[pin] != value {
		level := 0
		if value {
			level = 1
		}
		fmt.Fprintf(os.Stderr, "pin %d -> %d\n", pin, level)
	}
	g.levels[pin] = value
	return nil
}
