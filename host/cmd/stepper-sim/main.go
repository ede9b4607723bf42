// stepper-sim runs the firmware console on stdin/stdout against simulated
// GPIO, so command scripts and the host client can be tried without a board.
// Build with -tags hbridge to simulate the H-bridge backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"simplestepper/config"
	"simplestepper/console"
	"simplestepper/core"
)

var (
	configFile = flag.String("config", "", "JSON board configuration (defaults if empty)")
	fast       = flag.Bool("fast", false, "Skip step timing delays")
	trace      = flag.Bool("trace", false, "Print every pin change to stderr")
	quiet      = flag.Bool("quiet", false, "Disable debug output")
)

func main() {
	flag.Parse()

	board, err := loadBoard(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := &board.Motor

	core.SetDebugWriter(console.DebugWriter(os.Stdout))
	core.SetDebugEnabled(!*quiet)

	gpio := newSimGPIO(*trace)
	sleep := time.Sleep
	if *fast {
		sleep = func(time.Duration) {}
	}

	motor, err := newMotor(gpio, board.Pins, cfg, sleep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stderr, "stepper-sim: %s backend, %d steps/rev, %d rpm\n",
		core.ActiveBackend, cfg.StepsPerRevolution, cfg.RPM)

	if err := console.New(motor, cfg, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadBoard(path string) (*config.MachineConfig, error) {
	if path == "" {
		return &config.MachineConfig{Motor: *config.Default(), Pins: config.DefaultPins()}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	board, err := config.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return board, nil
}
