package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"simplestepper/config"
	"simplestepper/console"
	"simplestepper/core"
)

func TestSimGPIORejectsUnconfiguredPin(t *testing.T) {
	g := newSimGPIO(false)

	if err := g.SetPin(3, true); err == nil {
		t.Error("Expected error for unconfigured pin")
	}
	if err := g.ConfigureOutput(3); err != nil {
		t.Fatal(err)
	}
	if err := g.SetPin(3, true); err != nil || !g.levels[3] {
		t.Errorf("Expected pin 3 high, got %v (err %v)", g.levels[3], err)
	}
}

func TestLoadBoardDefaults(t *testing.T) {
	board, err := loadBoard("")
	if err != nil {
		t.Fatal(err)
	}
	if board.Motor != *config.Default() || board.Pins != config.DefaultPins() {
		t.Errorf("Unexpected default board %+v", board)
	}
	if _, err := loadBoard("does-not-exist.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSimulatedSession(t *testing.T) {
	board, _ := loadBoard("")
	cfg := &board.Motor
	gpio := newSimGPIO(false)

	motor, err := newMotor(gpio, board.Pins, cfg, func(time.Duration) {})
	if err != nil {
		t.Fatalf("newMotor failed: %v", err)
	}

	out := &bytes.Buffer{}
	script := "SPEED 120\nSTEP 20\nMOVE -0.1\nSTATUS\n"
	if err := console.New(motor, cfg, strings.NewReader(script), out).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 replies, got %q", out.String())
	}
	if !strings.Contains(lines[3], "backend="+core.ActiveBackend.String()) {
		t.Errorf("Status should name the active backend, got %q", lines[3])
	}
	if !strings.Contains(lines[3], "rpm=120") {
		t.Errorf("Status should report the new speed, got %q", lines[3])
	}
}
