package core

import (
	"math"
	"testing"

	"simplestepper/config"
)

// mockChip records every call made to a driver chip
type mockChip struct {
	calls      []string
	moves      []int32
	microsteps int
	rpm        int
}

func (m *mockChip) Move(steps int32) {
	m.calls = append(m.calls, "move")
	m.moves = append(m.moves, steps)
}
func (m *mockChip) Enable()  { m.calls = append(m.calls, "enable") }
func (m *mockChip) Disable() { m.calls = append(m.calls, "disable") }
func (m *mockChip) SetMicrostep(microsteps int) {
	m.calls = append(m.calls, "microstep")
	m.microsteps = microsteps
}
func (m *mockChip) SetRPM(rpm int) {
	m.calls = append(m.calls, "rpm")
	m.rpm = rpm
}

// mockCoils records every call made to an H-bridge library
type mockCoils struct {
	steps []int32
	speed int
}

func (m *mockCoils) Step(steps int32) { m.steps = append(m.steps, steps) }
func (m *mockCoils) SetSpeed(rpm int) { m.speed = rpm }

func TestStepDirection(t *testing.T) {
	chip := &mockChip{}
	cb := NewChipBackend(chip)
	coils := &mockCoils{}
	hb := NewHBridgeBackend(coils, config.Default())

	for _, n := range []int32{1, 200, 12345} {
		chip.moves = nil
		coils.steps = nil

		Step(cb, n)
		Step(cb, -n)
		Step(hb, n)
		Step(hb, -n)

		if len(chip.moves) != 2 || chip.moves[0] != n || chip.moves[1] != -n {
			t.Errorf("Chip moves for %d: %v", n, chip.moves)
		}
		if len(coils.steps) != 2 || coils.steps[0] != n || coils.steps[1] != -n {
			t.Errorf("Coil steps for %d: %v", n, coils.steps)
		}
	}
}

func TestEnableDriverChipSequence(t *testing.T) {
	chip := &mockChip{}
	motor := NewChipBackend(chip)

	Enable(motor, false)
	Enable(motor, true)

	if len(chip.calls) != 2 || chip.calls[0] != "disable" || chip.calls[1] != "enable" {
		t.Errorf("Expected [disable enable], got %v", chip.calls)
	}
}

func TestEnableHBridgeUnsupported(t *testing.T) {
	lines := captureDebug(t)
	coils := &mockCoils{}
	cfg := config.Default()
	motor := NewHBridgeBackend(coils, cfg)

	Enable(motor, true)

	if len(coils.steps) != 0 || coils.speed != 0 || *cfg != *config.Default() {
		t.Error("Enable on H-bridge must not touch the driver or configuration")
	}
	if !debugBuild {
		return
	}
	expected := []string{
		"Enable() Enable: 1",
		"Enable() Not implemented in H-bridge driver",
	}
	if len(*lines) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, *lines)
	}
	for i := range expected {
		if (*lines)[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], (*lines)[i])
		}
	}
}

func TestSetMicrostepsDiverges(t *testing.T) {
	// Driver chip: hardware register
	chip := &mockChip{}
	SetMicrostepsPerRevolution(NewChipBackend(chip), 16)

	if chip.microsteps != 16 {
		t.Errorf("Expected chip microsteps 16, got %d", chip.microsteps)
	}
	if len(chip.calls) != 1 || chip.calls[0] != "microstep" {
		t.Errorf("Expected a single microstep call, got %v", chip.calls)
	}

	// H-bridge: steps per revolution overwritten
	coils := &mockCoils{}
	cfg := config.Default()
	SetMicrostepsPerRevolution(NewHBridgeBackend(coils, cfg), 400)

	if cfg.StepsPerRevolution != 400 {
		t.Errorf("Expected steps/rev 400, got %d", cfg.StepsPerRevolution)
	}
	if cfg.Microsteps != config.MicroSteps {
		t.Errorf("H-bridge backend changed microsteps to %d", cfg.Microsteps)
	}
}

func TestSetSpeed(t *testing.T) {
	chip := &mockChip{}
	coils := &mockCoils{}

	SetSpeed(NewChipBackend(chip), 120)
	SetSpeed(NewHBridgeBackend(coils, config.Default()), 30)

	if chip.rpm != 120 {
		t.Errorf("Expected chip rpm 120, got %d", chip.rpm)
	}
	if coils.speed != 30 {
		t.Errorf("Expected coil speed 30, got %d", coils.speed)
	}
}

func TestDispatchLogLines(t *testing.T) {
	if !debugBuild {
		t.Skip("debug output compiled out")
	}
	lines := captureDebug(t)
	motor := NewChipBackend(&mockChip{})

	Step(motor, -42)
	Enable(motor, false)
	SetMicrostepsPerRevolution(motor, 4)
	SetSpeed(motor, 60)

	expected := []string{
		"Step() Steps: -42",
		"Enable() Enable: 0",
		"SetMicrostepsPerRevolution() Microsteps: 4",
		"SetSpeed() Speed: 60",
	}
	if len(*lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %v", len(expected), *lines)
	}
	for i := range expected {
		if (*lines)[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], (*lines)[i])
		}
	}
}

func TestStepLogsFullRange(t *testing.T) {
	if !debugBuild {
		t.Skip("debug output compiled out")
	}
	lines := captureDebug(t)
	chip := &mockChip{}

	Step(NewChipBackend(chip), math.MinInt32)

	if len(*lines) != 1 || (*lines)[0] != "Step() Steps: -2147483648" {
		t.Errorf("Unexpected log %v", *lines)
	}
	if len(chip.moves) != 1 || chip.moves[0] != math.MinInt32 {
		t.Errorf("Unexpected moves %v", chip.moves)
	}
}

func TestDispatchSilentWhenDisabled(t *testing.T) {
	lines := captureDebug(t)
	SetDebugEnabled(false)
	chip := &mockChip{}
	motor := NewChipBackend(chip)

	Step(motor, 10)
	Enable(motor, true)
	SetMicrostepsPerRevolution(motor, 2)
	SetSpeed(motor, 90)

	if len(*lines) != 0 {
		t.Errorf("Expected no debug output, got %v", *lines)
	}
	expected := []string{"move", "enable", "microstep", "rpm"}
	if len(chip.calls) != len(expected) {
		t.Fatalf("Expected calls %v, got %v", expected, chip.calls)
	}
	for i := range expected {
		if chip.calls[i] != expected[i] {
			t.Errorf("Call %d: expected %s, got %s", i, expected[i], chip.calls[i])
		}
	}
}

func TestActiveBackend(t *testing.T) {
	var m Motor
	if m.Kind() != ActiveBackend {
		t.Errorf("Motor kind %v does not match active backend %v", m.Kind(), ActiveBackend)
	}
}
