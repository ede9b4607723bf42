package config

import (
	"encoding/json"
	"errors"
	"math"
)

// Pin map for a stepper on the A4982 (RAMPS) driver
const (
	StepPin   = 54
	DirPin    = 55
	EnablePin = 38
	CSPin     = 53
)

// Pin map for a stepper wired through an H-bridge
const (
	HBridgeP1 = 2
	HBridgeP2 = 3
	HBridgeP3 = 4
	HBridgeP4 = 5
)

const (
	MicroSteps = 1

	// Stepper motor steps per revolution
	DefaultStepsPerRevolution = 200

	// Stepper motor revolutions per millimeter of linear movement
	DefaultRevolutionsPerMillimeter = 1

	// Default stepper speed (rpm)
	DefaultStepperRPM = 60
)

var (
	ErrInvalidConfig = errors.New("invalid motor configuration")
	ErrStepRange     = errors.New("step count out of range")
)

// MotorConfig holds the values used to convert distances into steps.
// It is built once during setup (Default or Load), handed to the backend,
// and read from then on. The H-bridge backend overwrites StepsPerRevolution
// when asked to change microsteps.
type MotorConfig struct {
	StepsPerRevolution       int `json:"steps_per_revolution"`
	RevolutionsPerMillimeter int `json:"revolutions_per_millimeter"`
	RPM                      int `json:"rpm"`
	Microsteps               int `json:"microsteps"`
}

// PinMap assigns logical signal roles to controller pins
type PinMap struct {
	Step    uint8    `json:"step"`
	Dir     uint8    `json:"dir"`
	Enable  uint8    `json:"enable"`
	CS      uint8    `json:"cs"`
	MS1     uint8    `json:"ms1,omitempty"` // 0 = not wired
	MS2     uint8    `json:"ms2,omitempty"` // 0 = not wired
	HBridge [4]uint8 `json:"hbridge"`
}

// MachineConfig is the complete JSON configuration
type MachineConfig struct {
	Motor MotorConfig `json:"motor"`
	Pins  PinMap      `json:"pins"`
}

// Default returns the compiled-in motor configuration
func Default() *MotorConfig {
	return &MotorConfig{
		StepsPerRevolution:       DefaultStepsPerRevolution,
		RevolutionsPerMillimeter: DefaultRevolutionsPerMillimeter,
		RPM:                      DefaultStepperRPM,
		Microsteps:               MicroSteps,
	}
}

// DefaultPins returns the compiled-in pin map
func DefaultPins() PinMap {
	return PinMap{
		Step:    StepPin,
		Dir:     DirPin,
		Enable:  EnablePin,
		CS:      CSPin,
		HBridge: [4]uint8{HBridgeP1, HBridgeP2, HBridgeP3, HBridgeP4},
	}
}

// Load parses a JSON configuration string and returns a MachineConfig
func Load(jsonData []byte) (*MachineConfig, error) {
	var cfg MachineConfig

	err := json.Unmarshal(jsonData, &cfg)
	if err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in missing configuration values with the compiled-in defaults
func applyDefaults(cfg *MachineConfig) {
	if cfg.Motor.StepsPerRevolution == 0 {
		cfg.Motor.StepsPerRevolution = DefaultStepsPerRevolution
	}
	if cfg.Motor.RevolutionsPerMillimeter == 0 {
		cfg.Motor.RevolutionsPerMillimeter = DefaultRevolutionsPerMillimeter
	}
	if cfg.Motor.RPM == 0 {
		cfg.Motor.RPM = DefaultStepperRPM
	}
	if cfg.Motor.Microsteps == 0 {
		cfg.Motor.Microsteps = MicroSteps
	}

	def := DefaultPins()
	if cfg.Pins.Step == 0 && cfg.Pins.Dir == 0 {
		cfg.Pins.Step = def.Step
		cfg.Pins.Dir = def.Dir
	}
	if cfg.Pins.Enable == 0 {
		cfg.Pins.Enable = def.Enable
	}
	if cfg.Pins.CS == 0 {
		cfg.Pins.CS = def.CS
	}
	if cfg.Pins.HBridge == [4]uint8{} {
		cfg.Pins.HBridge = def.HBridge
	}
}

// Validate reports whether the values are usable for distance conversion.
// Nothing in the dispatch path calls it; callers that care check explicitly.
func (c *MotorConfig) Validate() error {
	if c.StepsPerRevolution <= 0 || c.RevolutionsPerMillimeter <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// StepsForDistance converts a linear distance in millimeters into motor steps,
// truncated toward zero. Distances that are not finite or need more steps
// than fit in an int32 return ErrStepRange.
func (c *MotorConfig) StepsForDistance(mm float64) (int32, error) {
	usteps := c.Microsteps
	if usteps < 1 {
		usteps = 1
	}
	steps := math.Trunc(mm * float64(c.RevolutionsPerMillimeter) * float64(c.StepsPerRevolution) * float64(usteps))
	if math.IsNaN(steps) || steps > math.MaxInt32 || steps < math.MinInt32 {
		return 0, ErrStepRange
	}
	return int32(steps), nil
}
