package serial

import (
	"io"
)

// Port represents a serial port connected to the stepper firmware console.
// Implementations: native serial (github.com/tarm/serial) or an in-memory
// pipe in tests.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate of the firmware console UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud matches the firmware console UART
const DefaultBaud = 115200

// DefaultConfig returns a default configuration for the firmware console
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 2000, // long moves reply only when finished
	}
}
