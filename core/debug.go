package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled gates output at runtime on debug builds
	debugEnabled bool = true
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output at runtime.
// Has no effect on builds tagged nodebug.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugBuild && debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
// On nodebug builds the condition is constant false and the call compiles away.
func DebugPrintln(msg string) {
	if debugBuild && debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}
