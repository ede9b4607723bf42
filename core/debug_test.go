package core

import "testing"

// captureDebug installs a writer collecting every debug line and restores
// the previous writer when the test finishes.
func captureDebug(t *testing.T) *[]string {
	t.Helper()
	lines := &[]string{}
	prev := debugPrintln
	prevEnabled := debugEnabled
	SetDebugWriter(func(s string) { *lines = append(*lines, s) })
	SetDebugEnabled(true)
	t.Cleanup(func() {
		SetDebugWriter(prev)
		SetDebugEnabled(prevEnabled)
	})
	return lines
}

func TestDebugPrintln(t *testing.T) {
	lines := captureDebug(t)

	DebugPrintln("hello")

	if !debugBuild {
		if len(*lines) != 0 {
			t.Errorf("Expected no output on nodebug build, got %v", *lines)
		}
		return
	}
	if len(*lines) != 1 || (*lines)[0] != "hello" {
		t.Errorf("Expected [hello], got %v", *lines)
	}
}

func TestDebugDisabledAtRuntime(t *testing.T) {
	lines := captureDebug(t)
	SetDebugEnabled(false)

	DebugPrintln("dropped")

	if len(*lines) != 0 {
		t.Errorf("Expected no output with debug disabled, got %v", *lines)
	}
	if IsDebugEnabled() {
		t.Error("IsDebugEnabled should be false")
	}
}

func TestDebugNilWriter(t *testing.T) {
	prev := debugPrintln
	defer SetDebugWriter(prev)

	SetDebugWriter(nil)
	DebugPrintln("must not panic")
}
