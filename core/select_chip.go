//go:build !hbridge

package core

// Motor is the backend compiled into this build
type Motor = ChipBackend

// ActiveBackend is the backend compiled into this build
const ActiveBackend = BackendDriverChip
