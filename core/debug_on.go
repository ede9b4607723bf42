//go:build !nodebug

package core

// debugBuild is true unless the firmware is built with -tags nodebug
const debugBuild = true
