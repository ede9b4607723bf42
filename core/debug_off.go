//go:build nodebug

package core

const debugBuild = false
