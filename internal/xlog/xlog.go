// Package xlog is a thin, level-tagged wrapper around the standard
// library logger. It exists so call sites read the same way throughout
// the codebase (log.Printf with a bracketed component/level tag) without
// pulling in a structured logging framework the rest of the stack
// doesn't use either.
package xlog

import (
	"log"
	"os"
)

var std = log.New(os.Stderr, "", log.LstdFlags)

// Infof logs an informational message.
func Infof(format string, args ...any) {
	std.Printf("[info] "+format, args...)
}

// Warnf logs a recoverable anomaly — an unknown reference number on
// modify/delete/execute/replace, a reduce-by exceeding outstanding
// quantity, and similar best-effort situations the engine tolerates.
func Warnf(format string, args ...any) {
	std.Printf("[warn] "+format, args...)
}

// Errorf logs a data or I/O error that could not be handled locally.
func Errorf(format string, args ...any) {
	std.Printf("[error] "+format, args...)
}
