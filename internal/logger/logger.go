// Package logger reports build pipeline progress on stderr. Nothing is
// written unless verbose mode is on, so the normal CLI output stays
// clean for piping.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes tagged progress lines. All methods are safe for
// concurrent use; the parse and render stages log from worker
// goroutines.
type Logger struct {
	mu      sync.RWMutex
	verbose bool
	out     io.Writer
}

// std is the process-wide logger the CLI configures once at startup.
var std = &Logger{out: os.Stderr}

// SetVerbose turns progress output on or off.
func SetVerbose(v bool) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.verbose = v
}

// IsVerbose reports whether progress output is on.
func IsVerbose() bool {
	std.mu.RLock()
	defer std.mu.RUnlock()
	return std.verbose
}

// SetOutput redirects progress output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.out = w
}

// emit writes one tagged line when verbose is on.
func (l *Logger) emit(tag, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.verbose {
		return
	}
	fmt.Fprintf(l.out, tag+" "+format+"\n", args...)
}

// Debug traces per-document work, one line per file.
func Debug(format string, args ...any) {
	std.emit("[DEBUG]", format, args...)
}

// Info reports stage-level progress.
func Info(format string, args ...any) {
	std.emit("[INFO]", format, args...)
}

// Warn reports a degraded but non-fatal condition, such as an
// unavailable build cache.
func Warn(format string, args ...any) {
	std.emit("[WARN]", format, args...)
}

// Section prints a banner separating one part of the output from the
// next.
func Section(name string) {
	std.mu.RLock()
	defer std.mu.RUnlock()
	if !std.verbose {
		return
	}
	fmt.Fprintf(std.out, "\n=== %s ===\n", name)
}

// Stage prints the banner for a pipeline stage and returns a function
// that reports the elapsed time when the stage finishes.
func Stage(name string) func() {
	Section(name)
	start := time.Now()
	return func() {
		Info("%s finished in %s", name, time.Since(start).Round(time.Millisecond))
	}
}
