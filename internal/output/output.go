// Package output handles console output for photoflow: informational and
// diagnostic messages, verbose mode, and a TTY progress line.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// progressWidth is the number of columns blanked when clearing the
// progress line.
const progressWidth = 70

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Enable verbose output
	Writer    io.Writer // Output destination (default: os.Stdout)
	ErrWriter io.Writer // Error output destination (default: os.Stderr)
	IsTTY     bool      // Whether output is a terminal
}

// DefaultConfig returns a Config writing to the standard streams with TTY
// detection.
func DefaultConfig() Config {
	return Config{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		IsTTY:     term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Output writes formatted messages, interleaving them cleanly with the
// progress line when one is active.
type Output struct {
	config Config

	mu     sync.Mutex
	active bool
	total  int
}

// New creates an Output with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	return &Output{config: config}
}

// Info prints a message to the output stream.
func (o *Output) Info(format string, args ...interface{}) {
	o.print(o.config.Writer, format, args...)
}

// Verbose prints a message only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	o.print(o.config.Writer, format, args...)
}

// Error prints a message to the error stream.
func (o *Output) Error(format string, args ...interface{}) {
	o.print(o.config.ErrWriter, format, args...)
}

// IsVerbose reports whether verbose mode is enabled.
func (o *Output) IsVerbose() bool {
	return o.config.Verbose
}

// print clears any active progress line, then writes the message with a
// trailing newline.
func (o *Output) print(w io.Writer, format string, args ...interface{}) {
	o.mu.Lock()
	if o.active && o.config.IsTTY {
		fmt.Fprint(o.config.Writer, "\r"+strings.Repeat(" ", progressWidth)+"\r")
	}
	o.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, msg)
}

// StartProgress begins a progress session over total folders. Progress is
// suppressed on non-TTY output and in verbose mode, where the per-folder
// messages already show activity.
func (o *Output) StartProgress(total int) {
	if !o.config.IsTTY || o.config.Verbose {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = true
	o.total = total
}

// UpdateProgress rewrites the progress line in place.
func (o *Output) UpdateProgress(current int, label string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.active {
		return
	}
	if label == "" {
		label = "Processing folder"
	}
	fmt.Fprintf(o.config.Writer, "\r%s %d/%d...", label, current, o.total)
}

// EndProgress clears the progress line and ends the session.
func (o *Output) EndProgress() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.active {
		return
	}
	o.active = false
	fmt.Fprint(o.config.Writer, "\r"+strings.Repeat(" ", progressWidth)+"\r")
}
