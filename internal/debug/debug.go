// Package debug provides conditional debug logging for placestree.
//
// Debug logging is enabled by setting the PLACESTREE_DEBUG environment
// variable or by passing -debug to the viewer:
//
//	PLACESTREE_DEBUG=1 placesctl dump history.json
//
// When disabled (default), all debug functions are no-ops.
package debug

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

const prefix = "[PLACESTREE] "

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("PLACESTREE_DEBUG") != "" {
		SetEnabled(true)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled switches debug logging on or off. Output goes to stderr
// unless SetOutput was called.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output, the viewer points it at its log file
// because stderr belongs to the terminal screen.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
}

func active() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a debug message if debug logging is enabled.
func Log(format string, args ...any) {
	if l := active(); l != nil {
		l.Printf(format, args...)
	}
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// Dump logs a value in full using spew.
func Dump(name string, v any) {
	if l := active(); l != nil {
		l.Printf("%s:\n%s", name, spew.Sdump(v))
	}
}

// Assert logs msg when cond is false. It never panics; a broken internal
// invariant shows up in the debug log instead of taking the viewer down.
func Assert(cond bool, msg string, args ...any) {
	if cond {
		return
	}
	Log("assertion failed: "+msg, args...)
}
