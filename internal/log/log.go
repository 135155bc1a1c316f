// Package log is a small verbosity-levelled logger shared by the commands.
// Level 0 messages are always printed; higher levels need --vv.
package log

import (
	"fmt"
	"io"
	golog "log"
	"os"
	"sync/atomic"
)

var (
	verbosity atomic.Int32
	logger    = golog.New(os.Stderr, "halint: ", 0)
)

// SetVerbosity sets the highest level that is printed.
func SetVerbosity(v int) {
	verbosity.Store(int32(v))
}

// SetOutput redirects all log output, mostly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// V reports whether messages at level v are printed.
func V(v int) bool {
	return int32(v) <= verbosity.Load()
}

// Logf formats and prints msg when level v is enabled.
func Logf(v int, msg string, args ...any) {
	if !V(v) {
		return
	}

	logger.Output(2, fmt.Sprintf(msg, args...)) //nolint:errcheck
}

// Errorf logs at level 0.
func Errorf(msg string, args ...any) {
	Logf(0, msg, args...)
}
