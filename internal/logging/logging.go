// Package logging wraps github.com/tliron/commonlog as the engine's
// structured logger. The teacher only wires commonlog into its LSP
// binary's stdio server; here it is repurposed into a general-purpose
// facility for GC sweeps, reactor step summaries, and cancellation, since
// the core has no LSP surface of its own.
package logging

import (
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

// Logger is the subset of commonlog.Logger the engine uses.
type Logger = commonlog.Logger

// Configure sets the process-wide maximum log level (commonlog's
// verbosity scale, higher is more verbose) the way the teacher's LSP
// binary configures it at startup. path, if non-empty, redirects log
// output to a file instead of stderr.
func Configure(maxLevel int, path string) {
	if path == "" {
		commonlog.Configure(maxLevel, nil)
		return
	}
	commonlog.Configure(maxLevel, &path)
}

// Get returns the named logger (commonlog hash-conses loggers by name, the
// same way internal/symbol hash-conses labels).
func Get(name string) Logger {
	return commonlog.GetLogger(name)
}
