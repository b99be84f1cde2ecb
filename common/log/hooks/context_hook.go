package hooks

import (
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// Module path segment used to shorten source locations.
const modulePathSegment = "gradle/"

type contextHook struct {
}

// NewContextHook returns a logrus hook that records the file:line of the
// logging call site in each entry.
func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook contextHook) Fire(entry *logrus.Entry) error {
	if loc := callSite(string(debug.Stack())); loc != "" {
		entry.Data["file:line"] = loc
	}
	return nil
}

// callSite walks a debug.Stack() dump to the first frame outside logrus and
// this hook, and returns its file:line relative to the module.
func callSite(stack string) string {
	lines := strings.Split(stack, "\n")
	// Frames come in pairs: the function line, then a tab-indented file:line.
	for i := 1; i+1 < len(lines); i += 2 {
		fn, loc := lines[i], lines[i+1]
		if strings.Contains(fn, "runtime/debug.") ||
			strings.Contains(fn, "sirupsen/logrus") ||
			strings.Contains(loc, "context_hook.go:") {
			continue
		}
		loc = strings.TrimSpace(loc)
		if idx := strings.LastIndex(loc, " +0x"); idx >= 0 {
			loc = loc[:idx]
		}
		ctx := strings.Split(loc, modulePathSegment)
		return ctx[len(ctx)-1]
	}
	return ""
}
