// Package debug provides an opt-in diagnostic logger. Output is silent
// unless enabled via config or the --debug flag.
package debug

import "log"

var enabled bool

func Enable() {
	enabled = true
}

func Enabled() bool {
	return enabled
}

// Logf writes a tagged diagnostic line when debug output is enabled.
func Logf(format string, args ...any) {
	if !enabled {
		return
	}
	log.Printf("[debug] "+format, args...)
}
