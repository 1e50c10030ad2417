package warp

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// passTime is the wall time one pass took to record its draw commands.
type passTime struct {
	name string
	d    time.Duration
}

// debugStats holds per-frame compositor timings.
// Only populated when the compositor is in debug mode.
type debugStats struct {
	frame     uint64
	passTimes []passTime
	stretched bool
}

func (s debugStats) total() time.Duration {
	var t time.Duration
	for _, p := range s.passTimes {
		t += p.d
	}
	return t
}

// debugLogFrame prints per-pass timings to stderr.
func debugLogFrame(stats debugStats) {
	var b strings.Builder
	for i, p := range stats.passTimes {
		if i > 0 {
			b.WriteString(" | ")
		}
		fmt.Fprintf(&b, "%s: %v", p.name, p.d)
	}
	_, _ = fmt.Fprintf(os.Stderr, "[warp] frame %d: %s | total: %v | passes: %d | stretched: %t\n",
		stats.frame, b.String(), stats.total(), len(stats.passTimes), stats.stretched)
}

// debugf prints a debug line to stderr.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[warp] "+format+"\n", args...)
}

// warnf prints a warning to stderr regardless of debug mode.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[warp] warning: "+format+"\n", args...)
}
