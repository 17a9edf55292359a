package corlena

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and counts.
// Only populated when Engine.debug is true.
type debugStats struct {
	inputTime     time.Duration
	physicsTime   time.Duration
	particleTime  time.Duration
	serializeTime time.Duration
	nodeCount     int
	particleCount int
	pathCount     int
	eventCount    int
}

// debugLog prints timing and count stats to stderr.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	total := stats.inputTime + stats.physicsTime + stats.particleTime + stats.serializeTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[corlena] input: %v | physics: %v | particles: %v | serialize: %v | total: %v\n",
		stats.inputTime, stats.physicsTime, stats.particleTime, stats.serializeTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[corlena] nodes: %d | particles: %d | paths: %d | events: %d\n",
		stats.nodeCount, stats.particleCount, stats.pathCount, stats.eventCount)
}

// noteIgnored warns on stderr when a buffer was rejected for its length.
func (e *Engine) noteIgnored(what string, res Result, n int) {
	if !e.debug || res != ResultIgnoredMalformed {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[corlena] warning: %s: %s (len %d)\n", what, res, n)
}
