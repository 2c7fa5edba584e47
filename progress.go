// ABOUTME: Progress tracking for batch prompt generation
// ABOUTME: Counts finished entries across workers and redraws a status line on terminals

package main

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const progressInterval = 200 * time.Millisecond

// progressTracker reports how many batch entries have finished
type progressTracker struct {
	mu       sync.Mutex
	w        io.Writer
	total    int
	done     int
	failed   int
	terminal bool
	lastDraw time.Time
}

func newProgressTracker(w io.Writer, total int, terminal bool) *progressTracker {
	return &progressTracker{w: w, total: total, terminal: terminal}
}

// finish records one completed entry; safe for concurrent use
func (pt *progressTracker) finish(err error) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.done++
	if err != nil {
		pt.failed++
	}

	// Non-TTY: skip redraws entirely to avoid log spam
	if !pt.terminal {
		return
	}

	now := time.Now()
	if pt.done < pt.total && now.Sub(pt.lastDraw) < progressInterval {
		return
	}

	pt.lastDraw = now
	fmt.Fprintf(pt.w, "\r[+] Generated %d/%d prompts (%d failed)   ", pt.done, pt.total, pt.failed)
}

// close ends the status line
func (pt *progressTracker) close() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if pt.terminal && pt.done > 0 {
		fmt.Fprintln(pt.w)
	}
}

// counts returns finished and failed totals
func (pt *progressTracker) counts() (done, failed int) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	return pt.done, pt.failed
}
