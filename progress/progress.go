// Package progress provides the transfer progress callback type and a
// textual progress bar for terminals.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Sink receives (bytesSent, totalBytes) after every write during a
// transfer. It is invoked synchronously and frequently, so implementations
// must be cheap and must never block.
type Sink func(bytesSent, totalBytes int64)

// Bar renders a single-line progress bar, redrawing in place with carriage
// returns. All render state lives in the struct; the caller owns the Bar
// and passes its Sink into the transfer.
type Bar struct {
	w         io.Writer
	width     int
	lastDrawn string
}

// NewBar creates a progress bar writing to w. When w is a terminal the bar
// width follows the terminal width; otherwise a fixed default is used.
func NewBar(w io.Writer) *Bar {
	b := &Bar{w: w, width: 80}

	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 20 {
			b.width = cols
		}
	}

	return b
}

// Sink returns the callback to hand to the transfer engine.
func (b *Bar) Sink() Sink {
	return b.update
}

func (b *Bar) update(sent, total int64) {
	line := b.render(sent, total)
	if line == b.lastDrawn {
		return
	}

	pad := ""
	if n := len(b.lastDrawn) - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(b.w, "\r%s%s", line, pad)
	b.lastDrawn = line
}

// Finish terminates the bar line. Call once after the transfer completes.
func (b *Bar) Finish() {
	if b.lastDrawn != "" {
		fmt.Fprintln(b.w)
		b.lastDrawn = ""
	}
}

func (b *Bar) render(sent, total int64) string {
	pct := int64(100)
	if total > 0 {
		pct = sent * 100 / total
	}

	// Leave room for "\r[...] 100% 12345/12345".
	counters := fmt.Sprintf(" %3d%% %d/%d", pct, sent, total)
	inner := b.width - len(counters) - 2
	if inner < 10 {
		inner = 10
	}

	filled := int(int64(inner) * pct / 100)
	if filled > inner {
		filled = inner
	}

	bar := strings.Repeat("=", filled) + strings.Repeat(" ", inner-filled)

	return "[" + bar + "]" + counters
}
