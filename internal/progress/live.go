package progress

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Live keeps a tracker's rendering current on a terminal.
//
// On a TTY every tracker mutation redraws the tree in place. Elsewhere
// nothing is drawn until Stop, which prints the final state once.
type Live struct {
	w       io.Writer
	tracker *Tracker
	tty     bool
	lines   int
}

// NewLive attaches a live view to tracker and draws it once on a TTY.
func NewLive(w io.Writer, tracker *Tracker, tty bool) *Live {
	l := &Live{w: w, tracker: tracker, tty: tty}
	tracker.Attach(l.Refresh)
	if tty {
		l.Refresh()
	}
	return l
}

// Refresh redraws the tree over its previous rendering. It does nothing when
// the writer is not a terminal.
func (l *Live) Refresh() {
	if !l.tty {
		return
	}
	out := l.tracker.String()
	if l.lines > 0 {
		_, _ = io.WriteString(l.w, ansi.CursorUp(l.lines)+"\r"+ansi.EraseScreenBelow)
	}
	_, _ = io.WriteString(l.w, out+"\n")
	l.lines = lipgloss.Height(out)
}

// Stop detaches from the tracker and leaves the final state on screen.
func (l *Live) Stop() {
	l.tracker.Attach(nil)
	if l.tty {
		l.Refresh()
		return
	}
	_, _ = io.WriteString(l.w, l.tracker.String()+"\n")
}
