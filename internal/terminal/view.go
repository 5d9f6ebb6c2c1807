// Package terminal renders a session on a terminal: the output panel is the
// current line of out, status messages go to a separate writer.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/valpere/tlpad/internal/session"
	"github.com/valpere/tlpad/internal/status"
)

const (
	clearLine = "\r\x1b[K"

	colorGreen = "\x1b[32m"
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

type View struct {
	out    io.Writer
	status io.Writer
	color  bool

	mu       sync.Mutex
	line     string
	counter  session.Counter
	busy     bool
	speaking bool
}

// New returns a view drawing the output panel on out and status messages on
// statusOut. With color set, status messages are colored by kind.
func New(out, statusOut io.Writer, color bool) *View {
	return &View{out: out, status: statusOut, color: color}
}

// OutputChanged prints only the new characters while text grows from the
// current line and redraws the line otherwise.
func (v *View) OutputChanged(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case text == v.line:
		return
	case v.line != "" && strings.HasPrefix(text, v.line):
		fmt.Fprint(v.out, text[len(v.line):])
	case v.line != "":
		fmt.Fprint(v.out, clearLine+text)
	default:
		fmt.Fprint(v.out, text)
	}
	v.line = text
}

func (v *View) CounterChanged(c session.Counter) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.counter = c
	if c.AtLimit() {
		fmt.Fprintln(v.status, v.paint(c.Text, status.KindError))
	}
}

func (v *View) BusyChanged(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = busy
}

func (v *View) SpeakingChanged(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.speaking = active
}

func (v *View) Show(msg status.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.status, v.paint(msg.Text, msg.Kind))
}

// Hide is a no-op: a printed status line scrolls away on its own.
func (v *View) Hide() {}

// Finish ends the output line so the next prompt starts on a fresh one.
func (v *View) Finish() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.line != "" {
		fmt.Fprintln(v.out)
	}
	v.line = ""
}

func (v *View) Counter() session.Counter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.counter
}

func (v *View) Busy() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.busy
}

func (v *View) Speaking() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.speaking
}

func (v *View) paint(text string, kind status.Kind) string {
	if !v.color {
		if kind == status.KindError {
			return "! " + text
		}
		return "* " + text
	}
	if kind == status.KindError {
		return colorRed + text + colorReset
	}
	return colorGreen + text + colorReset
}

var (
	_ session.View   = (*View)(nil)
	_ status.Display = (*View)(nil)
)
