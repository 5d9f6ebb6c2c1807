package session

import (
	"context"
	"unicode/utf8"

	"github.com/valpere/tlpad/internal"
)

// DefaultMaxChars caps the source text.
const DefaultMaxChars = 5000

// State is a snapshot of everything the session shows.
type State struct {
	SourceText string
	SourceLang string
	TargetLang string

	// Translation is the last successful result. It is only meaningful when HasResult is set.
	Translation string
	HasResult   bool

	// Output is what the output panel shows right now: the placeholder, the
	// in-flight notice, a reveal prefix, a result or the failure notice.
	Output string

	Busy     bool
	Speaking bool
}

// Counter is the live character counter under the source field.
type Counter struct {
	Count int
	Limit int
	Text  string
}

func (c Counter) AtLimit() bool {
	return c.Count >= c.Limit
}

// View receives every visible change. Its methods are called with the
// controller lock held, in the order the changes happen, and must not call
// back into the controller.
type View interface {
	OutputChanged(text string)
	CounterChanged(c Counter)
	BusyChanged(busy bool)
	SpeakingChanged(active bool)
}

// Recorder stores successful translations; store.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, entry internal.HistoryEntry) error
}

type nopView struct{}

func (nopView) OutputChanged(string)   {}
func (nopView) CounterChanged(Counter) {}
func (nopView) BusyChanged(bool)       {}
func (nopView) SpeakingChanged(bool)   {}

// truncate keeps at most limit runes of text.
func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}
