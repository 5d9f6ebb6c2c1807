// Package status holds the single transient notification slot of a session.
package status

import (
	"sync"
	"time"
)

// DefaultWindow is how long a message stays visible.
const DefaultWindow = 3 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Message struct {
	Text string
	Kind Kind
}

// Display renders the banner. Hide is called when the visible message expires.
type Display interface {
	Show(msg Message)
	Hide()
}

// Banner shows one message at a time. A new message replaces the current one
// and restarts the clear timer.
type Banner struct {
	window  time.Duration
	display Display

	mu      sync.Mutex
	current *Message
	timer   *time.Timer
	gen     uint64
}

// New returns a banner that clears each message after window.
// A window of zero keeps messages until the next Show.
func New(display Display, window time.Duration) *Banner {
	return &Banner{window: window, display: display}
}

func (b *Banner) Show(text string, kind Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}

	b.gen++
	msg := Message{Text: text, Kind: kind}
	b.current = &msg
	if b.display != nil {
		b.display.Show(msg)
	}

	if b.window <= 0 {
		return
	}
	gen := b.gen
	b.timer = time.AfterFunc(b.window, func() { b.expire(gen) })
}

func (b *Banner) Success(text string) { b.Show(text, KindSuccess) }

func (b *Banner) Error(text string) { b.Show(text, KindError) }

// expire clears the slot unless a newer message took it over.
func (b *Banner) expire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen || b.current == nil {
		return
	}
	b.current = nil
	b.timer = nil
	if b.display != nil {
		b.display.Hide()
	}
}

// Current returns the visible message, if any.
func (b *Banner) Current() (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return Message{}, false
	}
	return *b.current, true
}

// Close stops the pending clear timer.
func (b *Banner) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
