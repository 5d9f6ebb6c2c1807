// Package reveal paces a finished translation onto the screen one character at a time.
package reveal

import (
	"context"
	"iter"
	"sync"
	"time"
)

// DefaultInterval is the pause between two emitted prefixes.
const DefaultInterval = 20 * time.Millisecond

// Prefixes yields the non-empty prefixes of text, each one rune longer than the
// last, ending with text itself. Every range over the result starts again.
func Prefixes(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range text {
			if i == 0 {
				continue
			}
			if !yield(text[:i]) {
				return
			}
		}
		if text != "" {
			yield(text)
		}
	}
}

// Emit receives each prefix together with the handle that produced it, so the
// receiver can drop writes from a handle it no longer considers current.
type Emit func(h *Handle, prefix string)

// Handle identifies one running reveal.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the reveal without waiting for it to exit.
func (h *Handle) Stop() {
	h.cancel()
}

// Done is closed once the reveal has emitted its last prefix or was stopped.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Revealer owns at most one active reveal: it is either idle or revealing
// through exactly one Handle.
type Revealer struct {
	interval time.Duration

	mu     sync.Mutex
	active *Handle
}

// New returns a revealer pacing at interval. An interval of zero or less
// emits the full text in a single step.
func New(interval time.Duration) *Revealer {
	return &Revealer{interval: interval}
}

// Start stops the active reveal, if any, and begins revealing text.
func (r *Revealer) Start(text string, emit Emit) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		r.active.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	r.active = h

	go r.run(ctx, h, text, emit)
	return h
}

func (r *Revealer) run(ctx context.Context, h *Handle, text string, emit Emit) {
	defer close(h.done)
	defer r.release(h)

	if r.interval <= 0 {
		if ctx.Err() == nil {
			emit(h, text)
		}
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for prefix := range Prefixes(text) {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return
		}
		emit(h, prefix)
	}
}

func (r *Revealer) release(h *Handle) {
	h.cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == h {
		r.active = nil
	}
}

// Stop cancels the active reveal. It is a no-op when idle.
func (r *Revealer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		r.active.cancel()
		r.active = nil
	}
}

// Active returns the running handle, or nil when idle.
func (r *Revealer) Active() *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Wait blocks until the active reveal finishes or ctx is done.
func (r *Revealer) Wait(ctx context.Context) error {
	h := r.Active()
	if h == nil {
		return nil
	}
	select {
	case <-h.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
