package status

import (
	"sync"
	"testing"
	"time"
)

type fakeDisplay struct {
	mu    sync.Mutex
	shown []Message
	hides int
}

func (d *fakeDisplay) Show(msg Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown = append(d.shown, msg)
}

func (d *fakeDisplay) Hide() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hides++
}

func (d *fakeDisplay) hideCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hides
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestBanner_ShowAndExpire(t *testing.T) {
	for _, kind := range []Kind{KindSuccess, KindError} {
		t.Run(string(kind), func(t *testing.T) {
			d := &fakeDisplay{}
			b := New(d, 10*time.Millisecond)
			defer b.Close()

			b.Show("hello", kind)

			msg, ok := b.Current()
			if !ok {
				t.Fatal("expected a visible message")
			}
			if msg.Text != "hello" || msg.Kind != kind {
				t.Errorf("unexpected message %+v", msg)
			}

			waitFor(t, func() bool {
				_, ok := b.Current()
				return !ok
			})
			if d.hideCount() != 1 {
				t.Errorf("expected 1 hide, got %d", d.hideCount())
			}
		})
	}
}

func TestBanner_PreemptRestartsWindow(t *testing.T) {
	d := &fakeDisplay{}
	b := New(d, 40*time.Millisecond)
	defer b.Close()

	b.Error("first")
	time.Sleep(25 * time.Millisecond)
	b.Success("second")
	time.Sleep(25 * time.Millisecond)

	msg, ok := b.Current()
	if !ok {
		t.Fatal("expected second message to outlive the first window")
	}
	if msg.Text != "second" || msg.Kind != KindSuccess {
		t.Errorf("unexpected message %+v", msg)
	}

	waitFor(t, func() bool {
		_, ok := b.Current()
		return !ok
	})
	if d.hideCount() != 1 {
		t.Errorf("expected a single hide, got %d", d.hideCount())
	}
	if len(d.shown) != 2 {
		t.Errorf("expected 2 messages shown, got %d", len(d.shown))
	}
}

func TestBanner_ZeroWindowKeepsMessage(t *testing.T) {
	b := New(nil, 0)

	b.Success("sticky")
	time.Sleep(5 * time.Millisecond)

	if _, ok := b.Current(); !ok {
		t.Error("expected message to stay without a window")
	}
}
