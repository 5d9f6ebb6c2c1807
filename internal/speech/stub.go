package speech

import (
	"context"
	"sync"
	"time"
)

// StubSpeaker is a deterministic Speaker for tests and for --dry-run style use.
type StubSpeaker struct {
	Supported bool
	Delay     time.Duration
	Err       error

	mu         sync.Mutex
	utterances []Utterance
	cancels    int
}

func NewStubSpeaker() *StubSpeaker {
	return &StubSpeaker{Supported: true}
}

func (s *StubSpeaker) Available() bool {
	return s.Supported
}

func (s *StubSpeaker) Speak(ctx context.Context, u Utterance) (<-chan error, error) {
	if !s.Supported {
		return nil, ErrUnsupported
	}

	s.mu.Lock()
	s.utterances = append(s.utterances, u)
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		if s.Delay > 0 {
			select {
			case <-time.After(s.Delay):
			case <-ctx.Done():
				done <- ctx.Err()
				return
			}
		}
		done <- s.Err
	}()
	return done, nil
}

func (s *StubSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancels++
}

// Utterances returns everything spoken so far.
func (s *StubSpeaker) Utterances() []Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Utterance(nil), s.utterances...)
}

func (s *StubSpeaker) Cancels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancels
}

var _ Speaker = (*StubSpeaker)(nil)
