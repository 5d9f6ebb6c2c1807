// Package speech reads translations aloud through the platform synthesizer.
package speech

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const (
	DefaultRate  = 0.9
	DefaultPitch = 1.0

	// baseWPM is the espeak / say speaking rate that corresponds to Rate 1.
	baseWPM = 175
)

var ErrUnsupported = errors.New("speech synthesis is not supported on this platform")

// Utterance mirrors the knobs of a browser SpeechSynthesisUtterance.
type Utterance struct {
	Text  string
	Lang  string
	Rate  float64
	Pitch float64
}

func NewUtterance(text, lang string) Utterance {
	return Utterance{Text: text, Lang: lang, Rate: DefaultRate, Pitch: DefaultPitch}
}

// Speaker speaks one utterance at a time.
type Speaker interface {
	// Available reports whether the platform can synthesize speech at all.
	Available() bool

	// Speak starts speaking and returns a channel that receives the outcome
	// once: nil on natural completion, an error otherwise.
	Speak(ctx context.Context, u Utterance) (<-chan error, error)

	// Cancel interrupts the current utterance, if any.
	Cancel()
}

type engine struct {
	name string
	args func(u Utterance) []string
}

var engines = []engine{
	{name: "espeak-ng", args: espeakArgs},
	{name: "espeak", args: espeakArgs},
	{name: "spd-say", args: spdSayArgs},
	{name: "say", args: sayArgs},
}

func espeakArgs(u Utterance) []string {
	args := []string{}
	if u.Lang != "" {
		args = append(args, "-v", u.Lang)
	}
	pitch := clamp(int(u.Pitch*50), 0, 99)
	return append(args,
		"-s", strconv.Itoa(int(u.Rate*baseWPM)),
		"-p", strconv.Itoa(pitch),
		"--", u.Text)
}

func spdSayArgs(u Utterance) []string {
	args := []string{"-w"}
	if u.Lang != "" {
		args = append(args, "-l", u.Lang)
	}
	return append(args,
		"-r", strconv.Itoa(clamp(int(math.Round((u.Rate-1)*100)), -100, 100)),
		"-p", strconv.Itoa(clamp(int(math.Round((u.Pitch-1)*100)), -100, 100)),
		"--", u.Text)
}

func sayArgs(u Utterance) []string {
	return []string{"-r", strconv.Itoa(int(u.Rate * baseWPM)), "--", u.Text}
}

// plainArgs is used for unknown commands, which may not accept "--"; text
// starting with '-' is skipped by a leading space instead.
func plainArgs(u Utterance) []string {
	if strings.HasPrefix(u.Text, "-") {
		return []string{" " + u.Text}
	}
	return []string{u.Text}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CommandSpeaker runs a text-to-speech program found on PATH.
type CommandSpeaker struct {
	path   string
	engine engine

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCommandSpeaker looks up command, or the first known engine when command
// is empty. Commands that are not a known engine receive the text as their
// only argument. The result is unavailable when nothing was found.
func NewCommandSpeaker(command string) *CommandSpeaker {
	if command != "" {
		path, err := exec.LookPath(command)
		if err != nil {
			return &CommandSpeaker{}
		}
		base := filepath.Base(command)
		for _, e := range engines {
			if e.name == base {
				return &CommandSpeaker{path: path, engine: e}
			}
		}
		return &CommandSpeaker{path: path, engine: engine{name: base, args: plainArgs}}
	}

	for _, e := range engines {
		if path, err := exec.LookPath(e.name); err == nil {
			return &CommandSpeaker{path: path, engine: e}
		}
	}
	return &CommandSpeaker{}
}

func (s *CommandSpeaker) Available() bool {
	return s.path != ""
}

// Engine names the program in use, or "" when unavailable.
func (s *CommandSpeaker) Engine() string {
	return s.engine.name
}

func (s *CommandSpeaker) Speak(ctx context.Context, u Utterance) (<-chan error, error) {
	if !s.Available() {
		return nil, ErrUnsupported
	}

	s.Cancel()

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, s.path, s.engine.args(u)...)
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start %s: %w", s.engine.name, err)
	}

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		cancel()
		if err != nil {
			done <- fmt.Errorf("%s: %w", s.engine.name, err)
		} else {
			done <- nil
		}
		close(done)
	}()

	return done, nil
}

func (s *CommandSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

var _ Speaker = (*CommandSpeaker)(nil)
