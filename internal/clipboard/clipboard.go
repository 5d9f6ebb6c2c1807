// Package clipboard writes translations to the system clipboard.
package clipboard

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility exists on this system.
var ErrUnavailable = errors.New("clipboard is not available")

// Clipboard writes text into a clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// System writes through github.com/atotto/clipboard, which shells out to
// xclip, xsel, wl-copy, pbcopy or the Windows API.
type System struct {
	write func(string) error
}

func NewSystem() *System {
	return &System{write: clipboard.WriteAll}
}

func (s *System) WriteText(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(text)
}

// Memory is a clipboard kept in process memory. Tests use it in place of
// the system clipboard.
type Memory struct {
	text string
	err  error
}

// NewMemory returns a clipboard that fails every write with err when err is non-nil.
func NewMemory(err error) *Memory {
	return &Memory{err: err}
}

func (m *Memory) WriteText(_ context.Context, text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func (m *Memory) Text() string {
	return m.text
}

var (
	_ Clipboard = (*System)(nil)
	_ Clipboard = (*Memory)(nil)
)
