package speech

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"testing"
	"time"
)

func TestNewUtterance(t *testing.T) {
	u := NewUtterance("Hola", "es")

	if u.Rate != 0.9 {
		t.Errorf("expected rate 0.9, got %v", u.Rate)
	}
	if u.Pitch != 1 {
		t.Errorf("expected pitch 1, got %v", u.Pitch)
	}
	if u.Lang != "es" || u.Text != "Hola" {
		t.Errorf("unexpected utterance %+v", u)
	}
}

func TestEngineArgs(t *testing.T) {
	u := NewUtterance("Hola", "es")
	dash := NewUtterance("-w out.wav", "es")

	tests := []struct {
		name string
		args func(Utterance) []string
		u    Utterance
		want []string
	}{
		{name: "espeak", args: espeakArgs, u: u, want: []string{"-v", "es", "-s", "157", "-p", "50", "--", "Hola"}},
		{name: "spd-say", args: spdSayArgs, u: u, want: []string{"-w", "-l", "es", "-r", "-10", "-p", "0", "--", "Hola"}},
		{name: "say", args: sayArgs, u: u, want: []string{"-r", "157", "--", "Hola"}},
		{name: "plain", args: plainArgs, u: u, want: []string{"Hola"}},
		{name: "espeak dash text", args: espeakArgs, u: dash, want: []string{"-v", "es", "-s", "157", "-p", "50", "--", "-w out.wav"}},
		{name: "spd-say dash text", args: spdSayArgs, u: dash, want: []string{"-w", "-l", "es", "-r", "-10", "-p", "0", "--", "-w out.wav"}},
		{name: "say dash text", args: sayArgs, u: dash, want: []string{"-r", "157", "--", "-w out.wav"}},
		{name: "plain dash text", args: plainArgs, u: dash, want: []string{" -w out.wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.args(tt.u); !slices.Equal(got, tt.want) {
				t.Errorf("args = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandSpeaker_Unavailable(t *testing.T) {
	s := NewCommandSpeaker("definitely-not-a-tts-binary")

	if s.Available() {
		t.Fatal("expected speaker to be unavailable")
	}
	if _, err := s.Speak(context.Background(), NewUtterance("x", "en")); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestCommandSpeaker_CustomCommand(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true(1) not available")
	}

	s := NewCommandSpeaker("true")
	if !s.Available() {
		t.Fatal("expected speaker to be available")
	}

	done, err := s.Speak(context.Background(), NewUtterance("Hola", "es"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean completion, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("speech did not complete")
	}
}

func TestCommandSpeaker_FailureReported(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false(1) not available")
	}

	s := NewCommandSpeaker("false")

	done, err := s.Speak(context.Background(), NewUtterance("Hola", "es"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := <-done; err == nil {
		t.Error("expected non-zero exit to be reported")
	}
}

func TestCommandSpeaker_Cancel(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep(1) not available")
	}

	s := &CommandSpeaker{engine: engine{name: "sleep", args: func(Utterance) []string { return []string{"10"} }}}
	s.path, _ = exec.LookPath("sleep")

	done, err := s.Speak(context.Background(), NewUtterance("ignored", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected cancelled speech to report an error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("cancel did not stop the process")
	}
}

func TestStubSpeaker(t *testing.T) {
	s := NewStubSpeaker()
	s.Err = errors.New("boom")

	done, err := s.Speak(context.Background(), NewUtterance("Hola", "es"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := <-done; err == nil || err.Error() != "boom" {
		t.Errorf("expected configured error, got %v", err)
	}
	if len(s.Utterances()) != 1 {
		t.Errorf("expected 1 utterance, got %d", len(s.Utterances()))
	}
}
