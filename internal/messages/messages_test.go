package messages

import "testing"

func TestCatalog_English(t *testing.T) {
	c := New("en")

	tests := map[string]string{
		Placeholder:          "Translation will appear here...",
		Translating:          "Translating...",
		EmptyInput:           "Please enter text to translate",
		TranslationCompleted: "Translation completed successfully!",
		InvalidSwap:          "Cannot swap with Auto Detect",
		NothingToCopy:        "No translation to copy",
		NothingToSpeak:       "No translation to speak",
	}
	for id, want := range tests {
		if got := c.T(id); got != want {
			t.Errorf("T(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestCatalog_CharCount(t *testing.T) {
	c := New("en")

	got := c.Tf(CharCount, map[string]any{"Count": 5000, "Limit": 5000})
	if got != "5000 / 5000 characters" {
		t.Errorf("unexpected counter %q", got)
	}
}

func TestCatalog_Ukrainian(t *testing.T) {
	c := New("uk")

	if got := c.T(Copied); got != "Переклад скопійовано в буфер обміну!" {
		t.Errorf("unexpected uk message %q", got)
	}
}

func TestCatalog_FallbackToEnglish(t *testing.T) {
	c := New("fr")

	if got := c.T(Speaking); got != "Speaking..." {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestCatalog_UnknownID(t *testing.T) {
	c := New("en")

	if got := c.T("NoSuchMessage"); got != "NoSuchMessage" {
		t.Errorf("expected id echo, got %q", got)
	}
	if got := c.T(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestCatalog_AllIDsTranslated(t *testing.T) {
	ids := []string{
		Placeholder, Translating, OutputFailed, CharCount, EmptyInput, Busy,
		TranslationCompleted, TranslationFailed, InvalidSwap, NothingToCopy,
		Copied, CopyFailed, NothingToSpeak, Speaking, SpeechCompleted,
		SpeechFailed, SpeechUnsupported,
	}
	for _, locale := range []string{"en", "uk"} {
		c := New(locale)
		for _, id := range ids {
			if got := c.Tf(id, map[string]any{"Count": 1, "Limit": 2}); got == id {
				t.Errorf("locale %s: message %q is missing", locale, id)
			}
		}
	}
}
