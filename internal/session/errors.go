package session

import (
	"errors"

	"github.com/valpere/tlpad/internal/speech"
	"github.com/valpere/tlpad/internal/translator"
)

// Every error a Controller returns wraps one of these. They are also shown on
// the status banner, and none of them ends the session.
var (
	ErrEmptyInput              = errors.New("nothing to translate")
	ErrNetworkOrServiceFailure = translator.ErrServiceFailure
	ErrMalformedResponse       = translator.ErrMalformedResponse
	ErrNothingToCopy           = errors.New("no translation to copy")
	ErrNothingToSpeak          = errors.New("no translation to speak")
	ErrUnsupportedPlatform     = speech.ErrUnsupported
	ErrInvalidSwap             = errors.New("cannot swap languages while the source is auto-detect")
	ErrTranslationInProgress   = errors.New("a translation is already in progress")
	ErrClipboard               = errors.New("clipboard write failed")
)
