package translator

import "errors"

var (
	// ErrServiceFailure covers transport errors and explicit error statuses from the service.
	ErrServiceFailure = errors.New("translation service failure")

	// ErrMalformedResponse is returned when the service answered with a payload
	// that does not carry a translated string.
	ErrMalformedResponse = errors.New("malformed translation response")
)
