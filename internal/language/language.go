// Package language resolves and validates the language codes a session works with.
package language

import (
	"errors"
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	// Auto is the source-side sentinel for "detect the language".
	Auto = "auto"

	// DefaultFallback is sent in place of Auto when no detector is configured.
	DefaultFallback = "en"
)

var ErrAutoTarget = errors.New("auto-detect is not a valid target language")

// Supported lists the codes offered in the language selectors, in the order
// they are shown.
var Supported = []string{
	"en", "es", "fr", "de", "it", "pt", "ru", "ja", "ko", "zh",
	"ar", "nl", "pl", "tr", "sv", "da", "no", "fi", "el", "he",
	"th", "vi", "id", "ms", "cs", "hu", "ro", "uk", "bg", "ca",
	"hi",
}

// Detector is satisfied by detector.Detector.
type Detector interface {
	DetectISO(text string) (string, bool)
}

// Resolver turns the source selection into a concrete code for the service.
type Resolver struct {
	fallback string
	detector Detector
}

// NewResolver returns a resolver that substitutes fallback for Auto.
// A nil detector disables detection.
func NewResolver(fallback string, det Detector) *Resolver {
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Resolver{fallback: fallback, detector: det}
}

func (r *Resolver) ResolveSource(code, text string) string {
	switch {
	case !IsAuto(code):
		return Normalize(code)
	case r.detector != nil:
		if iso, ok := r.detector.DetectISO(text); ok {
			return iso
		}
		return r.fallback
	default:
		return r.fallback
	}
}

func IsAuto(code string) bool {
	code = strings.TrimSpace(code)
	return code == "" || strings.EqualFold(code, Auto)
}

func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Validate accepts Auto and any well-formed BCP 47 tag.
func Validate(code string) error {
	if IsAuto(code) {
		return nil
	}
	if _, err := xlanguage.Parse(code); err != nil {
		return fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return nil
}

func ValidateTarget(code string) error {
	if IsAuto(code) {
		return ErrAutoTarget
	}
	return Validate(code)
}

// DisplayName returns the English name for code, or code itself when unknown.
func DisplayName(code string) string {
	if IsAuto(code) {
		return "Auto Detect"
	}
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}
