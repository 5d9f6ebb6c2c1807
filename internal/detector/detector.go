// Package detector guesses the language of a text with lingua-go.
// Building a detector loads language models, so build one and reuse it.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector over every language lingua knows.
func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// NewFor restricts detection to the given ISO 639-1 codes. Codes lingua does
// not know are skipped; with fewer than two usable codes it falls back to New.
func NewFor(codes []string) *Detector {
	var isoCodes []lingua.IsoCode639_1
	for _, code := range codes {
		iso := lingua.GetIsoCode639_1FromValue(strings.ToUpper(code))
		if iso == lingua.UnknownIsoCode639_1 {
			continue
		}
		isoCodes = append(isoCodes, iso)
	}
	if len(isoCodes) < 2 {
		return New()
	}

	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromIsoCodes639_1(isoCodes...).
			Build(),
	}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if strings.TrimSpace(text) == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the lower-case ISO 639-1 code used on the wire.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
