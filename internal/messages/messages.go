// Package messages renders the user-facing strings of a session in the
// configured locale.
package messages

import (
	"embed"
	"log"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Message IDs. Each one has an entry in every active.*.toml file.
const (
	Placeholder          = "Placeholder"
	Translating          = "Translating"
	OutputFailed         = "OutputFailed"
	CharCount            = "CharCount"
	EmptyInput           = "EmptyInput"
	Busy                 = "Busy"
	TranslationCompleted = "TranslationCompleted"
	TranslationFailed    = "TranslationFailed"
	InvalidSwap          = "InvalidSwap"
	NothingToCopy        = "NothingToCopy"
	Copied               = "Copied"
	CopyFailed           = "CopyFailed"
	NothingToSpeak       = "NothingToSpeak"
	Speaking             = "Speaking"
	SpeechCompleted      = "SpeechCompleted"
	SpeechFailed         = "SpeechFailed"
	SpeechUnsupported    = "SpeechUnsupported"
)

var localeFiles = []string{"active.en.toml", "active.uk.toml"}

// Catalog is a thin wrapper around a go-i18n localizer bound to one locale.
type Catalog struct {
	localizer *i18n.Localizer
	locale    string
}

// New builds a catalog for locale. Unknown locales and missing messages fall
// back to English.
func New(locale string) *Catalog {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("messages: failed to load %s: %v", file, err)
		}
	}

	langs := []string{}
	if locale != "" {
		langs = append(langs, locale)
	}
	langs = append(langs, language.English.String())

	return &Catalog{
		localizer: i18n.NewLocalizer(bundle, langs...),
		locale:    locale,
	}
}

// T renders id. If the id is unknown the id itself is returned.
func (c *Catalog) T(id string) string {
	return c.Tf(id, nil)
}

// Tf renders id with template data.
func (c *Catalog) Tf(id string, data map[string]any) string {
	if id == "" {
		return ""
	}
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

func (c *Catalog) Locale() string {
	return c.locale
}
