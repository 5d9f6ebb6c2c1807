package internal

import "time"

// HistoryEntry is one successful translation as recorded in the history log.
type HistoryEntry struct {
	ID             string    `json:"id"`
	SourceText     string    `json:"source_text"`
	SourceLang     string    `json:"source_lang"`
	TargetLang     string    `json:"target_lang"`
	TranslatedText string    `json:"translated_text"`
	ServiceName    string    `json:"service_name"`
	Timestamp      time.Time `json:"timestamp"`
}
