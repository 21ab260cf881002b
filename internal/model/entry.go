package model

import "time"

// Entry represents one raw bulletin notice as fetched from the registry.
// Immutable once created; all extraction is a pure function of its fields.
type Entry struct {
	ID     string    `json:"id"`               // Source identifier (bulletin entry id)
	Source string    `json:"source,omitempty"` // Bulletin issue or provider reference
	Text   string    `json:"text"`             // Raw notice text
	Date   time.Time `json:"date"`             // Publication date

	// ParsedDetails carries partially structured fields supplied by an
	// upstream parser. Values here fill gaps left by text extraction but
	// never override a successfully extracted value.
	ParsedDetails map[string]string `json:"parsed_details,omitempty"`
}

// Section is a single segmented piece of an entry, optionally labeled
// with the top-level category it was resolved to.
type Section struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}
