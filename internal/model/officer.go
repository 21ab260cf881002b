package model

import "time"

// Officer event categories as they appear as top-level section headers in
// bulletin entries. These four are the closed set the temporal resolver
// understands; everything else is a corporate event category.
const (
	CategoryAppointment = "Nombramientos"
	CategoryReelection  = "Reelecciones"
	CategoryCessation   = "Ceses/Dimisiones"
	CategoryRevocation  = "Revocaciones"
)

// OfficerEvent is a single appointment or cessation extracted from one
// entry. Value type; never mutated after creation.
type OfficerEvent struct {
	PersonName     string    `json:"person_name"`     // As written in the entry
	NormalizedName string    `json:"normalized_name"` // Canonical form for identity grouping
	Position       string    `json:"position"`        // Canonical position from the vocabulary
	Category       string    `json:"category"`        // One of the officer categories above
	Date           time.Time `json:"date"`            // Event date; zero when unknown
	CompanyName    string    `json:"company_name,omitempty"`
	SourceEntryID  string    `json:"source_entry_id,omitempty"`
}

// IsAppointment reports whether the event puts the person into office.
func (e OfficerEvent) IsAppointment() bool {
	return e.Category == CategoryAppointment || e.Category == CategoryReelection
}

// IsCessation reports whether the event removes the person from office.
func (e OfficerEvent) IsCessation() bool {
	return e.Category == CategoryCessation || e.Category == CategoryRevocation
}

// PositionHold is one currently held position on an officer record.
type PositionHold struct {
	Position    string    `json:"position"`
	CompanyName string    `json:"company_name,omitempty"`
	Since       time.Time `json:"since"`
}

// OfficerStatus is the resolved state of an officer record.
type OfficerStatus string

const (
	OfficerActive   OfficerStatus = "active"
	OfficerInactive OfficerStatus = "inactive"
)

// OfficerRecord is the folded view of all events for one person. Rebuilt
// wholesale whenever new events arrive; never patched incrementally.
type OfficerRecord struct {
	CanonicalName    string         `json:"canonical_name"`
	CurrentPositions []PositionHold `json:"current_positions"`
	History          []OfficerEvent `json:"history"`
	Status           OfficerStatus  `json:"status"`
}
