package model

import "time"

// Group is the high-level family a top-level category belongs to.
type Group string

const (
	GroupLifecycle      Group = "lifecycle"
	GroupCapital        Group = "capital"
	GroupStructural     Group = "structural"
	GroupIdentity       Group = "identity"
	GroupGovernance     Group = "governance"
	GroupOwnership      Group = "ownership"
	GroupOfficers       Group = "officers"
	GroupAdministrative Group = "administrative"
	GroupOther          Group = "other"
)

// CorporateEvent is a non-officer event detected in an entry, with
// category-specific structured details (capital amount, new address,
// dissolution subtype and so on).
type CorporateEvent struct {
	Type    string            `json:"type"` // Top-level category name
	Group   Group             `json:"group"`
	Date    time.Time         `json:"date"`
	Details map[string]string `json:"details,omitempty"`
}

// CompanyStatus is the single derived status of a company, computed from
// the set of corporate events observed for it.
type CompanyStatus string

const (
	StatusActive              CompanyStatus = "active"
	StatusDissolved           CompanyStatus = "dissolved"
	StatusDissolvedVoluntary  CompanyStatus = "dissolved_voluntary"
	StatusDissolvedJudicial   CompanyStatus = "dissolved_judicial"
	StatusDissolvedBankruptcy CompanyStatus = "dissolved_bankruptcy"
	StatusBankrupt            CompanyStatus = "bankrupt"
	StatusSuspended           CompanyStatus = "suspended"
	StatusExtinct             CompanyStatus = "extinct"
	StatusUnknown             CompanyStatus = "unknown"
)

// CompanyRecord is the aggregated view of one company across all the
// entries observed for it. Consumed by the graph/UI layer; the engine
// never renders it as prose.
type CompanyRecord struct {
	Name             string                    `json:"name"`
	CIF              string                    `json:"cif,omitempty"`
	Address          string                    `json:"address,omitempty"`
	Activity         string                    `json:"activity,omitempty"`
	Capital          string                    `json:"capital,omitempty"`
	ConstitutionDate string                    `json:"constitution_date,omitempty"`
	Officers         map[string][]OfficerEvent `json:"officers"` // Keyed by officer category
	OfficerRecords   []OfficerRecord           `json:"officer_records,omitempty"`
	Events           []CorporateEvent          `json:"events"`
	Status           CompanyStatus             `json:"status"`
	EntryIDs         []string                  `json:"entry_ids,omitempty"`
}
