package pipeline

import (
	"sort"
	"time"

	"github.com/bormex/bormex/internal/extract"
	"github.com/bormex/bormex/internal/identity"
	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/temporal"
	"github.com/bormex/bormex/internal/vocab"
)

// BuildCompany folds the parse results of all entries observed for one
// company into a single record. Entries are processed in publication
// order so that later filings (an address change, a new name) update the
// company fields extracted from earlier ones.
func BuildCompany(t *vocab.Table, name string, entries []model.Entry) model.CompanyRecord {
	sorted := make([]model.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	rec := model.CompanyRecord{
		Name:     name,
		Officers: emptyCategories(),
		Events:   []model.CorporateEvent{},
	}

	var allOfficerEvents []model.OfficerEvent
	for _, e := range sorted {
		r := ParseEntry(t, e)
		rec.EntryIDs = append(rec.EntryIDs, e.ID)
		rec.Events = append(rec.Events, r.CorporateEvents...)

		for _, cat := range orderedCategories(r.Officers) {
			for _, ev := range r.Officers[cat] {
				ev.CompanyName = name
				rec.Officers[cat] = append(rec.Officers[cat], ev)
				allOfficerEvents = append(allOfficerEvents, ev)
			}
		}

		applyDetail(&rec.CIF, r.Details["cif"])
		applyDetail(&rec.Address, r.Details["address"])
		applyDetail(&rec.Activity, r.Details["activity"])
		applyDetail(&rec.Capital, r.Details["capital"])
		if rec.ConstitutionDate == "" {
			rec.ConstitutionDate = r.Details["constitution_date"]
		}
	}

	rec.OfficerRecords = BuildOfficerRecords(allOfficerEvents)
	rec.Status = extract.DeriveStatus(rec.Events)
	return rec
}

// applyDetail overwrites dst with the newer value when present; later
// entries win because entries are processed chronologically.
func applyDetail(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func orderedCategories(byCategory map[string][]model.OfficerEvent) []string {
	cats := make([]string, 0, len(byCategory))
	for c := range byCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// BuildOfficerRecords groups events by person, resolving spelling
// variants first so that all of one person's events share a normalized
// key, then folds each (name, position) group temporally.
func BuildOfficerRecords(events []model.OfficerEvent) []model.OfficerRecord {
	if len(events) == 0 {
		return nil
	}

	grouper := identity.NewGrouper()
	for _, ev := range events {
		grouper.Canonical(ev.PersonName)
	}

	canonicalized := make([]model.OfficerEvent, len(events))
	for i, ev := range events {
		canonical := grouper.Canonical(ev.PersonName)
		ev.NormalizedName = identity.Normalize(canonical)
		canonicalized[i] = ev
	}

	states := temporal.Resolve(canonicalized)

	byPerson := make(map[string]*model.OfficerRecord)
	var order []string
	for _, st := range states {
		canonical := grouper.Canonical(st.PersonName)
		rec, ok := byPerson[canonical]
		if !ok {
			rec = &model.OfficerRecord{CanonicalName: canonical}
			byPerson[canonical] = rec
			order = append(order, canonical)
		}
		rec.History = append(rec.History, st.History...)
		if st.Active {
			rec.CurrentPositions = append(rec.CurrentPositions, model.PositionHold{
				Position:    st.Position,
				CompanyName: st.CompanyName,
				Since:       st.Since,
			})
		}
	}

	sort.Strings(order)
	records := make([]model.OfficerRecord, 0, len(order))
	for _, canonical := range order {
		rec := byPerson[canonical]
		rec.Status = model.OfficerInactive
		if len(rec.CurrentPositions) > 0 {
			rec.Status = model.OfficerActive
		}
		records = append(records, *rec)
	}
	return records
}

// FlatOfficer is the shape search endpoints return: an already-extracted
// officer tuple without category structure.
type FlatOfficer struct {
	Name     string    `json:"name"`
	Position string    `json:"position"`
	Ceased   bool      `json:"ceased"`
	Date     time.Time `json:"date,omitzero"`
	Company  string    `json:"company,omitempty"`
}

// NormalizeOfficers converts a flat officer list into the four-category
// structure used internally, so entries and pre-extracted tuples are
// treated uniformly downstream. Positions are canonicalized through the
// vocabulary when possible; an upstream tuple with an unknown position
// keeps its original spelling rather than being dropped.
func NormalizeOfficers(t *vocab.Table, officers []FlatOfficer) map[string][]model.OfficerEvent {
	byCategory := emptyCategories()
	for _, o := range officers {
		category := model.CategoryAppointment
		if o.Ceased {
			category = model.CategoryCessation
		}
		position := o.Position
		if canonical, ok := extract.ResolvePosition(t, o.Position); ok {
			position = canonical
		}
		byCategory[category] = append(byCategory[category], model.OfficerEvent{
			PersonName:     o.Name,
			NormalizedName: identity.Normalize(o.Name),
			Position:       position,
			Category:       category,
			Date:           o.Date,
			CompanyName:    o.Company,
		})
	}
	return byCategory
}
