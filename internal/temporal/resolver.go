// Package temporal resolves current officer state from dated event
// histories. Whether a role is currently held is never stated directly
// in the bulletins; it is the outcome of folding appointments and
// cessations in chronological order, where the last event wins.
package temporal

import (
	"sort"
	"time"

	"github.com/bormex/bormex/internal/model"
)

// PositionState is the resolved state of one (normalized name, position)
// group: the final active flag after the fold plus the full ordered
// event history for audit rendering.
type PositionState struct {
	NormalizedName string               `json:"normalized_name"`
	PersonName     string               `json:"person_name"`
	Position       string               `json:"position"`
	CompanyName    string               `json:"company_name,omitempty"`
	Active         bool                 `json:"active"`
	Since          time.Time            `json:"since,omitzero"`
	History        []model.OfficerEvent `json:"history"`
}

// Resolve folds a collection of name-normalized officer events into
// per-(name, position) states. Events are sorted by date ascending
// before folding; events without a date carry the zero time and sort
// first, so dated events always take precedence. The whole set is
// recomputed on every call — callers adding events incrementally must
// re-invoke Resolve over the accumulated set.
func Resolve(events []model.OfficerEvent) []PositionState {
	groups := make(map[string]*PositionState)
	var order []string

	for _, ev := range events {
		key := ev.NormalizedName + "|" + ev.Position
		st, ok := groups[key]
		if !ok {
			st = &PositionState{
				NormalizedName: ev.NormalizedName,
				PersonName:     ev.PersonName,
				Position:       ev.Position,
				CompanyName:    ev.CompanyName,
			}
			groups[key] = st
			order = append(order, key)
		}
		if st.CompanyName == "" {
			st.CompanyName = ev.CompanyName
		}
		st.History = append(st.History, ev)
	}

	states := make([]PositionState, 0, len(order))
	for _, key := range order {
		st := groups[key]
		sort.SliceStable(st.History, func(i, j int) bool {
			return st.History[i].Date.Before(st.History[j].Date)
		})
		for _, ev := range st.History {
			switch {
			case ev.IsAppointment():
				st.Active = true
				st.Since = ev.Date
			case ev.IsCessation():
				st.Active = false
				st.Since = time.Time{}
			}
		}
		states = append(states, *st)
	}

	sort.SliceStable(states, func(i, j int) bool {
		if states[i].NormalizedName != states[j].NormalizedName {
			return states[i].NormalizedName < states[j].NormalizedName
		}
		return states[i].Position < states[j].Position
	})
	return states
}

// Current filters the resolved states down to the active ones.
func Current(states []PositionState) []PositionState {
	var active []PositionState
	for _, st := range states {
		if st.Active {
			active = append(active, st)
		}
	}
	return active
}
