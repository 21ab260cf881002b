package temporal

import (
	"testing"
	"time"

	"github.com/bormex/bormex/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func event(name, position, category string, when time.Time) model.OfficerEvent {
	return model.OfficerEvent{
		PersonName:     name,
		NormalizedName: name,
		Position:       position,
		Category:       category,
		Date:           when,
	}
}

func TestResolve_LastEventWins(t *testing.T) {
	events := []model.OfficerEvent{
		event("JUAN PEREZ GARCIA", "Administrador", model.CategoryAppointment, date(2019, 3, 1)),
		event("JUAN PEREZ GARCIA", "Administrador", model.CategoryCessation, date(2021, 7, 15)),
		event("JUAN PEREZ GARCIA", "Administrador", model.CategoryAppointment, date(2023, 1, 10)),
	}

	states := Resolve(events)
	if len(states) != 1 {
		t.Fatalf("Expected 1 state, got %d", len(states))
	}
	st := states[0]
	if !st.Active {
		t.Error("Expected active after reappointment")
	}
	if !st.Since.Equal(date(2023, 1, 10)) {
		t.Errorf("Since = %v, want 2023-01-10", st.Since)
	}
	if len(st.History) != 3 {
		t.Errorf("History length = %d, want 3", len(st.History))
	}
}

func TestResolve_CessationLastMeansInactive(t *testing.T) {
	events := []model.OfficerEvent{
		// Deliberately out of order; the resolver must sort by date.
		event("MARIA LOPEZ RUIZ", "Secretario", model.CategoryCessation, date(2022, 5, 1)),
		event("MARIA LOPEZ RUIZ", "Secretario", model.CategoryAppointment, date(2018, 2, 1)),
	}

	states := Resolve(events)
	if len(states) != 1 {
		t.Fatalf("Expected 1 state, got %d", len(states))
	}
	if states[0].Active {
		t.Error("Expected inactive after final cessation")
	}
	if !states[0].Since.IsZero() {
		t.Errorf("Inactive state must not carry a since date, got %v", states[0].Since)
	}
}

func TestResolve_UndatedEventsSortFirst(t *testing.T) {
	events := []model.OfficerEvent{
		event("CARLOS RUIZ SOTO", "Liquidador", model.CategoryCessation, time.Time{}),
		event("CARLOS RUIZ SOTO", "Liquidador", model.CategoryAppointment, date(2020, 1, 1)),
	}

	states := Resolve(events)
	if !states[0].Active {
		t.Error("Dated appointment must take precedence over the undated cessation")
	}
}

func TestResolve_GroupsByNameAndPosition(t *testing.T) {
	events := []model.OfficerEvent{
		event("JUAN PEREZ GARCIA", "Administrador", model.CategoryAppointment, date(2020, 1, 1)),
		event("JUAN PEREZ GARCIA", "Presidente", model.CategoryAppointment, date(2020, 1, 1)),
		event("MARIA LOPEZ RUIZ", "Administrador", model.CategoryAppointment, date(2020, 1, 1)),
	}

	states := Resolve(events)
	if len(states) != 3 {
		t.Fatalf("Expected 3 distinct (name, position) groups, got %d", len(states))
	}
}

func TestResolve_ReelectionAndRevocation(t *testing.T) {
	events := []model.OfficerEvent{
		event("ANA GOMEZ TORRES", "Consejero", model.CategoryAppointment, date(2015, 1, 1)),
		event("ANA GOMEZ TORRES", "Consejero", model.CategoryReelection, date(2019, 1, 1)),
		event("ANA GOMEZ TORRES", "Consejero", model.CategoryRevocation, date(2021, 1, 1)),
	}

	states := Resolve(events)
	if states[0].Active {
		t.Error("Revocation as last event must resolve to inactive")
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	if states := Resolve(nil); len(states) != 0 {
		t.Errorf("Resolve(nil) = %v, want empty", states)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	events := []model.OfficerEvent{
		event("B B", "Secretario", model.CategoryAppointment, date(2020, 1, 1)),
		event("A A", "Presidente", model.CategoryAppointment, date(2020, 1, 1)),
	}
	first := Resolve(events)
	second := Resolve(events)
	for i := range first {
		if first[i].NormalizedName != second[i].NormalizedName {
			t.Fatal("Resolve output order is not deterministic")
		}
	}
	if first[0].NormalizedName != "A A" {
		t.Errorf("Expected sorted output, got %q first", first[0].NormalizedName)
	}
}

func TestCurrent(t *testing.T) {
	events := []model.OfficerEvent{
		event("JUAN PEREZ GARCIA", "Administrador", model.CategoryAppointment, date(2020, 1, 1)),
		event("MARIA LOPEZ RUIZ", "Secretario", model.CategoryCessation, date(2020, 1, 1)),
	}
	states := Resolve(events)
	active := Current(states)
	if len(active) != 1 || active[0].NormalizedName != "JUAN PEREZ GARCIA" {
		t.Errorf("Current = %+v, want only the active administrator", active)
	}
}
