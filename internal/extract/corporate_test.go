package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/vocab"
)

func entry(text string) model.Entry {
	return model.Entry{
		ID:   "t-1",
		Text: text,
		Date: time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func eventOfType(events []model.CorporateEvent, typ string) *model.CorporateEvent {
	for i := range events {
		if events[i].Type == typ {
			return &events[i]
		}
	}
	return nil
}

func TestExtractCorporateEvents_DissolutionSubtypeWindow(t *testing.T) {
	table := vocab.Default()

	// "voluntaria" appears within the bounded window after the mention.
	e := entry("Disolución. La junta acuerda la disolución voluntaria de la sociedad y el nombramiento de liquidador.")
	events := ExtractCorporateEvents(table, e)

	dis := eventOfType(events, "Disolución")
	if dis == nil {
		t.Fatalf("Expected a dissolution event, got %+v", events)
	}
	if dis.Details["subtype"] != "voluntary" {
		t.Errorf("subtype = %q, want voluntary", dis.Details["subtype"])
	}
	if DeriveStatus(events) != model.StatusDissolvedVoluntary {
		t.Errorf("Status = %q, want dissolved_voluntary", DeriveStatus(events))
	}
}

func TestExtractCorporateEvents_SubtypeOutsideWindowIgnored(t *testing.T) {
	table := vocab.Default()

	// "voluntaria" sits far beyond the 150-char window; the subtype must
	// stay unknown instead of picking up unrelated wording.
	padding := strings.Repeat("la sociedad continua sus tramites registrales ordinarios ", 6)
	e := entry("Disolución de la sociedad. " + padding + " inscripción voluntaria de otros acuerdos.")
	events := ExtractCorporateEvents(table, e)

	dis := eventOfType(events, "Disolución")
	if dis == nil {
		t.Fatal("Expected a dissolution event")
	}
	if dis.Details["subtype"] != "unknown" {
		t.Errorf("subtype = %q, want unknown", dis.Details["subtype"])
	}
}

func TestExtractCorporateEvents_ConstitutionDetails(t *testing.T) {
	table := vocab.Default()
	e := entry("Constitución. Comienzo de operaciones: 1.04.2019. Objeto social: venta de maquinaria agricola. Domicilio: C/ Mayor 12 Madrid. Capital: 3.000 euros.")

	events := ExtractCorporateEvents(table, e)
	con := eventOfType(events, "Constitución")
	if con == nil {
		t.Fatalf("Expected constitution event, got %+v", events)
	}
	if con.Details["constitution_date"] != "1.04.2019" {
		t.Errorf("constitution_date = %q", con.Details["constitution_date"])
	}
	if con.Details["capital"] != "3.000 euros" {
		t.Errorf("capital = %q", con.Details["capital"])
	}
	if !strings.Contains(con.Details["address"], "Mayor 12") {
		t.Errorf("address = %q", con.Details["address"])
	}
	if !strings.Contains(con.Details["activity"], "maquinaria") {
		t.Errorf("activity = %q", con.Details["activity"])
	}
}

func TestExtractCorporateEvents_ConstitutionDetailNotAddressChange(t *testing.T) {
	table := vocab.Default()

	// A "Domicilio:" detail line right after a Constitución header
	// belongs to the constitution, not to an address-change event.
	e := entry("Constitución. Domicilio: C/ Mayor 12 Madrid. Capital: 3.000 euros.")
	events := ExtractCorporateEvents(table, e)

	if ev := eventOfType(events, "Cambio de domicilio social"); ev != nil {
		t.Errorf("Constitution detail misclassified as address change: %+v", ev)
	}
	if eventOfType(events, "Constitución") == nil {
		t.Error("Expected a constitution event")
	}
}

func TestExtractCorporateEvents_AddressChange(t *testing.T) {
	table := vocab.Default()
	e := entry("Cambio de domicilio social. Nuevo domicilio: Avenida del Puerto 21, Valencia.")
	events := ExtractCorporateEvents(table, e)

	ev := eventOfType(events, "Cambio de domicilio social")
	if ev == nil {
		t.Fatalf("Expected address change event, got %+v", events)
	}
	if !strings.Contains(ev.Details["address"], "Avenida del Puerto 21") {
		t.Errorf("address = %q", ev.Details["address"])
	}
}

func TestExtractCorporateEvents_CapitalIncrease(t *testing.T) {
	table := vocab.Default()
	e := entry("Ampliación de capital. Capital: 120.000,00 euros. Resultante suscrito: 180.000 euros.")
	events := ExtractCorporateEvents(table, e)

	ev := eventOfType(events, "Ampliación de capital")
	if ev == nil {
		t.Fatalf("Expected capital increase event, got %+v", events)
	}
	if ev.Details["capital"] != "120.000,00" {
		t.Errorf("capital = %q, want 120.000,00", ev.Details["capital"])
	}
}

func TestExtractCorporateEvents_EmptyEntry(t *testing.T) {
	table := vocab.Default()
	if events := ExtractCorporateEvents(table, entry("")); len(events) != 0 {
		t.Errorf("Expected no events for empty text, got %+v", events)
	}
}

func TestDeriveStatus_Precedence(t *testing.T) {
	mk := func(typ, subtype string) model.CorporateEvent {
		ev := model.CorporateEvent{Type: typ, Group: model.GroupLifecycle}
		if subtype != "" {
			ev.Details = map[string]string{"subtype": subtype}
		}
		return ev
	}

	cases := []struct {
		name   string
		events []model.CorporateEvent
		want   model.CompanyStatus
	}{
		{"extinction beats dissolution", []model.CorporateEvent{mk("Disolución", "voluntary"), mk("Extinción", "")}, model.StatusExtinct},
		{"dissolution beats bankruptcy", []model.CorporateEvent{mk("Situación concursal", ""), mk("Disolución", "judicial")}, model.StatusDissolvedJudicial},
		{"bankruptcy beats suspension", []model.CorporateEvent{mk("Suspensión de pagos", ""), mk("Quiebra", "")}, model.StatusBankrupt},
		{"suspension alone", []model.CorporateEvent{mk("Suspensión de pagos", "")}, model.StatusSuspended},
		{"constitution implies active", []model.CorporateEvent{mk("Constitución", "")}, model.StatusActive},
		{"any event implies active", []model.CorporateEvent{mk("Ampliación de capital", "")}, model.StatusActive},
		{"no events", nil, model.StatusUnknown},
		{"untyped dissolution", []model.CorporateEvent{mk("Disolución", "")}, model.StatusDissolved},
	}
	for _, tc := range cases {
		if got := DeriveStatus(tc.events); got != tc.want {
			t.Errorf("%s: DeriveStatus = %q, want %q", tc.name, got, tc.want)
		}
	}
}
