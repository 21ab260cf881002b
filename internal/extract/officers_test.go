package extract

import (
	"strings"
	"testing"
	"unicode"

	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/vocab"
)

func TestExtractOfficers_InlineCategories(t *testing.T) {
	table := vocab.Default()
	text := "Ceses/Dimisiones. Adm. Solid.: JUAN PEREZ GARCIA;MARIA LOPEZ RUIZ. Nombramientos. Liquidador: CARLOS RUIZ SOTO."

	events := ExtractOfficers(table, text)
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d: %+v", len(events), events)
	}

	byName := make(map[string]model.OfficerEvent)
	for _, ev := range events {
		byName[ev.PersonName] = ev
	}

	juan, ok := byName["JUAN PEREZ GARCIA"]
	if !ok {
		t.Fatal("Missing event for JUAN PEREZ GARCIA")
	}
	if juan.Position != "Administrador Solidario" {
		t.Errorf("Juan position = %q, want Administrador Solidario", juan.Position)
	}
	if !juan.IsCessation() {
		t.Errorf("Juan category = %q, want a cessation", juan.Category)
	}

	maria, ok := byName["MARIA LOPEZ RUIZ"]
	if !ok {
		t.Fatal("Missing event for MARIA LOPEZ RUIZ")
	}
	if maria.Position != "Administrador Solidario" || !maria.IsCessation() {
		t.Errorf("Maria = %+v, want Administrador Solidario cessation", maria)
	}

	carlos, ok := byName["CARLOS RUIZ SOTO"]
	if !ok {
		t.Fatal("Missing event for CARLOS RUIZ SOTO")
	}
	if carlos.Position != "Liquidador" || !carlos.IsAppointment() {
		t.Errorf("Carlos = %+v, want Liquidador appointment", carlos)
	}
}

func TestExtractOfficers_StructuredSections(t *testing.T) {
	table := vocab.Default()
	text := "Nombramientos. Administrador Unico: ANA GOMEZ TORRES. Datos registrales. T 1234, F 56, S 8 (12.05.19)."

	events := ExtractOfficers(table, text)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d: %+v", len(events), events)
	}
	if events[0].PersonName != "ANA GOMEZ TORRES" {
		t.Errorf("Name = %q", events[0].PersonName)
	}
	if events[0].Position != "Administrador Único" {
		t.Errorf("Position = %q, want Administrador Único", events[0].Position)
	}
}

func TestExtractOfficers_ConstitutionBlockYieldsAppointments(t *testing.T) {
	table := vocab.Default()
	text := "Constitución. Comienzo de operaciones: 1.04.2019. Objeto social: venta de maquinaria. Domicilio: C/ Mayor 12, Madrid. Capital: 3.000 euros. Administrador Unico: PEDRO SANZ VILA."

	events := ExtractOfficers(table, text)
	if len(events) != 1 {
		t.Fatalf("Expected 1 appointment, got %d: %+v", len(events), events)
	}
	if !events[0].IsAppointment() {
		t.Errorf("Constitution officers must be appointments, got %q", events[0].Category)
	}
	if events[0].PersonName != "PEDRO SANZ VILA" {
		t.Errorf("Name = %q", events[0].PersonName)
	}
}

func TestExtractOfficers_DedupWithinCategory(t *testing.T) {
	table := vocab.Default()
	// Structured and inline passes both see this text; dedup must keep
	// one event per (name, position) within the category.
	text := "Nombramientos. Liquidador: CARLOS RUIZ SOTO. Nombramientos. Liquidador: CARLOS RUIZ SOTO."

	events := ExtractOfficers(table, text)
	seen := make(map[string]int)
	for _, ev := range events {
		seen[ev.Category+"|"+ev.PersonName+"|"+ev.Position]++
	}
	for key, n := range seen {
		if n > 1 {
			t.Errorf("Duplicate events for %s: %d", key, n)
		}
	}
}

func TestExtractOfficers_NameValidityInvariant(t *testing.T) {
	table := vocab.Default()
	texts := []string{
		"Ceses/Dimisiones. Adm. Solid.: JUAN PEREZ GARCIA;MARIA LOPEZ RUIZ. Nombramientos. Liquidador: CARLOS RUIZ SOTO.",
		"Nombramientos. Administrador Unico: ANA GOMEZ TORRES.",
		"Nombramientos. Administrador: 12345. Secretario: X.",
	}
	for _, text := range texts {
		for _, ev := range ExtractOfficers(table, text) {
			parts := strings.Fields(ev.PersonName)
			if len(parts) < 2 {
				t.Errorf("Emitted name with <2 tokens: %q", ev.PersonName)
			}
			if !unicode.IsUpper([]rune(ev.PersonName)[0]) {
				t.Errorf("Emitted name without initial capital: %q", ev.PersonName)
			}
			if strings.ContainsAny(ev.PersonName, "0123456789") {
				t.Errorf("Emitted name with digits: %q", ev.PersonName)
			}
		}
	}
}

func TestExtractOfficers_UnknownPositionDropped(t *testing.T) {
	table := vocab.Default()
	text := "Nombramientos. Gerente de ventas regionales: JUAN PEREZ GARCIA."

	for _, ev := range ExtractOfficers(table, text) {
		if ev.PersonName == "JUAN PEREZ GARCIA" && ev.Position == "" {
			t.Error("Event with unresolved position must be dropped, not emitted empty")
		}
	}
}

func TestExtractOfficers_ProximityFallback(t *testing.T) {
	table := vocab.Default()
	// No category headers and no "Position: Names" shape; only the
	// keyword-proximity strategy can catch this.
	text := "Se hace constar que el administrador JUAN PEREZ GARCIA actuó en representación de la sociedad"

	events := ExtractOfficers(table, text)
	if len(events) != 1 {
		t.Fatalf("Expected 1 proximity event, got %d: %+v", len(events), events)
	}
	if events[0].Position != "Administrador" {
		t.Errorf("Position = %q, want Administrador", events[0].Position)
	}
	if events[0].PersonName != "JUAN PEREZ GARCIA" {
		t.Errorf("Name = %q, want JUAN PEREZ GARCIA", events[0].PersonName)
	}
}

func TestExtractOfficers_EmptyVocabularyDegrades(t *testing.T) {
	empty := vocab.Empty()
	// Abbreviation table still resolves positions without a vocabulary.
	text := "Adm. Solid.: JUAN PEREZ GARCIA"

	events := ExtractOfficers(empty, text)
	if len(events) != 1 {
		t.Fatalf("Expected abbreviation-table fallback to work, got %+v", events)
	}
	if events[0].Position != "Administrador Solidario" {
		t.Errorf("Position = %q", events[0].Position)
	}
}

func TestExtractOfficers_MalformedInput(t *testing.T) {
	table := vocab.Default()
	for _, text := range []string{"", "   ", "...", ":::"} {
		if events := ExtractOfficers(table, text); len(events) != 0 {
			t.Errorf("ExtractOfficers(%q) = %+v, want empty", text, events)
		}
	}
}

func TestResolvePosition(t *testing.T) {
	table := vocab.Default()
	cases := map[string]string{
		"Administrador Solidario": "Administrador Solidario", // exact
		"ADM. SOLID.":             "Administrador Solidario", // abbreviation
		"Adm. Solid.":             "Administrador Solidario",
		"LIQUIDADOR":              "Liquidador",
		"Liquidador:":             "Liquidador",
		"Adm. Unico:":             "Administrador Único", // trailing colon stripped before lookup
		"administrador unico":     "Administrador Único",
		"Secretario no Consejero": "Secretario no Consejero",
	}
	for in, want := range cases {
		got, ok := ResolvePosition(table, in)
		if !ok || got != want {
			t.Errorf("ResolvePosition(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}

	for _, bad := range []string{"", "Comienzo de operaciones", "Capital", "Objeto social"} {
		if got, ok := ResolvePosition(table, bad); ok {
			t.Errorf("ResolvePosition(%q) unexpectedly resolved to %q", bad, got)
		}
	}
}

func TestValidName(t *testing.T) {
	table := vocab.Default()
	valid := []string{
		"JUAN PEREZ GARCIA",
		"María López Ruiz",
		"JOSE-LUIS GOMEZ",
	}
	for _, n := range valid {
		if !ValidName(table, n) {
			t.Errorf("ValidName(%q) = false, want true", n)
		}
	}

	invalid := []string{
		"",
		"JUAN",                    // single token
		"juan perez",              // lowercase start
		"JUAN PEREZ 2",            // digits
		"Administrador Solidario", // position term
		"COMERCIO AL POR MENOR DE PRODUCTOS ALIMENTICIOS", // business text
		strings.Repeat("NOMBRE ", 10),                     // too long
	}
	for _, n := range invalid {
		if ValidName(table, n) {
			t.Errorf("ValidName(%q) = true, want false", n)
		}
	}
}

func TestSplitNames(t *testing.T) {
	names := SplitNames("JUAN PEREZ GARCIA;MARIA LOPEZ RUIZ, CARLOS RUIZ SOTO")
	if len(names) != 3 {
		t.Fatalf("Expected 3 names, got %v", names)
	}
}

func TestIsBusinessText(t *testing.T) {
	if !IsBusinessText("CNAE 4711 comercio al por menor") {
		t.Error("CNAE mention should be business text")
	}
	if !IsBusinessText(strings.Repeat("x", 101)) {
		t.Error("Over-long text should be business text")
	}
	if IsBusinessText("JUAN PEREZ GARCIA") {
		t.Error("A plain name is not business text")
	}
}
