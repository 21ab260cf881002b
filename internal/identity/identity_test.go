package identity

import (
	"strings"
	"testing"
)

func TestNormalize_Honorifics(t *testing.T) {
	cases := map[string]string{
		"Don Juan Pérez García":  "JUAN PEREZ GARCIA",
		"DOÑA MARÍA LÓPEZ RUIZ":  "MARIA LOPEZ RUIZ",
		"D. Carlos  Ruiz   Soto": "CARLOS RUIZ SOTO",
		"Dña. Ana Gómez":         "ANA GOMEZ",
		"JUAN PEREZ GARCIA JR.":  "JUAN PEREZ GARCIA",
		"ROBERT SMITH III":       "ROBERT SMITH",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
	if got := Normalize("   "); got != "" {
		t.Errorf("Normalize(blank) = %q, want empty", got)
	}
}

func TestSignificantParts(t *testing.T) {
	short := SignificantParts("JUAN PEREZ GARCIA")
	if len(short) != 3 {
		t.Fatalf("Expected 3 parts for a 3-token name, got %v", short)
	}

	long := SignificantParts("JUAN CARLOS PEREZ GARCIA")
	if len(long) != 3 {
		t.Fatalf("Expected 3 significant parts, got %v", long)
	}
	if long[0] != "JUAN" || long[1] != "PEREZ" || long[2] != "GARCIA" {
		t.Errorf("Expected first token plus final surname pair, got %v", long)
	}
}

func TestSamePerson_ExactAndVariants(t *testing.T) {
	if !SamePerson("Don Juan Pérez García", "JUAN PEREZ GARCIA") {
		t.Error("Honorific/diacritic variants should match")
	}
	if SamePerson("JUAN PEREZ GARCIA", "CARLOS RUIZ SOTO") {
		t.Error("Unrelated names should not match")
	}
	if SamePerson("", "JUAN PEREZ") {
		t.Error("Empty name should never match")
	}
}

func TestSamePerson_SurnameOverride(t *testing.T) {
	// Shared first token and shared final surname pair: same person even
	// though one filing carries an extra middle surname.
	if !SamePerson("GOSLIN COX BRUCE RIDGWAY", "GOSLIN BRUCE RIDGWAY") {
		t.Error("Expected surname-pair override to group the variants")
	}
}

func TestSamePerson_TokenOverlap(t *testing.T) {
	// Two shared significant tokens are enough.
	if !SamePerson("JUAN PEREZ GARCIA", "JUAN PEREZ") {
		t.Error("Expected two shared tokens to match")
	}
	if SamePerson("JUAN PEREZ", "MARIA LOPEZ") {
		t.Error("Disjoint names should not match")
	}
}

func TestGrouper_CanonicalPicksLongest(t *testing.T) {
	g := NewGrouper()
	first := g.Canonical("GOSLIN BRUCE RIDGWAY")
	if first != "GOSLIN BRUCE RIDGWAY" {
		t.Fatalf("First variant should be canonical, got %q", first)
	}
	second := g.Canonical("GOSLIN COX BRUCE RIDGWAY")
	if second != "GOSLIN COX BRUCE RIDGWAY" {
		t.Fatalf("Longer variant should take over as canonical, got %q", second)
	}
	// The earlier spelling now resolves to the longer canonical form.
	if got := g.Canonical("GOSLIN BRUCE RIDGWAY"); got != "GOSLIN COX BRUCE RIDGWAY" {
		t.Errorf("Expected grouped canonical, got %q", got)
	}
}

func TestStripDiacritics(t *testing.T) {
	got := StripDiacritics("ÁÉÍÓÚÑü")
	if strings.ContainsAny(got, "ÁÉÍÓÚÑü") {
		t.Errorf("Expected all diacritics removed, got %q", got)
	}
	if got != "AEIOUNu" {
		t.Errorf("StripDiacritics = %q, want AEIOUNu", got)
	}
}
