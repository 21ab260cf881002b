// Package classify labels bulletin sections with top-level corporate
// event categories. Exact matching locates section boundaries; fuzzy
// matching only recognizes category mentions inside free text. The two
// modes are deliberately separate: a detail line like "Domicilio: …"
// must never be mistaken for the "Cambio de domicilio social" header.
package classify

import (
	"strings"

	"github.com/bormex/bormex/internal/identity"
	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/vocab"
)

// fold lower-cases and strips diacritics so that the all-caps accentless
// spelling used in bulletins matches the canonical category names.
func fold(s string) string {
	return strings.ToLower(identity.StripDiacritics(strings.TrimSpace(s)))
}

var groupOf = map[string]model.Group{
	"constitucion":               model.GroupLifecycle,
	"disolucion":                 model.GroupLifecycle,
	"extincion":                  model.GroupLifecycle,
	"reactivacion":               model.GroupLifecycle,
	"transformacion de sociedad": model.GroupLifecycle,
	"situacion concursal":        model.GroupLifecycle,
	"suspension de pagos":        model.GroupLifecycle,
	"quiebra":                    model.GroupLifecycle,

	"ampliacion de capital":   model.GroupCapital,
	"reduccion de capital":    model.GroupCapital,
	"emision de obligaciones": model.GroupCapital,

	"fusion por absorcion":             model.GroupStructural,
	"fusion por union":                 model.GroupStructural,
	"escision":                         model.GroupStructural,
	"cesion global de activo y pasivo": model.GroupStructural,
	"cambio de objeto social":          model.GroupStructural,
	"ampliacion del objeto social":     model.GroupStructural,

	"cambio de denominacion social": model.GroupIdentity,
	"cambio de domicilio social":    model.GroupIdentity,

	"modificaciones estatutarias": model.GroupGovernance,

	"declaracion de unipersonalidad":          model.GroupOwnership,
	"perdida del caracter de unipersonalidad": model.GroupOwnership,

	"nombramientos":    model.GroupOfficers,
	"reelecciones":     model.GroupOfficers,
	"ceses/dimisiones": model.GroupOfficers,
	"revocaciones":     model.GroupOfficers,

	"datos registrales": model.GroupAdministrative,
	"fe de erratas":     model.GroupAdministrative,
	"otros conceptos":   model.GroupAdministrative,
}

// GroupOf maps a category name to its high-level group.
func GroupOf(category string) model.Group {
	if g, ok := groupOf[fold(category)]; ok {
		return g
	}
	return model.GroupOther
}

// IsOfficerCategory reports whether category names officer movements.
func IsOfficerCategory(category string) bool {
	return GroupOf(category) == model.GroupOfficers
}

// OfficerCategories lists the officer categories in canonical order.
func OfficerCategories() []string {
	return []string{
		model.CategoryAppointment,
		model.CategoryReelection,
		model.CategoryCessation,
		model.CategoryRevocation,
	}
}

// Exact resolves a section that IS a category header: trimmed,
// case-folded, accent-folded equality against the vocabulary. Returns
// the canonical category name. Exact mode never falls back to fuzzy
// containment.
func Exact(t *vocab.Table, section string) (string, bool) {
	folded := fold(section)
	if folded == "" {
		return "", false
	}
	for _, c := range t.Categories {
		if fold(c) == folded {
			return c, true
		}
	}
	return "", false
}

// Constitution-detail prefixes. These lines follow a "Constitución"
// header and describe the new company; they are folded into that
// category rather than treated as headers of their own.
var constitutionDetailPrefixes = []string{
	"comienzo de operaciones:",
	"domicilio:",
	"capital:",
	"objeto social:",
	"duracion:",
}

// IsConstitutionHeader reports whether the section is the Constitución
// header itself. The header belongs to the closed built-in category set,
// so this does not depend on the loaded vocabulary.
func IsConstitutionHeader(section string) bool {
	return fold(section) == "constitucion"
}

// IsConstitutionDetail recognizes detail lines of a constitution block.
func IsConstitutionDetail(section string) bool {
	folded := fold(section)
	for _, p := range constitutionDetailPrefixes {
		if strings.HasPrefix(folded, p) {
			return true
		}
	}
	return false
}

// Per-category synonym rules for fuzzy matching: the category is
// recognized when every term of any one group is present.
var fuzzySynonyms = map[string][][]string{
	"ampliacion del objeto social":  {{"objeto", "ampliacion"}},
	"cambio de objeto social":       {{"objeto", "cambio"}},
	"cambio de domicilio social":    {{"domicilio", "cambio"}, {"traslado de domicilio"}},
	"cambio de denominacion social": {{"denominacion", "cambio"}},
	"ceses/dimisiones":              {{"ceses"}, {"dimisiones"}},
	"situacion concursal":           {{"concurso de acreedores"}, {"situacion concursal"}},
}

// Fuzzy finds category mentions inside free text: substring containment
// of the folded category name, extended by per-category synonym rules.
// Used for in-text corporate-event scanning only, never for boundaries.
func Fuzzy(t *vocab.Table, text string) []string {
	folded := fold(text)
	if folded == "" {
		return nil
	}
	var found []string
	for _, c := range t.Categories {
		if matchesFuzzy(c, folded) {
			found = append(found, c)
		}
	}
	return found
}

// MatchesFuzzy reports whether one category is mentioned in the text.
func MatchesFuzzy(category, text string) bool {
	return matchesFuzzy(category, fold(text))
}

func matchesFuzzy(category, foldedText string) bool {
	fc := fold(category)
	if strings.Contains(foldedText, fc) {
		return true
	}
	for _, terms := range fuzzySynonyms[fc] {
		all := true
		for _, term := range terms {
			if !strings.Contains(foldedText, term) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// LooksLikeCompanyName is the coarse query-routing heuristic: two to
// four words and no question mark. It has known false positives (person
// names pass it too), so callers treat it as a hint, never as ground
// truth. Kept separate from the extractors so it can be replaced
// without touching them.
func LooksLikeCompanyName(query string) bool {
	if strings.ContainsRune(query, '?') {
		return false
	}
	n := len(strings.Fields(query))
	return n >= 2 && n <= 4
}
