// Package extract pulls officer events and corporate events out of
// bulletin text. Extraction is best effort: candidates that fail
// position resolution or name validation are dropped, never surfaced as
// errors.
package extract

import (
	"regexp"
	"strings"

	"github.com/bormex/bormex/internal/identity"
	"github.com/bormex/bormex/internal/vocab"
)

func foldTerm(s string) string {
	return strings.ToLower(identity.StripDiacritics(strings.Join(strings.Fields(s), " ")))
}

// Common-abbreviation table, keyed by folded spelling. Works without the
// vocabulary table, which keeps the fallback strategies functional when
// the table has not been loaded.
var positionAbbrevs = map[string]string{
	"adm.":          "Administrador",
	"adm. sol.":     "Administrador Solidario",
	"adm. solid.":   "Administrador Solidario",
	"adm.solid.":    "Administrador Solidario",
	"adm. manc.":    "Administrador Mancomunado",
	"adm. unico":    "Administrador Único",
	"admdor. unico": "Administrador Único",
	"cons.":         "Consejero",
	"cons. del.":    "Consejero Delegado",
	"cons.del.":     "Consejero Delegado",
	"pres.":         "Presidente",
	"vicepres.":     "Vicepresidente",
	"secr.":         "Secretario",
	"vicesecr.":     "Vicesecretario",
	"liq.":          "Liquidador",
	"liq. unico":    "Liquidador Único",
	"liq. sol.":     "Liquidador Solidario",
	"liq. solid.":   "Liquidador Solidario",
	"liq. manc.":    "Liquidador Mancomunado",
	"apod.":         "Apoderado",
	"apod. sol.":    "Apoderado Solidario",
	"apod. solid.":  "Apoderado Solidario",
	"apod. manc.":   "Apoderado Mancomunado",
	"aud.":          "Auditor",
	"aud. supl.":    "Auditor Suplente",
	"repr.":         "Representante",
	"dir. gral.":    "Director General",
	"soc. unico":    "Socio Único",
}

// Fallback patterns, tried last against the folded candidate. Order
// matters: qualified forms before their generic prefix.
var fallbackPositions = []struct {
	re        *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`^adm\w*\.?\s*sol`), "Administrador Solidario"},
	{regexp.MustCompile(`^adm\w*\.?\s*manc`), "Administrador Mancomunado"},
	{regexp.MustCompile(`^adm\w*\.?\s*unico`), "Administrador Único"},
	{regexp.MustCompile(`^adm(\b|\.|inistrador)`), "Administrador"},
	{regexp.MustCompile(`^cons\w*\.?\s*del`), "Consejero Delegado"},
	{regexp.MustCompile(`^cons(\b|\.|ejero)`), "Consejero"},
	{regexp.MustCompile(`vicepres`), "Vicepresidente"},
	{regexp.MustCompile(`^pres(\b|\.|idente)`), "Presidente"},
	{regexp.MustCompile(`vicesecr`), "Vicesecretario"},
	{regexp.MustCompile(`^secr(\b|\.|etario)`), "Secretario"},
	{regexp.MustCompile(`^liq\w*\.?\s*unico`), "Liquidador Único"},
	{regexp.MustCompile(`^liq(\b|\.|uidador)`), "Liquidador"},
	{regexp.MustCompile(`^apod(\b|\.|erado)`), "Apoderado"},
	{regexp.MustCompile(`^aud(\b|\.|itor)`), "Auditor"},
	{regexp.MustCompile(`^dir\w*\.?\s*g(ene)?ral`), "Director General"},
}

// ResolvePosition maps a free-text position candidate to its canonical
// vocabulary form: exact case-insensitive match, then the abbreviation
// table, then a length-guarded substring match in either direction, then
// the fallback pattern table. A candidate that matches nothing is
// rejected and the officer event dropped.
func ResolvePosition(t *vocab.Table, raw string) (string, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), ":"))
	if s == "" {
		return "", false
	}
	folded := foldTerm(s)

	if p := t.FindPosition(s); p != "" {
		return p, true
	}
	if p, ok := positionAbbrevs[folded]; ok {
		return p, true
	}
	if len(folded) >= 4 && len(folded) <= 40 {
		for _, p := range t.Positions {
			fp := foldTerm(p)
			if strings.Contains(fp, folded) || strings.Contains(folded, fp) {
				return p, true
			}
		}
	}
	for _, f := range fallbackPositions {
		if f.re.MatchString(folded) {
			return f.canonical, true
		}
	}
	return "", false
}

// IsPositionTerm reports whether s names a position rather than a
// person, used by name validation.
func IsPositionTerm(t *vocab.Table, s string) bool {
	folded := foldTerm(s)
	if folded == "" {
		return false
	}
	if t.HasPosition(s) {
		return true
	}
	if _, ok := positionAbbrevs[folded]; ok {
		return true
	}
	for _, p := range positionAbbrevs {
		if foldTerm(p) == folded {
			return true
		}
	}
	return false
}
