// Package segment splits raw bulletin text into ordered semantic
// sections. Periods are the only sentence delimiter the bulletins use,
// but abbreviations, dates, registry codes and decimal numbers also
// contain periods, so a lexical guard protects those spans before the
// split and restores them verbatim afterwards.
package segment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Spanish title/role/company-form abbreviations whose trailing period
// never ends a sentence. Longest forms first so "S.L.U." wins over "S.L.".
var guardAbbrevs = []string{
	"S.L.U", "S.A.U", "S.L.L", "S.L.P", "S.R.L", "S.Coop", "C.I.F",
	"S.L", "S.A", "R.M",
	"Vicepres", "Vicesecr", "Mancom", "Admdor", "Admon", "Solid",
	"Consj", "Excmo", "Srta", "Apod", "Cons", "Delg", "Gral", "Ilmo",
	"Manc", "Pres", "Repr", "Secr", "Supl", "Avda", "Ctra", "Plza",
	"Unico", "Único", "Adm", "Aud", "Del", "Dir", "Dña", "Dna", "Liq",
	"Núm", "núm", "Num", "num", "Art", "art", "Pza", "Sol", "Sra", "Sr",
	"D",
}

var (
	abbrevRe   *regexp.Regexp
	dateRe     = regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{2,4}\b`)
	registryRe = regexp.MustCompile(`[A-Z][A-Z/\s]{0,3}\d+(?:\s*,\s*[A-Z][A-Z/\s]{0,3}\d+)*\s*\(\s*(?:\d{1,2}\.\d{1,2}\.\d{2,4}|\x00\d+\x00)\s*\)\s*\.`)
	decimalRe  = regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})+(?:,\d+)?\b`)

	placeholderRe = regexp.MustCompile("\x00(\\d+)\x00")
)

func init() {
	alternatives := make([]string, len(guardAbbrevs))
	for i, a := range guardAbbrevs {
		alternatives[i] = regexp.QuoteMeta(a)
	}
	abbrevRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(alternatives, "|") + `)\.`)
}

// Guarded is text whose protected spans have been replaced by
// period-free placeholder tokens, plus the spans needed to restore them.
type Guarded struct {
	Text  string
	spans []string
}

// Guard protects non-sentence-ending periods in priority order:
// abbreviations, numeric dates, registry-reference codes, decimal
// numbers. Restore is the exact inverse on the protected spans.
func Guard(text string) *Guarded {
	// NUL is the placeholder delimiter; it never occurs in bulletin text
	// but strip it anyway so stray bytes cannot alias a placeholder.
	g := &Guarded{Text: strings.ReplaceAll(text, "\x00", "")}
	for _, re := range []*regexp.Regexp{abbrevRe, dateRe, registryRe, decimalRe} {
		g.Text = re.ReplaceAllStringFunc(g.Text, func(m string) string {
			g.spans = append(g.spans, m)
			return placeholder(len(g.spans) - 1)
		})
	}
	return g
}

func placeholder(i int) string {
	return fmt.Sprintf("\x00%d\x00", i)
}

// Restore substitutes placeholders in piece back to their original
// spans. Registry codes can contain an already-guarded date, so
// restoration loops until no placeholder remains.
func (g *Guarded) Restore(piece string) string {
	for i := 0; i < 4 && strings.Contains(piece, "\x00"); i++ {
		piece = placeholderRe.ReplaceAllStringFunc(piece, func(m string) string {
			idx, err := strconv.Atoi(strings.Trim(m, "\x00"))
			if err != nil || idx < 0 || idx >= len(g.spans) {
				return m
			}
			return g.spans[idx]
		})
	}
	return piece
}
