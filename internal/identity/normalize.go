// Package identity canonicalizes personal names and groups variant
// spellings of the same person across filings. Spanish naming conventions
// drive the heuristics: two surnames, optional honorifics, and frequent
// omission of middle names between filings.
package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks (Á → A, Ñ → N).
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Honorific prefixes and generational suffixes, compared after
// uppercasing and diacritic stripping (DOÑA → DONA, DÑA. → DNA.).
var (
	honorifics = map[string]bool{
		"DON": true, "DONA": true, "D.": true, "DNA.": true,
	}
	suffixes = map[string]bool{
		"JR": true, "JR.": true, "SR": true, "SR.": true,
		"III": true, "IV": true,
	}
)

// Normalize canonicalizes a personal name: uppercase, collapsed
// whitespace, honorific prefixes and generational suffixes stripped,
// diacritics removed.
func Normalize(name string) string {
	s := strings.Join(strings.Fields(name), " ")
	s = StripDiacritics(strings.ToUpper(s))

	tokens := strings.Fields(s)
	for len(tokens) > 1 && honorifics[tokens[0]] {
		tokens = tokens[1:]
	}
	for len(tokens) > 1 && suffixes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// SignificantParts extracts the tokens that carry identity. Short names
// keep everything; longer names keep the first token (given name) plus
// the final two (the Spanish surname pair).
func SignificantParts(normalized string) []string {
	tokens := strings.Fields(normalized)
	if len(tokens) <= 3 {
		return tokens
	}
	return []string{tokens[0], tokens[len(tokens)-2], tokens[len(tokens)-1]}
}
