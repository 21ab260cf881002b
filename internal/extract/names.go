package extract

import (
	"strings"
	"unicode"

	"github.com/bormex/bormex/internal/vocab"
)

// Keywords that signal business-activity prose rather than a personal
// name: industrial classification mentions and activity-sector wording.
var activityKeywords = []string{
	"cnae",
	"comercio",
	"construccion",
	"servicios",
	"actividades",
	"alquiler",
	"promocion",
	"compraventa",
	"fabricacion",
	"explotacion",
	"transporte",
	"hosteleria",
	"inmobiliari",
	"asesoramiento",
	"consultoria",
	"distribucion",
	"importacion",
	"exportacion",
	"intermediacion",
	"al por mayor",
	"al por menor",
}

// IsBusinessText reports whether s reads like an activity description
// instead of a name: CNAE mentions, sector keywords, or excessive
// length.
func IsBusinessText(s string) bool {
	if len(s) > 100 {
		return true
	}
	folded := foldTerm(s)
	for _, kw := range activityKeywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// ValidName applies the name validity filter: at least two
// whitespace-separated parts, initial capital, no digits or punctuation
// beyond Spanish diacritics, at most 50 characters, not a known position
// term, and not business-activity prose.
func ValidName(t *vocab.Table, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return false
	}
	if len(strings.Fields(s)) < 2 {
		return false
	}
	first := []rune(s)[0]
	if !unicode.IsUpper(first) {
		return false
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
		case r == ' ' || r == '\'' || r == '-':
		default:
			return false
		}
	}
	if IsPositionTerm(t, s) {
		return false
	}
	return !IsBusinessText(s)
}

// SplitNames breaks a multi-person block into individual candidates.
// Semicolons and commas both separate names within one position block.
func SplitNames(block string) []string {
	var names []string
	for _, part := range strings.FieldsFunc(block, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}
