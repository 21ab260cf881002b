package extract

import (
	"regexp"
	"strings"

	"github.com/bormex/bormex/internal/classify"
	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/segment"
	"github.com/bormex/bormex/internal/vocab"
)

// Strategy is one officer-extraction heuristic with a uniform signature.
// Strategies receive the raw text plus its segmented sections and return
// candidate events carrying person name, position and category only; the
// pipeline stamps dates and source metadata afterwards.
type Strategy func(t *vocab.Table, text string, sections []string) []model.OfficerEvent

// ExtractOfficers runs the strategy chain over one entry's text. The
// structured-category and inline-pattern passes both run and merge under
// category-level dedup; the direct-pattern and name-proximity fallbacks
// only run when everything before them produced nothing. Malformed or
// empty input returns an empty slice.
func ExtractOfficers(t *vocab.Table, text string) []model.OfficerEvent {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	sections := segment.Split(text)

	phases := [][]Strategy{
		{extractStructured, extractInline},
		{extractDirect},
		{extractProximity},
	}
	for _, phase := range phases {
		var events []model.OfficerEvent
		for _, strategy := range phase {
			events = append(events, strategy(t, text, sections)...)
		}
		events = dedupeEvents(events)
		if len(events) > 0 {
			return events
		}
	}
	return nil
}

// dedupeEvents drops events sharing (name, position) within a category,
// keeping the first occurrence.
func dedupeEvents(events []model.OfficerEvent) []model.OfficerEvent {
	seen := make(map[string]bool)
	var unique []model.OfficerEvent
	for _, ev := range events {
		key := ev.Category + "|" + foldTerm(ev.PersonName) + "|" + foldTerm(ev.Position)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, ev)
		}
	}
	return unique
}

var pairRe = regexp.MustCompile(`^\s*([^:]{1,60}?)\s*:\s*(.+)$`)

// parsePairSection extracts "Position: Names" from one section, emitting
// one event per listed name under the given category.
func parsePairSection(t *vocab.Table, section, category string) []model.OfficerEvent {
	m := pairRe.FindStringSubmatch(section)
	if m == nil {
		return nil
	}
	position, ok := ResolvePosition(t, m[1])
	if !ok {
		return nil
	}
	var events []model.OfficerEvent
	for _, name := range SplitNames(m[2]) {
		if !ValidName(t, name) {
			continue
		}
		events = append(events, model.OfficerEvent{
			PersonName: name,
			Position:   position,
			Category:   category,
		})
	}
	return events
}

// extractStructured walks the segmented sections. An exact officer
// category or Constitución header opens a block that runs until the next
// recognized top-level header; every section inside is tried as a
// "Position: Names" pair. Officers inside a constitution block are the
// company's initial appointments.
func extractStructured(t *vocab.Table, _ string, sections []string) []model.OfficerEvent {
	var events []model.OfficerEvent
	i := 0
	for i < len(sections) {
		cat, ok := classify.Exact(t, sections[i])
		isConstitution := ok && classify.IsConstitutionHeader(cat)
		if !ok || (!classify.IsOfficerCategory(cat) && !isConstitution) {
			i++
			continue
		}
		eventCat := cat
		if isConstitution {
			eventCat = model.CategoryAppointment
		}
		j := i + 1
		for j < len(sections) {
			if _, isHeader := classify.Exact(t, sections[j]); isHeader {
				break
			}
			events = append(events, parsePairSection(t, sections[j], eventCat)...)
			j++
		}
		i = j
	}
	return events
}

// The four officer category labels are accentless, so a plain
// case-insensitive alternation is enough for inline scanning. The
// compound label must come before its halves.
var inlineCategoryRe = regexp.MustCompile(`(?i)\b(Ceses/Dimisiones|Nombramientos|Reelecciones|Revocaciones|Ceses|Dimisiones)\b\.?:?\s*`)

func officerCategoryFor(label string) string {
	switch foldTerm(label) {
	case "nombramientos":
		return model.CategoryAppointment
	case "reelecciones":
		return model.CategoryReelection
	case "ceses/dimisiones", "ceses", "dimisiones":
		return model.CategoryCessation
	case "revocaciones":
		return model.CategoryRevocation
	}
	return ""
}

// extractInline handles entries where several officer categories appear
// inline in one run of text. Each label opens a block terminated by the
// next label, a sentence break, or end of text. Scanning happens on
// guarded text so abbreviation periods cannot end a block early.
func extractInline(t *vocab.Table, text string, _ []string) []model.OfficerEvent {
	g := segment.Guard(text)
	locs := inlineCategoryRe.FindAllStringSubmatchIndex(g.Text, -1)

	var events []model.OfficerEvent
	for k, m := range locs {
		category := officerCategoryFor(g.Text[m[2]:m[3]])
		if category == "" {
			continue
		}
		end := len(g.Text)
		if k+1 < len(locs) {
			end = locs[k+1][0]
		}
		block := g.Text[m[1]:end]
		for _, piece := range strings.Split(block, ".") {
			piece = strings.TrimSpace(g.Restore(piece))
			if piece == "" {
				continue
			}
			events = append(events, parsePairSection(t, piece, category)...)
		}
	}
	return events
}

// extractDirect treats every "Position: Names" section as an
// appointment. Fallback for entries where no category header was
// detected at all.
func extractDirect(t *vocab.Table, _ string, sections []string) []model.OfficerEvent {
	var events []model.OfficerEvent
	for _, s := range sections {
		events = append(events, parsePairSection(t, s, model.CategoryAppointment)...)
	}
	return events
}

var (
	positionKeywordRe = regexp.MustCompile(`(?i)\b(administrador(?:\s+(?:unico|único|solidario|mancomunado))?|consejero(?:\s+delegado)?|vicepresidente|presidente|vicesecretario|secretario|liquidador|apoderado|auditor|director\s+general)\b[:,]?[ \t]*`)
	capitalRunRe      = regexp.MustCompile(`^((?:[A-ZÁÉÍÓÚÑ][\p{L}'\-]*\s+){1,4}[A-ZÁÉÍÓÚÑ][\p{L}'\-]*)`)
)

// extractProximity is the last resort: a known position keyword followed
// immediately by a run of capitalized words is taken as an appointment.
func extractProximity(t *vocab.Table, text string, _ []string) []model.OfficerEvent {
	var events []model.OfficerEvent
	for _, m := range positionKeywordRe.FindAllStringSubmatchIndex(text, -1) {
		keyword := text[m[2]:m[3]]
		position, ok := ResolvePosition(t, keyword)
		if !ok {
			continue
		}
		rest := text[m[1]:]
		nm := capitalRunRe.FindStringSubmatch(rest)
		if nm == nil {
			continue
		}
		name := strings.TrimSpace(nm[1])
		if !ValidName(t, name) {
			continue
		}
		events = append(events, model.OfficerEvent{
			PersonName: name,
			Position:   position,
			Category:   model.CategoryAppointment,
		})
	}
	return events
}
