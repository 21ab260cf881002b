package extract

import (
	"regexp"
	"strings"

	"github.com/bormex/bormex/internal/classify"
	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/segment"
	"github.com/bormex/bormex/internal/vocab"
)

// dissolutionWindow bounds how far past a "Disolución" mention the
// subtype scan looks. Scanning the whole entry would pick up unrelated
// wording later in long notices.
const dissolutionWindow = 150

var (
	capitalAmountRe   = regexp.MustCompile(`(?i)capital[^0-9]{0,40}?([\d][\d.,]*)`)
	operationsStartRe = regexp.MustCompile(`(?i)comienzo de operaciones:\s*([0-9]+(?:[./-][0-9]+)*)`)
	newNameRe         = regexp.MustCompile(`(?i)(?:nueva\s+)?denominaci[oó]n[^:]{0,20}:\s*(.{1,80})`)
	addressRe         = regexp.MustCompile(`(?i)(?:nuevo\s+)?domicilio[^:]{0,20}:\s*(.{1,120})`)
)

// ExtractCorporateEvents scans one entry for mentions of every
// non-officer category in the vocabulary, using the fuzzy classifier,
// and extracts category-specific structured details on each hit.
func ExtractCorporateEvents(t *vocab.Table, e model.Entry) []model.CorporateEvent {
	if strings.TrimSpace(e.Text) == "" {
		return nil
	}
	sections := segment.Split(e.Text)

	var events []model.CorporateEvent
	for _, c := range t.Categories {
		if classify.IsOfficerCategory(c) {
			continue
		}
		if !classify.MatchesFuzzy(c, e.Text) {
			continue
		}
		if skipAsConstitutionDetail(c, sections) {
			continue
		}
		events = append(events, model.CorporateEvent{
			Type:    c,
			Group:   classify.GroupOf(c),
			Date:    e.Date,
			Details: extractEventDetails(c, e.Text, sections),
		})
	}
	return events
}

// skipAsConstitutionDetail suppresses identity-change events whose only
// support is a constitution detail line. "Domicilio: …" right after a
// Constitución header describes the new company's address, not an
// address change.
func skipAsConstitutionDetail(category string, sections []string) bool {
	if classify.GroupOf(category) != model.GroupIdentity {
		return false
	}
	hasConstitution := false
	explicitMention := false
	for _, s := range sections {
		if classify.IsConstitutionHeader(s) {
			hasConstitution = true
		}
		if classify.MatchesFuzzy(category, s) && !classify.IsConstitutionDetail(s) {
			explicitMention = true
		}
	}
	return hasConstitution && !explicitMention
}

func extractEventDetails(category, text string, sections []string) map[string]string {
	details := make(map[string]string)
	switch foldTerm(category) {
	case "disolucion":
		details["subtype"] = dissolutionSubtype(text)
	case "ampliacion de capital", "reduccion de capital":
		if m := capitalAmountRe.FindStringSubmatch(text); m != nil {
			details["capital"] = m[1]
		}
	case "constitucion":
		for _, s := range sections {
			folded := foldTerm(s)
			switch {
			case strings.HasPrefix(folded, "capital:"):
				details["capital"] = valueAfterColon(s)
			case strings.HasPrefix(folded, "domicilio:"):
				details["address"] = valueAfterColon(s)
			case strings.HasPrefix(folded, "objeto social:"):
				details["activity"] = valueAfterColon(s)
			}
		}
		if m := operationsStartRe.FindStringSubmatch(text); m != nil {
			details["constitution_date"] = m[1]
		}
	case "cambio de domicilio social":
		if m := addressRe.FindStringSubmatch(text); m != nil {
			details["address"] = strings.TrimSpace(m[1])
		}
	case "cambio de denominacion social":
		if m := newNameRe.FindStringSubmatch(text); m != nil {
			details["name"] = strings.TrimSpace(m[1])
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func valueAfterColon(s string) string {
	if idx := strings.Index(s, ":"); idx >= 0 {
		return strings.TrimSpace(s[idx+1:])
	}
	return ""
}

// dissolutionSubtype classifies a dissolution by scanning a bounded
// window after the mention: voluntary, judicial, bankruptcy or unknown.
func dissolutionSubtype(text string) string {
	folded := foldTerm(text)
	idx := strings.Index(folded, "disolucion")
	if idx < 0 {
		return "unknown"
	}
	end := idx + len("disolucion") + dissolutionWindow
	if end > len(folded) {
		end = len(folded)
	}
	window := folded[idx:end]
	switch {
	case strings.Contains(window, "voluntaria"):
		return "voluntary"
	case strings.Contains(window, "judicial"):
		return "judicial"
	case strings.Contains(window, "concurso"), strings.Contains(window, "quiebra"):
		return "bankruptcy"
	default:
		return "unknown"
	}
}

// DeriveStatus folds a company's corporate events into its single
// derived status. Precedence runs most terminal first: extinction,
// dissolution (sub-typed), bankruptcy, suspension of payments, then
// constitution or any other activity implying an active company.
func DeriveStatus(events []model.CorporateEvent) model.CompanyStatus {
	var (
		dissolution *model.CorporateEvent
		hasAny      = len(events) > 0
	)
	for i := range events {
		switch foldTerm(events[i].Type) {
		case "extincion":
			return model.StatusExtinct
		case "disolucion":
			if dissolution == nil {
				dissolution = &events[i]
			}
		}
	}
	if dissolution != nil {
		switch dissolution.Details["subtype"] {
		case "voluntary":
			return model.StatusDissolvedVoluntary
		case "judicial":
			return model.StatusDissolvedJudicial
		case "bankruptcy":
			return model.StatusDissolvedBankruptcy
		default:
			return model.StatusDissolved
		}
	}
	for i := range events {
		switch foldTerm(events[i].Type) {
		case "situacion concursal", "quiebra":
			return model.StatusBankrupt
		}
	}
	for i := range events {
		if foldTerm(events[i].Type) == "suspension de pagos" {
			return model.StatusSuspended
		}
	}
	if hasAny {
		return model.StatusActive
	}
	return model.StatusUnknown
}
