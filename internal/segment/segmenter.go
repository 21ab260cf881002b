package segment

import "strings"

// Split segments raw entry text into ordered, non-empty, trimmed
// sections. The guard runs first so that abbreviation, date, registry
// and decimal periods never introduce a spurious boundary. Malformed or
// empty input yields an empty slice, never an error.
func Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	g := Guard(text)
	pieces := strings.Split(g.Text, ".")

	sections := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(g.Restore(p))
		if p != "" {
			sections = append(sections, p)
		}
	}
	return sections
}
