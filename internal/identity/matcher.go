package identity

import "strings"

// SamePerson decides whether two free-text names refer to the same
// person. Exact normalized equality wins; otherwise agreement of the
// final two surname tokens overrides token-overlap scoring, because
// Spanish double-surname conventions make surname agreement a stronger
// identity signal than generic overlap. Failing both, Jaccard similarity
// of the significant-part sets decides.
func SamePerson(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	ta, tb := strings.Fields(na), strings.Fields(nb)
	longEnough := (len(ta) >= 2 && len(tb) >= 3) || (len(ta) >= 3 && len(tb) >= 2)
	if longEnough {
		if ta[len(ta)-1] == tb[len(tb)-1] && ta[len(ta)-2] == tb[len(tb)-2] {
			return true
		}
	}

	sa := partSet(na)
	sb := partSet(nb)
	shared := 0
	for p := range sa {
		if sb[p] {
			shared++
		}
	}
	union := len(sa) + len(sb) - shared
	if union == 0 {
		return false
	}
	jaccard := float64(shared) / float64(union)
	return jaccard >= 0.5 || shared >= 2
}

func partSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, p := range SignificantParts(normalized) {
		set[p] = true
	}
	return set
}

// Grouper folds variant spellings into canonical names. Not safe for
// concurrent use; build one per aggregation.
type Grouper struct {
	groups []group
}

type group struct {
	canonical string // longest variant seen, original spelling
}

// NewGrouper returns an empty grouper.
func NewGrouper() *Grouper {
	return &Grouper{}
}

// Canonical returns the canonical spelling for name, creating a new
// group when no existing group matches. The longest variant observed for
// a group becomes its canonical form.
func (g *Grouper) Canonical(name string) string {
	for i := range g.groups {
		if SamePerson(g.groups[i].canonical, name) {
			if len(name) > len(g.groups[i].canonical) {
				g.groups[i].canonical = name
			}
			return g.groups[i].canonical
		}
	}
	g.groups = append(g.groups, group{canonical: name})
	return name
}
