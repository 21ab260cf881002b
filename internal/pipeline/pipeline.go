// Package pipeline orchestrates the extraction engine: one entry in,
// one structured result out, and aggregation of many results into
// company and officer records. Every parse is a pure function of the
// entry text and the vocabulary table; the Parser type only adds
// caching and diagnostics around it.
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/bormex/bormex/internal/cache"
	"github.com/bormex/bormex/internal/classify"
	"github.com/bormex/bormex/internal/extract"
	"github.com/bormex/bormex/internal/identity"
	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/segment"
	"github.com/bormex/bormex/internal/vocab"
)

// Result is the structured output of parsing one entry.
type Result struct {
	EntryID         string                          `json:"entry_id,omitempty"`
	Sections        []model.Section                 `json:"sections"`
	Officers        map[string][]model.OfficerEvent `json:"officers"`
	CorporateEvents []model.CorporateEvent          `json:"corporate_events"`
	Details         map[string]string               `json:"details,omitempty"`
}

// ParseEntry parses one bulletin entry. It never fails: malformed or
// empty input produces a result with empty sections and event lists.
func ParseEntry(t *vocab.Table, e model.Entry) *Result {
	r := &Result{
		EntryID:  e.ID,
		Sections: []model.Section{},
		Officers: emptyCategories(),
		Details:  map[string]string{},
	}

	for _, s := range segment.Split(e.Text) {
		section := model.Section{Text: s}
		if cat, ok := classify.Exact(t, s); ok {
			section.Category = cat
		} else if classify.IsConstitutionDetail(s) {
			section.Category = "Constitución"
		}
		r.Sections = append(r.Sections, section)
	}

	for _, ev := range extract.ExtractOfficers(t, e.Text) {
		ev.NormalizedName = identity.Normalize(ev.PersonName)
		ev.Date = e.Date
		ev.SourceEntryID = e.ID
		r.Officers[ev.Category] = append(r.Officers[ev.Category], ev)
	}

	r.CorporateEvents = extract.ExtractCorporateEvents(t, e)
	if r.CorporateEvents == nil {
		r.CorporateEvents = []model.CorporateEvent{}
	}

	for _, ev := range r.CorporateEvents {
		for k, v := range ev.Details {
			if r.Details[k] == "" {
				r.Details[k] = v
			}
		}
	}
	mergeParsedDetails(r, e.ParsedDetails)
	return r
}

// emptyCategories returns the four-category officer structure with every
// key present, so results serialize identically whether or not a
// category produced events.
func emptyCategories() map[string][]model.OfficerEvent {
	m := make(map[string][]model.OfficerEvent, 4)
	for _, c := range classify.OfficerCategories() {
		m[c] = []model.OfficerEvent{}
	}
	return m
}

// mergeParsedDetails fills gaps from upstream partially parsed fields.
// A value extracted from the text always wins over the upstream one.
func mergeParsedDetails(r *Result, parsed map[string]string) {
	for k, v := range parsed {
		if v == "" {
			continue
		}
		if r.Details[k] == "" {
			r.Details[k] = v
		}
	}
}

// Parser wraps ParseEntry with an optional result cache and diagnostic
// logging. Safe for concurrent use: the vocabulary is immutable and the
// cache implementation is thread safe.
type Parser struct {
	vocab *vocab.Table
	cache cache.Cache
}

// NewParser builds a parser. A nil cache disables result caching.
func NewParser(t *vocab.Table, c cache.Cache) *Parser {
	return &Parser{vocab: t, cache: c}
}

// Vocab exposes the immutable vocabulary table the parser was built with.
func (p *Parser) Vocab() *vocab.Table {
	return p.vocab
}

// Parse runs ParseEntry through the cache. Parsing is deterministic, so
// a cached result is byte-identical to a fresh one.
func (p *Parser) Parse(e model.Entry) *Result {
	key := resultKey(e)
	if p.cache != nil {
		if data, ok := p.cache.Get(key); ok {
			cached := &Result{}
			if err := json.Unmarshal(data, cached); err == nil {
				log.Debugf("parse cache hit for entry %s", e.ID)
				return cached
			}
		}
	}

	r := ParseEntry(p.vocab, e)
	if countOfficers(r.Officers) == 0 {
		log.Debugf("no officers extracted from entry %s", e.ID)
	}

	if p.cache != nil {
		if data, err := json.Marshal(r); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}
	return r
}

func countOfficers(byCategory map[string][]model.OfficerEvent) int {
	n := 0
	for _, evs := range byCategory {
		n += len(evs)
	}
	return n
}

func resultKey(e model.Entry) string {
	hash := sha256.Sum256([]byte(e.ID + "\x00" + e.Text))
	return cache.Key(hex.EncodeToString(hash[:]))
}
