// Package vocab holds the vocabulary table: the canonical officer-position
// names and top-level category names the extraction engine matches against.
// The table is loaded once at startup and treated as immutable; every
// extraction call receives it explicitly.
package vocab

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Table is the read-only vocabulary. An empty table degrades extraction:
// the position resolver falls back to its built-in abbreviation table and
// only the pattern-based strategies keep working at full strength.
type Table struct {
	Positions  []string `yaml:"positions"`
	Categories []string `yaml:"categories"`
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded vocabulary table.
func Default() *Table {
	defaultOnce.Do(func() {
		t := &Table{}
		if err := yaml.Unmarshal(defaultYAML, t); err != nil {
			// The embedded table is part of the build; failing to parse
			// it is a programming error, not a runtime condition.
			panic(fmt.Sprintf("vocab: embedded table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load reads a vocabulary table from a YAML file. An empty path returns
// the embedded default.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	t := &Table{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return t, nil
}

// Empty returns a table with no entries, for degraded operation and tests.
func Empty() *Table {
	return &Table{}
}

// HasPosition reports whether s equals a canonical position, ignoring case.
func (t *Table) HasPosition(s string) bool {
	return t.FindPosition(s) != ""
}

// FindPosition returns the canonical spelling of a position matched
// case-insensitively, or "" when unknown.
func (t *Table) FindPosition(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range t.Positions {
		if strings.EqualFold(p, s) {
			return p
		}
	}
	return ""
}

// FindCategory returns the canonical spelling of a category matched
// case-insensitively against the trimmed input, or "" when unknown.
func (t *Table) FindCategory(s string) string {
	s = strings.TrimSpace(s)
	for _, c := range t.Categories {
		if strings.EqualFold(c, s) {
			return c
		}
	}
	return ""
}
