// Package glossary resolves user queries against the term table and
// provides browse-by-group navigation over it.
package glossary

import (
	"context"
	"fmt"
	"strings"

	"github.com/stmcap/glossarybot/internal/sheets"
)

// Row is one term definition. Fields counts the cells present in the sheet,
// which decides whether Group is meaningful.
type Row struct {
	Term       string
	Definition string
	Group      string
	Fields     int
}

// HasGroup reports whether the row carries a non-empty group label.
func (r Row) HasGroup() bool {
	return r.Fields >= 3 && r.GroupLabel() != ""
}

// GroupLabel returns the trimmed group label.
func (r Row) GroupLabel() string {
	return strings.TrimSpace(r.Group)
}

// ParseRows converts raw sheet rows into Rows, skipping empty ones.
func ParseRows(values [][]string) []Row {
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		if len(v) == 0 {
			continue
		}
		r := Row{Term: v[0], Fields: len(v)}
		if len(v) > 1 {
			r.Definition = v[1]
		}
		if len(v) > 2 {
			r.Group = v[2]
		}
		rows = append(rows, r)
	}
	return rows
}

// Source reads the term table. Every call hits the spreadsheet.
type Source struct {
	store sheets.Store
	rng   string
}

// NewSource creates a Source over rng.
func NewSource(store sheets.Store, rng string) *Source {
	return &Source{store: store, rng: rng}
}

// Rows fetches and parses the term table.
func (s *Source) Rows(ctx context.Context) ([]Row, error) {
	values, err := s.store.ReadRange(ctx, s.rng)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary: %w", err)
	}
	return ParseRows(values), nil
}
