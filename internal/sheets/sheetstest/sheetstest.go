// Package sheetstest provides an in-memory sheets.Store for tests.
package sheetstest

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("injected store failure")

// Store is an in-memory sheets.Store. Reads return the rows registered with
// Set; appends are recorded per range and can be inspected with Appended.
type Store struct {
	mu       sync.Mutex
	ranges   map[string][][]string
	appended map[string][][]string
	reads    map[string]int

	// FailRead and FailAppend make the matching range operations fail.
	FailRead   map[string]bool
	FailAppend map[string]bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		ranges:     make(map[string][][]string),
		appended:   make(map[string][][]string),
		reads:      make(map[string]int),
		FailRead:   make(map[string]bool),
		FailAppend: make(map[string]bool),
	}
}

// Set replaces the rows returned for rng.
func (s *Store) Set(rng string, rows ...[]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges[rng] = rows
}

// ReadRange implements sheets.Store.
func (s *Store) ReadRange(_ context.Context, rng string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[rng]++
	if s.FailRead[rng] {
		return nil, ErrInjected
	}
	rows := make([][]string, 0, len(s.ranges[rng]))
	for _, r := range s.ranges[rng] {
		rows = append(rows, slices.Clone(r))
	}
	return rows, nil
}

// AppendRow implements sheets.Store.
func (s *Store) AppendRow(_ context.Context, rng string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppend[rng] {
		return ErrInjected
	}
	s.appended[rng] = append(s.appended[rng], slices.Clone(row))
	return nil
}

// Appended returns the rows appended to rng so far.
func (s *Store) Appended(rng string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.appended[rng])
}

// Reads reports how many times rng has been read.
func (s *Store) Reads(rng string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[rng]
}
