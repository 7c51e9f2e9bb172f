package sheets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	gsheets "google.golang.org/api/sheets/v4"
)

// Store reads and appends rows addressed by A1 ranges.
// Implementations give no transactional guarantees; last write wins.
type Store interface {
	// ReadRange returns the rows of rng in sheet order. Trailing empty cells
	// are omitted by the API, so rows may be ragged. A range with no values
	// yields an empty slice, not an error.
	ReadRange(ctx context.Context, rng string) ([][]string, error)

	// AppendRow appends one row after the last populated row of rng.
	AppendRow(ctx context.Context, rng string, row []string) error
}

// apiStore implements Store on top of the Sheets v4 values API.
type apiStore struct {
	svc           *gsheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewStore creates a Store for a single spreadsheet.
func NewStore(svc *gsheets.Service, spreadsheetID string, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &apiStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger.With("component", "store"),
	}
}

func (s *apiStore) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read range", "range", rng, "error", err)
		return nil, fmt.Errorf("failed to read range %q: %w", rng, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = cellString(cell)
		}
		rows = append(rows, row)
	}

	s.logger.DebugContext(ctx, "Range read", "range", rng, "rows", len(rows))
	return rows, nil
}

func (s *apiStore) AppendRow(ctx context.Context, rng string, row []string) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, rng, &gsheets.ValueRange{
			MajorDimension: "ROWS",
			Values:         [][]interface{}{values},
		}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to append row", "range", rng, "error", err)
		return fmt.Errorf("failed to append row to %q: %w", rng, err)
	}

	s.logger.DebugContext(ctx, "Row appended", "range", rng, "cells", len(row))
	return nil
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}
