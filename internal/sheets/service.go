// Package sheets provides access to the Google Sheets spreadsheet that backs
// the bot: the glossary, the access list, the message catalog and the logs.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ServiceOptions configures how the Sheets API service is built.
type ServiceOptions struct {
	CredentialsFile string
	CredentialsJSON string

	// Endpoint overrides the API base URL. Used against fakes in tests.
	Endpoint string
}

// LoadCredentials returns the service account key, preferring inline JSON
// over the file path.
func LoadCredentials(opts ServiceOptions) ([]byte, error) {
	if opts.CredentialsJSON != "" {
		return []byte(opts.CredentialsJSON), nil
	}
	if opts.CredentialsFile == "" {
		return nil, errors.New("no service account credentials configured")
	}
	b, err := os.ReadFile(opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return b, nil
}

// NewService authenticates with the service account key and returns a Sheets
// API service. The returned handle is owned by the caller; there is no
// process-wide instance.
func NewService(ctx context.Context, opts ServiceOptions, logger *slog.Logger) (*gsheets.Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "sheets_service")

	key, err := LoadCredentials(opts)
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, key, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}

	clientOpts := []option.ClientOption{option.WithCredentials(creds)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	log.Info("Sheets service created", "project_id", creds.ProjectID)
	return svc, nil
}
