package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

func newTestStore(t *testing.T, h http.HandlerFunc) Store {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	svc, err := gsheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return NewStore(svc, "sheet-id", nil)
}

func TestReadRange(t *testing.T) {
	t.Parallel()

	var gotPath string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"БД!A2:C1000","majorDimension":"ROWS","values":[["HTTP","HyperText Transfer Protocol"],["HTTPS","HTTP Secure","Protocols"],["Port",443]]}`))
	})

	rows, err := store.ReadRange(context.Background(), "БД!A2:C1000")
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}

	if want := "/v4/spreadsheets/sheet-id/values/БД!A2:C1000"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}

	want := [][]string{
		{"HTTP", "HyperText Transfer Protocol"},
		{"HTTPS", "HTTP Secure", "Protocols"},
		{"Port", "443"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRangeWithoutValues(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"Логи!A2:E10000","majorDimension":"ROWS"}`))
	})

	rows, err := store.ReadRange(context.Background(), "Логи!A2:E10000")
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %#v, want empty non-nil slice", rows)
	}
}

func TestReadRangeError(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	})

	_, err := store.ReadRange(context.Background(), "Доступ!A2:C1000")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusForbidden {
		t.Errorf("error = %v, want wrapped 403 googleapi.Error", err)
	}
}

func TestAppendRow(t *testing.T) {
	t.Parallel()

	var (
		gotPath  string
		gotInput string
		gotBody  gsheets.ValueRange
	)
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInput = r.URL.Query().Get("valueInputOption")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-id"}`))
	})

	row := []string{"2025-01-02", "10:11:12", "alice", "111", "http"}
	if err := store.AppendRow(context.Background(), "Логи!A2", row); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/values/Логи!A2:append") {
		t.Errorf("path = %q, want append endpoint", gotPath)
	}
	if gotInput != "RAW" {
		t.Errorf("valueInputOption = %q, want RAW", gotInput)
	}
	if len(gotBody.Values) != 1 {
		t.Fatalf("values = %v, want one row", gotBody.Values)
	}
	var got []string
	for _, v := range gotBody.Values[0] {
		got = append(got, v.(string))
	}
	if diff := cmp.Diff(row, got); diff != "" {
		t.Errorf("appended row mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "key.json")
	if err := os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    ServiceOptions
		want    string
		wantErr bool
	}{
		{name: "inline wins", opts: ServiceOptions{CredentialsJSON: `{"inline":true}`, CredentialsFile: path}, want: `{"inline":true}`},
		{name: "file", opts: ServiceOptions{CredentialsFile: path}, want: `{"type":"service_account"}`},
		{name: "missing file", opts: ServiceOptions{CredentialsFile: filepath.Join(dir, "nope.json")}, wantErr: true},
		{name: "nothing configured", opts: ServiceOptions{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := LoadCredentials(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
