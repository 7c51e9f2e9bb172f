package glossary_test

import (
	"strings"
	"testing"

	"github.com/stmcap/glossarybot/internal/glossary"
)

func TestDefinitionToken(t *testing.T) {
	t.Parallel()

	if got := glossary.DefinitionToken("HTTP"); got != "def:HTTP" {
		t.Errorf("short token = %q", got)
	}

	long := strings.Repeat("Очень длинный термин ", 4)
	tok := glossary.DefinitionToken(long)
	if len(tok) > 64 {
		t.Errorf("token length = %d, want <= 64", len(tok))
	}
	if !strings.HasPrefix(tok, glossary.DefinitionPrefix+"~") {
		t.Errorf("long token = %q, want hashed form", tok)
	}

	rows := glossary.ParseRows([][]string{{"HTTP", "a"}, {long, "b"}})
	payload := strings.TrimPrefix(tok, glossary.DefinitionPrefix)
	row, ok := glossary.LookupDefinition(rows, payload)
	if !ok || row.Definition != "b" {
		t.Errorf("LookupDefinition(hashed) = %+v, %v", row, ok)
	}

	row, ok = glossary.LookupDefinition(rows, "http")
	if !ok || row.Definition != "a" {
		t.Errorf("LookupDefinition(literal) = %+v, %v", row, ok)
	}
}

func TestLookupDefinitionLiteralTilde(t *testing.T) {
	t.Parallel()

	rows := glossary.ParseRows([][]string{{"~tilde", "literal"}})
	row, ok := glossary.LookupDefinition(rows, "~tilde")
	if !ok || row.Definition != "literal" {
		t.Errorf("LookupDefinition(~tilde) = %+v, %v", row, ok)
	}
	if _, ok := glossary.LookupDefinition(rows, "gone"); ok {
		t.Error("vanished term resolved")
	}
}

func TestGroupToken(t *testing.T) {
	t.Parallel()

	if got := glossary.GroupToken(" Protocols "); got != "group:Protocols" {
		t.Errorf("short token = %q", got)
	}

	long := strings.Repeat("Группа ", 10)
	rows := glossary.ParseRows([][]string{{"t", "d", long}})
	tok := glossary.GroupToken(long)
	if len(tok) > 64 {
		t.Errorf("token length = %d, want <= 64", len(tok))
	}
	got := glossary.LookupGroup(rows, strings.TrimPrefix(tok, glossary.GroupPrefix))
	if got != strings.TrimSpace(long) {
		t.Errorf("LookupGroup(hashed) = %q", got)
	}
	if got := glossary.LookupGroup(rows, " Protocols "); got != "Protocols" {
		t.Errorf("LookupGroup(literal) = %q", got)
	}
}

func TestIsHashed(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("Термин ", 10)
	if !glossary.IsHashed(strings.TrimPrefix(glossary.DefinitionToken(long), glossary.DefinitionPrefix)) {
		t.Error("long term token is not hashed")
	}
	if glossary.IsHashed(strings.TrimPrefix(glossary.DefinitionToken("HTTP"), glossary.DefinitionPrefix)) {
		t.Error("short term token is hashed")
	}
}
