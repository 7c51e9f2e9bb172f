package glossary

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Callback payload prefixes.
const (
	DefinitionPrefix = "def:"
	GroupPrefix      = "group:"
	BackToGroups     = "back_to_groups"
)

// maxCallbackData is the Telegram limit for callback data, in bytes.
const maxCallbackData = 64

const hashMarker = "~"

// DefinitionToken returns the callback payload selecting term.
func DefinitionToken(term string) string {
	return token(DefinitionPrefix, term)
}

// GroupToken returns the callback payload selecting a group.
func GroupToken(group string) string {
	return token(GroupPrefix, strings.TrimSpace(group))
}

func token(prefix, value string) string {
	if len(prefix)+len(value) <= maxCallbackData {
		return prefix + value
	}
	return prefix + hashMarker + hashOf(value)
}

// IsHashed reports whether a payload (without prefix) is a digest rather
// than the literal value.
func IsHashed(payload string) bool {
	return strings.HasPrefix(payload, hashMarker)
}

func hashOf(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return strconv.FormatUint(h.Sum64(), 16)
}

// LookupDefinition resolves a def: payload (without prefix) against rows.
func LookupDefinition(rows []Row, payload string) (Row, bool) {
	if digest, ok := strings.CutPrefix(payload, hashMarker); ok {
		for _, r := range rows {
			if hashOf(r.Term) == digest {
				return r, true
			}
		}
	}
	return Find(rows, payload)
}

// LookupGroup resolves a group: payload (without prefix) to a group label.
// Payloads that are not a known digest are returned trimmed as-is.
func LookupGroup(rows []Row, payload string) string {
	if digest, ok := strings.CutPrefix(payload, hashMarker); ok {
		for _, g := range ListGroups(rows) {
			if hashOf(g) == digest {
				return g
			}
		}
	}
	return strings.TrimSpace(payload)
}
