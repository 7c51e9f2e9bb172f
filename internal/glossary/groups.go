package glossary

import (
	"slices"
	"strings"
)

// ListGroups returns the distinct group labels, sorted.
func ListGroups(rows []Row) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		if r.HasGroup() {
			seen[r.GroupLabel()] = struct{}{}
		}
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// ItemsInGroup returns the rows whose trimmed group equals the trimmed
// label, in table order.
func ItemsInGroup(rows []Row, group string) []Row {
	label := strings.TrimSpace(group)
	var items []Row
	for _, r := range rows {
		if r.Fields >= 3 && r.GroupLabel() == label {
			items = append(items, r)
		}
	}
	return items
}
