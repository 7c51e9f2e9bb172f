package glossary

import "strings"

// Kind classifies a resolution outcome.
type Kind int

const (
	NoMatch Kind = iota
	ExactMatch
	Candidates
)

func (k Kind) String() string {
	switch k {
	case ExactMatch:
		return "exact"
	case Candidates:
		return "candidates"
	default:
		return "none"
	}
}

// Result is the outcome of Resolve. Row is set for ExactMatch, Candidates
// for Candidates.
type Result struct {
	Kind       Kind
	Row        Row
	Candidates []Row
}

// Resolve looks the query up case-insensitively. An exact term match wins
// outright; otherwise every term containing the query is a candidate, in
// table order.
func Resolve(query string, rows []Row) Result {
	q := strings.ToLower(query)

	for _, r := range rows {
		if strings.ToLower(r.Term) == q {
			return Result{Kind: ExactMatch, Row: r}
		}
	}

	var matches []Row
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Term), q) {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return Result{Kind: NoMatch}
	}
	return Result{Kind: Candidates, Candidates: matches}
}

// Find returns the first row whose term equals term case-insensitively.
func Find(rows []Row, term string) (Row, bool) {
	t := strings.ToLower(term)
	for _, r := range rows {
		if strings.ToLower(r.Term) == t {
			return r, true
		}
	}
	return Row{}, false
}
