package domain

import "strings"

// DoneFilter narrows a transaction query by completion state.
type DoneFilter string

const (
	// DoneAny places no constraint on the done flag.
	DoneAny DoneFilter = ""
	// DoneOnly matches only completed transactions.
	DoneOnly DoneFilter = "done"
	// UndoneOnly matches only pending transactions.
	UndoneOnly DoneFilter = "undone"
)

// TransactionFilter is a normalized predicate over transactions. The zero
// value matches everything.
type TransactionFilter struct {
	// Category is a lowercased substring to match against the category.
	// Empty means no category constraint.
	Category string
	Done     DoneFilter
}

// ResolveTransactionFilter normalizes raw filter inputs into a
// TransactionFilter. The literal value "all" (case-insensitive) or an empty
// string disables category filtering. A done filter other than "done" or
// "undone" places no constraint. Unrecognized values degrade to "no
// constraint"; resolution never fails.
func ResolveTransactionFilter(category, done string) TransactionFilter {
	f := TransactionFilter{}

	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && category != "all" {
		f.Category = category
	}

	switch strings.ToLower(strings.TrimSpace(done)) {
	case string(DoneOnly):
		f.Done = DoneOnly
	case string(UndoneOnly):
		f.Done = UndoneOnly
	default:
		f.Done = DoneAny
	}

	return f
}

// Matches reports whether the transaction satisfies the filter.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.Category != "" && !strings.Contains(strings.ToLower(t.Category), f.Category) {
		return false
	}
	switch f.Done {
	case DoneOnly:
		return t.Done
	case UndoneOnly:
		return !t.Done
	}
	return true
}

// MatchesSearch reports whether the transaction matches a free-text search:
// a case-insensitive substring match against the description or the
// category. An empty query matches everything.
func MatchesSearch(t Transaction, query string) bool {
	query = strings.ToLower(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), query) ||
		strings.Contains(strings.ToLower(t.Category), query)
}
