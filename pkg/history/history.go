package history

import "strings"

// Limit is the number of distinct recent queries kept.
const Limit = 3

// List holds recent queries, most recent first. Entries are unique
// ignoring case.
type List []string

// Record returns a new list with query at the front. Any entry equal to
// query ignoring case is dropped, and the result is truncated to Limit.
// The receiver is left untouched.
func (l List) Record(query string) List {
	next := make(List, 0, Limit)
	next = append(next, query)
	for _, q := range l {
		if len(next) == Limit {
			break
		}
		if sameQuery(q, query) {
			continue
		}
		next = append(next, q)
	}
	return next
}

// Contains reports whether query is present ignoring case.
func (l List) Contains(query string) bool {
	for _, q := range l {
		if sameQuery(q, query) {
			return true
		}
	}
	return false
}

// At returns the entry at index i.
func (l List) At(i int) (string, bool) {
	if i < 0 || i >= len(l) {
		return "", false
	}
	return l[i], true
}

func sameQuery(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}
