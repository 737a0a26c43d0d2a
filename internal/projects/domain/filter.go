package domain

import "strings"

// Filter is a conjunctive predicate over projects. Empty fields do not constrain.
// Filters compose with And; conflicting equality constraints yield a filter that
// matches nothing.
type Filter struct {
	ActiveOnly bool
	ID         string
	OwnerID    string
	Status     Status
	// Each term must appear, case-insensitively, in title, clientName or address.
	Search []string

	empty bool
}

// MatchNone reports whether the filter can never match.
func (f Filter) MatchNone() bool { return f.empty }

// And returns the conjunction of f and g.
func (f Filter) And(g Filter) Filter {
	out := Filter{
		ActiveOnly: f.ActiveOnly || g.ActiveOnly,
		empty:      f.empty || g.empty,
	}
	out.ID, out.empty = mergeEq(f.ID, g.ID, out.empty)
	out.OwnerID, out.empty = mergeEq(f.OwnerID, g.OwnerID, out.empty)

	st, empty := mergeEq(string(f.Status), string(g.Status), out.empty)
	out.Status, out.empty = Status(st), empty

	if len(f.Search)+len(g.Search) > 0 {
		out.Search = make([]string, 0, len(f.Search)+len(g.Search))
		out.Search = append(out.Search, f.Search...)
		out.Search = append(out.Search, g.Search...)
	}
	return out
}

func mergeEq(a, b string, empty bool) (string, bool) {
	switch {
	case a == "":
		return b, empty
	case b == "" || a == b:
		return a, empty
	default:
		return a, true
	}
}

// Matches evaluates the filter against p in memory.
func (f Filter) Matches(p Project) bool {
	if f.empty {
		return false
	}
	if f.ActiveOnly && p.IsDeleted {
		return false
	}
	if f.ID != "" && p.ID != f.ID {
		return false
	}
	if f.OwnerID != "" && p.CreatedByUserID != f.OwnerID {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	for _, term := range f.Search {
		if !matchesSearch(p, term) {
			return false
		}
	}
	return true
}

func matchesSearch(p Project, term string) bool {
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.ClientName), needle) {
		return true
	}
	return p.Address != nil && strings.Contains(strings.ToLower(*p.Address), needle)
}
