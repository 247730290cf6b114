package graph

import "strings"

// FilterAll disables filtering on the type or priority axis.
const FilterAll = "all"

// Filter holds the three filter fields of the explorer view. The zero value
// matches nothing useful; use DefaultFilter for the everything-visible state.
type Filter struct {
	Search   string `json:"search"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

func DefaultFilter() Filter {
	return Filter{Type: FilterAll, Priority: FilterAll}
}

// Normalize trims the search string and maps empty selectors to FilterAll so
// stored filters stay canonical.
func (f Filter) Normalize() Filter {
	f.Search = strings.TrimSpace(f.Search)
	if f.Type == "" {
		f.Type = FilterAll
	}
	if f.Priority == "" {
		f.Priority = FilterAll
	}
	return f
}

// Matches reports whether a node survives the filter: the type and priority
// axes are no-ops when set to FilterAll, and the search string is a
// case-insensitive substring match on the node name.
func (f Filter) Matches(n Node) bool {
	if f.Type != FilterAll && f.Type != "" && string(n.Type) != f.Type {
		return false
	}
	if f.Priority != FilterAll && f.Priority != "" && string(n.Priority) != f.Priority {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(n.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Apply computes the visible subgraph. An edge is visible iff both of its
// endpoints survive the node filter; edges are never filtered independently.
func Apply(nodes []Node, edges []Edge, f Filter) ([]Node, []Edge) {
	visible := make([]Node, 0, len(nodes))
	keep := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if f.Matches(n) {
			visible = append(visible, n)
			keep[n.ID] = true
		}
	}

	visibleEdges := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if keep[e.Source] && keep[e.Target] {
			visibleEdges = append(visibleEdges, e)
		}
	}
	return visible, visibleEdges
}
