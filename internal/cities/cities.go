// Package cities holds the fixed set of cities the search endpoint accepts.
//
// Membership is an exact string match. Entries are kept verbatim, including the
// "Mijas " variant with a trailing space that sits next to "Mijas"; existing
// clients send both, so neither is trimmed nor deduplicated.
package cities

import "strings"

var defaultNames = []string{
	"Fuengirola",
	"North Bay Village",
	"Santa Monica",
	"Mijas ",
	"North Miami Beach",
	"Davie",
	"Lighthouse Point",
	"Songyuan",
	"West Palm Beach",
	"Las Vegas",
	"San Pawl il-Baħar",
	"Malaga",
	"Marbella",
	"Seminole",
	"Plantation",
	"Oakland Park",
	"Tampa",
	"Pompano Beach",
	"Bradenton",
	"Parkland",
	"Sunny Isles Beach",
	"Hollywood",
	"Deerfield Beach",
	"Largo",
	"Calgary",
	"Hallandale Beach",
	"Southwest Ranches",
	"Fort Lauderdale",
	"Mijas",
	"Calahonda",
	"Dania Beach",
	"Estepona",
	"Coral Springs",
	"Clearwater",
	"Sarasota",
	"Miami",
}

// Allowlist is an immutable, ordered set of city names.
type Allowlist struct {
	names []string
	set   map[string]struct{}
}

// New builds an Allowlist from names, preserving their order.
func New(names []string) *Allowlist {
	a := &Allowlist{
		names: make([]string, len(names)),
		set:   make(map[string]struct{}, len(names)),
	}
	copy(a.names, names)
	for _, n := range names {
		a.set[n] = struct{}{}
	}
	return a
}

// Default returns the allowlist of cities served by the upstream listings API.
func Default() *Allowlist {
	return New(defaultNames)
}

// IsAllowed reports whether name is in the list. No trimming or case folding
// is applied.
func (a *Allowlist) IsAllowed(name string) bool {
	_, ok := a.set[name]
	return ok
}

// Names returns a copy of the list in its original order.
func (a *Allowlist) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Filter returns the names containing term, ignoring case. An empty term
// matches everything.
func (a *Allowlist) Filter(term string) []string {
	if term == "" {
		return a.Names()
	}

	needle := strings.ToLower(term)
	var out []string
	for _, n := range a.names {
		if strings.Contains(strings.ToLower(n), needle) {
			out = append(out, n)
		}
	}
	return out
}
