package pkgset

import (
	"encoding/json"

	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/errors"
)

// Group is a built declaration: unique package names tied to one backend.
// Names keep their declaration order for display.
type Group struct {
	names    []string
	generics []backend.GenericName
	backend  backend.Backend

	// allow-lists the group was built from, kept for display and persistence
	hosts   []string
	arches  []string
	systems []string
}

// NewGroup creates a group directly, bypassing environment filters
func NewGroup(be backend.Backend, names ...string) *Group {
	return newGroup(be, names, nil)
}

func newGroup(be backend.Backend, names []string, generics []backend.GenericName) *Group {
	g := &Group{backend: be}
	g.Add(names...)
	for _, gen := range generics {
		if !containsGeneric(g.generics, gen) {
			g.generics = append(g.generics, gen)
		}
	}
	return g
}

// Names returns the group's concrete package names
func (g *Group) Names() []string {
	return append([]string(nil), g.names...)
}

// Generics returns portable names not yet resolved
func (g *Group) Generics() []backend.GenericName {
	return append([]backend.GenericName(nil), g.generics...)
}

// Backend returns the backend the names belong to
func (g *Group) Backend() backend.Backend {
	return g.backend
}

// SetBackend retags the group
func (g *Group) SetBackend(be backend.Backend) {
	g.backend = be
}

// Add appends names the group does not hold yet
func (g *Group) Add(names ...string) {
	for _, n := range names {
		if n == "" || containsString(g.names, n) {
			continue
		}
		g.names = append(g.names, n)
	}
}

// Resolve maps pending generic names through the backend's name index
func (g *Group) Resolve() error {
	for len(g.generics) > 0 {
		gen := g.generics[0]
		specific, err := g.backend.ResolveName(gen)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrUnresolvedPackage) {
				return err
			}
			return errors.Wrapf(err, errors.ErrUnresolvedPackage, "cannot resolve %q for %s", gen, g.backend).
				WithDetail("package", string(gen)).
				WithDetail("backend", g.backend.String())
		}
		g.Add(specific)
		g.generics = g.generics[1:]
	}
	g.generics = nil
	return nil
}

// Equal compares groups as sets: order of names and allow-list entries
// does not matter
func (g *Group) Equal(other *Group) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.backend.Equal(other.backend) &&
		sameSet(g.names, other.names) &&
		sameSet(genericStrings(g.generics), genericStrings(other.generics)) &&
		sameFilter(g.hosts, other.hosts) &&
		sameFilter(g.arches, other.arches) &&
		sameFilter(g.systems, other.systems)
}

type groupJSON struct {
	Backend  backend.Backend       `json:"backend"`
	Names    []string              `json:"names"`
	Generics []backend.GenericName `json:"generics,omitempty"`
	Hosts    []string              `json:"hosts,omitempty"`
	Arches   []string              `json:"arches,omitempty"`
	OS       []string              `json:"os,omitempty"`
}

func (g *Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(groupJSON{
		Backend:  g.backend,
		Names:    g.Names(),
		Generics: g.generics,
		Hosts:    g.hosts,
		Arches:   g.arches,
		OS:       g.systems,
	})
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var raw groupJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = *newGroup(raw.Backend, raw.Names, raw.Generics)
	g.hosts = raw.Hosts
	g.arches = raw.Arches
	g.systems = raw.OS
	return nil
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func containsGeneric(list []backend.GenericName, value backend.GenericName) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func genericStrings(list []backend.GenericName) []string {
	out := make([]string, len(list))
	for i, g := range list {
		out[i] = string(g)
	}
	return out
}

// sameSet compares lists ignoring order and repeats
func sameSet(a, b []string) bool {
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	other := make(map[string]bool, len(b))
	for _, v := range b {
		if !seen[v] {
			return false
		}
		other[v] = true
	}
	return len(other) == len(seen)
}

// sameFilter treats an empty allow-list as unset, since the JSON form
// drops empty lists
func sameFilter(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return sameSet(a, b)
}
