package pkgset

import (
	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
	"github.com/arthur-debert/yuma/pkg/platform"
)

var log = logging.GetLogger("pkgset")

// Env is what Build evaluates a declaration against
type Env struct {
	Facts platform.Facts

	// Default is used when the declaration names no backend. When zero,
	// the backend is guessed from Facts.
	Default backend.Backend
}

func (e Env) facts() platform.Facts {
	if e.Facts == nil {
		return platform.Host{}
	}
	return e.Facts
}

func (e Env) defaultBackend() backend.Backend {
	if !e.Default.IsZero() {
		return e.Default
	}
	return backend.Guess(e.facts())
}

// Builder accumulates a package declaration. A nil allow-list means no
// constraint; an empty non-nil one matches nothing.
type Builder struct {
	names    []string
	generics []backend.GenericName

	hosts   []string
	arches  []string
	systems []string

	backend backend.Backend
	err     error
}

// New seeds a builder with literal package names
func New(names ...string) *Builder {
	return &Builder{names: append([]string(nil), names...)}
}

// Generic seeds a builder with portable names, resolved through the
// backend's name index when the group is registered
func Generic(names ...backend.GenericName) *Builder {
	return &Builder{generics: append([]backend.GenericName(nil), names...)}
}

// OnHost adds one hostname to the host allow-list
func (b *Builder) OnHost(host string) *Builder {
	return b.OnHosts(host)
}

// OnHosts adds hostnames to the host allow-list
func (b *Builder) OnHosts(hosts ...string) *Builder {
	b.hosts = extend(b.hosts, hosts)
	return b
}

// OnArch adds one architecture to the architecture allow-list
func (b *Builder) OnArch(arch string) *Builder {
	return b.OnArches(arch)
}

// OnArches adds architectures to the architecture allow-list
func (b *Builder) OnArches(arches ...string) *Builder {
	b.arches = extend(b.arches, arches)
	return b
}

// OnOS adds one OS to the OS allow-list
func (b *Builder) OnOS(system string) *Builder {
	return b.OnOSes(system)
}

// OnOSes adds OSes to the OS allow-list
func (b *Builder) OnOSes(systems ...string) *Builder {
	b.systems = extend(b.systems, systems)
	return b
}

// WithBackend pins the declaration to a backend instead of the default
func (b *Builder) WithBackend(be backend.Backend) *Builder {
	b.backend = be
	return b
}

// Merge folds other into b. Names and allow-lists are concatenated; the
// backend already set on b wins, otherwise other's is taken. Two different
// explicit backends make the merged declaration fail at Build time.
func (b *Builder) Merge(other *Builder) *Builder {
	if other == nil {
		return b
	}

	b.names = append(b.names, other.names...)
	b.generics = append(b.generics, other.generics...)
	b.hosts = union(b.hosts, other.hosts)
	b.arches = union(b.arches, other.arches)
	b.systems = union(b.systems, other.systems)

	switch {
	case b.backend.IsZero():
		b.backend = other.backend
	case !other.backend.IsZero() && !other.backend.Equal(b.backend):
		if b.err == nil {
			b.err = errors.Newf(errors.ErrConfigConflict,
				"declarations disagree on backend: %s and %s", b.backend, other.backend).
				WithDetail("first", b.backend.String()).
				WithDetail("second", other.backend.String())
		}
	}
	if b.err == nil {
		b.err = other.err
	}
	return b
}

// Merge combines builders left to right into a fresh builder
func Merge(builders ...*Builder) *Builder {
	out := &Builder{}
	for _, b := range builders {
		out.Merge(b)
	}
	return out
}

// Declare makes a Builder usable as a Declaration
func (b *Builder) Declare() *Builder {
	return b
}

// Build evaluates the declaration. A nil group with a nil error means the
// environment filtered the declaration out.
func (b *Builder) Build(env Env) (*Group, error) {
	if b.err != nil {
		return nil, b.err
	}

	facts := env.facts()

	if b.hosts != nil {
		host, err := facts.Hostname()
		if err != nil {
			log.Warn().Err(err).Strs("names", b.names).Msg("Cannot read hostname, skipping declaration")
			return nil, nil
		}
		if !contains(b.hosts, host) {
			log.Debug().Str("host", host).Strs("names", b.names).Msg("Host not allowed, skipping declaration")
			return nil, nil
		}
	}
	if b.arches != nil && !platform.ArchAllowed(b.arches, facts.Arch()) {
		log.Debug().Str("arch", facts.Arch()).Strs("names", b.names).Msg("Architecture not allowed, skipping declaration")
		return nil, nil
	}
	if b.systems != nil && !platform.OSAllowed(b.systems, facts.OS()) {
		log.Debug().Str("os", facts.OS()).Strs("names", b.names).Msg("OS not allowed, skipping declaration")
		return nil, nil
	}

	be := b.backend
	if be.IsZero() {
		be = env.defaultBackend()
	}

	g := newGroup(be, b.names, b.generics)
	g.hosts = b.hosts
	g.arches = b.arches
	g.systems = b.systems
	return g, nil
}

func extend(list, values []string) []string {
	if list == nil {
		list = []string{}
	}
	return append(list, values...)
}

func union(a, b []string) []string {
	if a == nil && b == nil {
		return nil
	}
	return extend(a, b)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
