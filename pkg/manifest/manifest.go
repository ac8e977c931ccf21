// Package manifest reads package declarations, services and hooks from a
// TOML or YAML file:
//
//	services = ["sshd"]
//
//	[[packages]]
//	names = ["git", "neovim"]
//	os = ["linux"]
//
//	[[packages]]
//	generic = ["editor"]
//	hosts = ["laptop"]
//	backend = "brew"
//
//	[[hooks]]
//	name = "reload shell"
//	run = "exec $SHELL -l"
//
// Hooks run through `sh -c` after the update that follows them.
package manifest

import (
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/callbacks"
	"github.com/arthur-debert/yuma/pkg/config"
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
	"github.com/arthur-debert/yuma/pkg/pkgset"
	"github.com/arthur-debert/yuma/pkg/session"
)

var log = logging.GetLogger("manifest")

// Manifest is a decoded declaration file
type Manifest struct {
	Packages []Package `koanf:"packages"`
	Hooks    []Hook    `koanf:"hooks"`
	Services []string  `koanf:"services"`
}

// Package is one [[packages]] table
type Package struct {
	Names   []string `koanf:"names"`
	Generic []string `koanf:"generic"`
	Hosts   []string `koanf:"hosts"`
	Arches  []string `koanf:"arches"`
	OS      []string `koanf:"os"`
	Backend string   `koanf:"backend"`
}

// Hook is one [[hooks]] table
type Hook struct {
	Name string `koanf:"name"`
	Run  string `koanf:"run"`
}

// Load reads a manifest file, choosing the parser from its extension
func Load(path string) (*Manifest, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "manifest %s not found", path).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), config.ParserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to parse manifest %s", path).
			WithDetail("path", path)
	}
	log.Debug().Str("path", path).Msg("Loaded manifest")
	return decode(k)
}

// Parse decodes a manifest held in memory. name only selects the parser.
func Parse(data []byte, name string) (*Manifest, error) {
	k := koanf.New(".")
	if err := k.Load(config.RawBytes(data), config.ParserFor(name)); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to parse manifest")
	}
	return decode(k)
}

func decode(k *koanf.Koanf) (*Manifest, error) {
	var m Manifest
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &m,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &m, conf); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to decode manifest")
	}

	for i, h := range m.Hooks {
		if h.Run == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "hook %d (%q) has no command", i, h.Name).
				WithDetail("hook", h.Name)
		}
		if h.Name == "" {
			m.Hooks[i].Name = h.Run
		}
	}
	return &m, nil
}

// Builder turns the table into a declaration
func (p Package) Builder() (*pkgset.Builder, error) {
	generics := make([]backend.GenericName, len(p.Generic))
	for i, g := range p.Generic {
		generics[i] = backend.GenericName(g)
	}
	b := pkgset.Merge(pkgset.New(p.Names...), pkgset.Generic(generics...))

	if p.Hosts != nil {
		b.OnHosts(p.Hosts...)
	}
	if p.Arches != nil {
		b.OnArches(p.Arches...)
	}
	if p.OS != nil {
		b.OnOSes(p.OS...)
	}
	if p.Backend != "" {
		kind, err := backend.ParseKind(p.Backend)
		if err != nil {
			return nil, err
		}
		b.WithBackend(backend.Of(kind))
	}
	return b, nil
}

// Action runs the hook's command through sh
func (h Hook) Action(runner backend.Runner) callbacks.Action {
	return func() error {
		return runner.Run("sh", "-c", h.Run)
	}
}

// Declarations converts every package table
func (m *Manifest) Declarations() ([]pkgset.Declaration, error) {
	decls := make([]pkgset.Declaration, 0, len(m.Packages))
	for _, p := range m.Packages {
		b, err := p.Builder()
		if err != nil {
			return nil, err
		}
		decls = append(decls, b)
	}
	return decls, nil
}

// Apply declares the manifest's packages and services on s and schedules
// its hooks
func (m *Manifest) Apply(s *session.Session, runner backend.Runner) error {
	decls, err := m.Declarations()
	if err != nil {
		return err
	}
	if err := s.Add(decls...); err != nil {
		return err
	}
	if err := s.Enable(m.Services...); err != nil {
		return err
	}
	for _, h := range m.Hooks {
		if err := s.Schedule(h.Name, h.Action(runner)); err != nil {
			return err
		}
	}
	return nil
}
