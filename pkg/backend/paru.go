package backend

import (
	"strings"

	"github.com/arthur-debert/yuma/pkg/errors"
)

// IndexFunc returns the name index used by ResolveName
type IndexFunc func() (*NameIndex, error)

// ParuAdapter drives paru, which covers both the official repositories and the AUR
type ParuAdapter struct {
	bin    string
	runner Runner
	index  IndexFunc
}

// NewParu creates a paru adapter
func NewParu(bin string, runner Runner, index IndexFunc) *ParuAdapter {
	return &ParuAdapter{bin: bin, runner: runner, index: index}
}

func (p *ParuAdapter) ListInstalled() ([]string, error) {
	return p.query("-Qq")
}

func (p *ParuAdapter) ListLeaves() ([]string, error) {
	return p.query("-Qqt")
}

// query runs a pacman-style query. pacman exits 1 without output when the
// filter matches nothing, which is an empty result rather than a failure.
func (p *ParuAdapter) query(flag string) ([]string, error) {
	out, err := p.runner.Output(p.bin, flag)
	if err != nil {
		if ExitCode(err) == 1 && len(strings.TrimSpace(string(out))) == 0 {
			return nil, nil
		}
		return nil, err
	}
	return parseLines(out, p.bin+" "+flag)
}

func (p *ParuAdapter) Install(names []string) error {
	if len(names) == 0 {
		return nil
	}
	args := append([]string{"-S", "--needed"}, names...)
	return p.runner.Run(p.bin, args...)
}

func (p *ParuAdapter) Remove(names []string) error {
	if len(names) == 0 {
		return nil
	}
	// -n drops backup configs, -s takes now-orphaned dependencies with it
	args := append([]string{"-Rns"}, names...)
	return p.runner.Run(p.bin, args...)
}

func (p *ParuAdapter) ResolveName(name GenericName) (string, error) {
	return resolveFromIndex(p.index, KindParu, name)
}

func resolveFromIndex(index IndexFunc, kind Kind, name GenericName) (string, error) {
	if index == nil {
		return "", errors.Newf(errors.ErrUnresolvedPackage, "no name index available for %s", kind).
			WithDetail("package", string(name))
	}
	idx, err := index()
	if err != nil {
		return "", err
	}
	specific, ok := idx.Lookup(kind, name)
	if !ok {
		return "", errors.Newf(errors.ErrUnresolvedPackage, "package %q has no %s mapping", name, kind).
			WithDetail("package", string(name)).
			WithDetail("backend", kind.String())
	}
	return specific, nil
}
