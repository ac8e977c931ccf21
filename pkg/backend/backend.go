package backend

import (
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/platform"
)

// GenericName is a portable package name that each backend maps to its own
type GenericName string

// Adapter is the contract every package manager implements
type Adapter interface {
	ListInstalled() ([]string, error)
	ListLeaves() ([]string, error)
	Install(names []string) error
	Remove(names []string) error
	ResolveName(name GenericName) (string, error)
}

// Backend identifies a package manager. The zero value means "not chosen".
type Backend struct {
	kind    Kind
	adapter Adapter
}

// Of returns the backend for kind, served by the shared adapter
func Of(kind Kind) Backend {
	return Backend{kind: kind}
}

// Paru returns the Arch Linux / AUR backend
func Paru() Backend { return Of(KindParu) }

// Brew returns the Homebrew backend
func Brew() Backend { return Of(KindBrew) }

// Cargo returns the cargo backend
func Cargo() Backend { return Of(KindCargo) }

// Fake returns the no-op test backend
func Fake() Backend { return Of(KindFake) }

// Bind returns a backend of kind served by a specific adapter instead of the
// shared one. It still compares equal to any other backend of the same kind.
func Bind(kind Kind, adapter Adapter) Backend {
	return Backend{kind: kind, adapter: adapter}
}

// Guess picks a backend from the environment: paru on x86_64, brew elsewhere
func Guess(facts platform.Facts) Backend {
	if facts.Arch() == platform.ArchX86_64 {
		return Paru()
	}
	return Brew()
}

// Kind returns the backend's tag
func (b Backend) Kind() Kind {
	return b.kind
}

// IsZero reports whether no backend was chosen
func (b Backend) IsZero() bool {
	return b.kind == ""
}

// Equal compares backends by kind only
func (b Backend) Equal(other Backend) bool {
	return b.kind == other.kind
}

func (b Backend) String() string {
	if b.IsZero() {
		return "<none>"
	}
	return string(b.kind)
}

// Adapter returns the adapter serving this backend
func (b Backend) Adapter() (Adapter, error) {
	if b.adapter != nil {
		return b.adapter, nil
	}
	if b.IsZero() {
		return nil, errors.New(errors.ErrInvalidInput, "no package backend selected")
	}
	return SharedAdapter(b.kind)
}

func (b Backend) ListInstalled() ([]string, error) {
	a, err := b.Adapter()
	if err != nil {
		return nil, err
	}
	return a.ListInstalled()
}

func (b Backend) ListLeaves() ([]string, error) {
	a, err := b.Adapter()
	if err != nil {
		return nil, err
	}
	return a.ListLeaves()
}

func (b Backend) Install(names []string) error {
	a, err := b.Adapter()
	if err != nil {
		return err
	}
	return a.Install(names)
}

func (b Backend) Remove(names []string) error {
	a, err := b.Adapter()
	if err != nil {
		return err
	}
	return a.Remove(names)
}

func (b Backend) ResolveName(name GenericName) (string, error) {
	a, err := b.Adapter()
	if err != nil {
		return "", err
	}
	return a.ResolveName(name)
}

// MarshalText encodes the backend as its kind
func (b Backend) MarshalText() ([]byte, error) {
	return []byte(b.kind), nil
}

// UnmarshalText decodes a kind name; the shared adapter serves the result
func (b *Backend) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*b = Backend{}
		return nil
	}
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*b = Of(kind)
	return nil
}
