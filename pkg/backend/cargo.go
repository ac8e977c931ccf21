package backend

import "github.com/arthur-debert/yuma/pkg/errors"

// CargoAdapter reserves the cargo kind. Every operation fails until
// `cargo install --list` parsing lands.
type CargoAdapter struct {
	bin string
}

// NewCargo creates the cargo placeholder adapter
func NewCargo(bin string) *CargoAdapter {
	return &CargoAdapter{bin: bin}
}

func (c *CargoAdapter) unsupported(op string) error {
	return errors.Newf(errors.ErrNotImplemented, "cargo backend does not support %s yet", op).
		WithDetail("backend", KindCargo.String())
}

func (c *CargoAdapter) ListInstalled() ([]string, error) {
	return nil, c.unsupported("list_installed")
}

func (c *CargoAdapter) ListLeaves() ([]string, error) {
	return nil, c.unsupported("list_leaves")
}

func (c *CargoAdapter) Install(names []string) error {
	return c.unsupported("install")
}

func (c *CargoAdapter) Remove(names []string) error {
	return c.unsupported("remove")
}

func (c *CargoAdapter) ResolveName(name GenericName) (string, error) {
	return "", c.unsupported("resolve_name")
}
