// Package packages reconciles declared package groups against what each
// backend reports as installed.
//
// The Registry keeps one entry per backend. Each entry holds the declared
// names and a prunable set: leaves the backend had installed when the entry
// was created, minus everything declared since. Install proposes the
// declared names that are missing; Prune proposes the prunable leftovers.
package packages

import (
	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/confirm"
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
	"github.com/arthur-debert/yuma/pkg/pkgset"
)

var log = logging.GetLogger("packages")

type entry struct {
	backend  backend.Backend
	enabled  []string
	prunable *orderedSet
}

// Registry groups declared packages by backend
type Registry struct {
	entries []*entry
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add merges groups into the registry. A group whose backend has no entry
// yet creates one, seeded with that backend's current leaves.
func (r *Registry) Add(groups ...*pkgset.Group) error {
	for _, g := range groups {
		if g == nil {
			continue
		}
		if err := g.Resolve(); err != nil {
			return err
		}

		e := r.find(g.Backend())
		if e == nil {
			leaves, err := g.Backend().ListLeaves()
			if err != nil {
				return withBackend(err, g.Backend(), "failed to list leaves")
			}
			e = &entry{backend: g.Backend(), prunable: newOrderedSet(leaves...)}
			r.entries = append(r.entries, e)
			log.Debug().Str("backend", g.Backend().String()).Int("leaves", len(leaves)).Msg("Created registry entry")
		}

		for _, name := range g.Names() {
			if !contains(e.enabled, name) {
				e.enabled = append(e.enabled, name)
			}
			e.prunable.remove(name)
		}
	}
	return nil
}

func (r *Registry) find(be backend.Backend) *entry {
	for _, e := range r.entries {
		if e.backend.Equal(be) {
			return e
		}
	}
	return nil
}

// Install asks to install every declared name the backend is missing.
// Entries are processed in creation order and the first failure stops the
// run; earlier backends keep what they installed.
func (r *Registry) Install(c confirm.Confirmer) error {
	for _, e := range r.entries {
		toInstall, err := e.missing()
		if err != nil {
			return err
		}
		if len(toInstall) == 0 {
			log.Info().Str("backend", e.backend.String()).Msg("Nothing to install")
			continue
		}

		ok, err := ask(c, "Install packages with "+e.backend.String()+"?", toInstall)
		if err != nil {
			return withBackend(err, e.backend, "install confirmation failed")
		}
		if !ok {
			log.Info().Str("backend", e.backend.String()).Strs("packages", toInstall).Msg("Install declined")
			continue
		}

		for _, name := range toInstall {
			e.prunable.remove(name)
		}
		log.Info().Str("backend", e.backend.String()).Strs("packages", toInstall).Msg("Installing packages")
		if err := e.backend.Install(toInstall); err != nil {
			return withBackend(err, e.backend, "install failed")
		}
	}
	return nil
}

// Prune drains the registry, asking per backend to remove its prunable set
func (r *Registry) Prune(c confirm.Confirmer) error {
	entries := r.entries
	r.entries = nil

	for _, e := range entries {
		prunable := e.prunable.items()
		if len(prunable) == 0 {
			log.Info().Str("backend", e.backend.String()).Msg("Nothing to prune")
			continue
		}

		ok, err := ask(c, "Remove packages no longer declared from "+e.backend.String()+"?", prunable)
		if err != nil {
			return withBackend(err, e.backend, "prune confirmation failed")
		}
		if !ok {
			log.Info().Str("backend", e.backend.String()).Strs("packages", prunable).Msg("Prune declined")
			continue
		}

		log.Info().Str("backend", e.backend.String()).Strs("packages", prunable).Msg("Removing packages")
		if err := e.backend.Remove(prunable); err != nil {
			return withBackend(err, e.backend, "remove failed")
		}
	}
	return nil
}

// missing is the declared names the backend does not report as installed
func (e *entry) missing() ([]string, error) {
	installed, err := e.backend.ListInstalled()
	if err != nil {
		return nil, withBackend(err, e.backend, "failed to list installed packages")
	}
	have := newOrderedSet(installed...)

	var out []string
	for _, name := range e.enabled {
		if !have.has(name) {
			out = append(out, name)
		}
	}
	return out, nil
}

// Len is the number of backend entries
func (r *Registry) Len() int {
	return len(r.entries)
}

func ask(c confirm.Confirmer, message string, items []string) (bool, error) {
	ok, err := c.Confirm(message, items)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			return false, errors.Wrap(err, errors.ErrConfirm, "confirmation failed")
		}
		return false, err
	}
	return ok, nil
}

// withBackend tags err with the backend it came from, keeping its code
func withBackend(err error, be backend.Backend, message string) error {
	return errors.Wrap(err, errors.GetErrorCode(err), message).
		WithDetail("backend", be.String())
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
