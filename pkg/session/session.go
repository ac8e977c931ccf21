// Package session is the entry point for declaring a machine's packages.
//
// A Session collects declarations, schedules callbacks and reconciles on
// Update. Close must run on every exit path: it flushes callbacks still
// queued and, unless the cache is skipped, writes the session state and
// offers undeclared leaves for removal. Run wraps a function so Close is
// always called.
//
//	err := session.Run(func(s *session.Session) error {
//		if err := s.Add(pkgset.Names{"git", "neovim"}); err != nil {
//			return err
//		}
//		s.Schedule("reload shell", reload)
//		return s.Update()
//	})
package session

import (
	"github.com/spf13/afero"

	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/cache"
	"github.com/arthur-debert/yuma/pkg/callbacks"
	"github.com/arthur-debert/yuma/pkg/confirm"
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
	"github.com/arthur-debert/yuma/pkg/packages"
	"github.com/arthur-debert/yuma/pkg/paths"
	"github.com/arthur-debert/yuma/pkg/pkgset"
	"github.com/arthur-debert/yuma/pkg/platform"
	"github.com/arthur-debert/yuma/pkg/services"
)

var log = logging.GetLogger("session")

// fallbackCachePath is used when no XDG location can be determined
const fallbackCachePath = ".yumacache.json"

// Session owns the package registry, the callback queue and the service list
type Session struct {
	env       pkgset.Env
	registry  *packages.Registry
	callbacks *callbacks.Queue
	services  *services.List
	confirmer confirm.Confirmer
	store     *cache.Store

	skipCache bool
	closed    bool
}

// Option configures a Session
type Option func(*Session)

// WithFacts evaluates declarations against facts instead of the live host
func WithFacts(facts platform.Facts) Option {
	return func(s *Session) { s.env.Facts = facts }
}

// WithDefaultBackend sets the backend for declarations that name none
func WithDefaultBackend(be backend.Backend) Option {
	return func(s *Session) { s.env.Default = be }
}

// WithConfirmer replaces the interactive confirmer
func WithConfirmer(c confirm.Confirmer) Option {
	return func(s *Session) { s.confirmer = c }
}

// WithStore sets where the session state is written on Close
func WithStore(store *cache.Store) Option {
	return func(s *Session) { s.store = store }
}

// WithSkipCache makes Close skip persistence and pruning
func WithSkipCache() Option {
	return func(s *Session) { s.skipCache = true }
}

// New creates a session in the building state
func New(opts ...Option) *Session {
	s := &Session{
		registry:  packages.NewRegistry(),
		callbacks: callbacks.NewQueue(),
		services:  services.NewList(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.env.Facts == nil {
		s.env.Facts = platform.Host{}
	}
	if s.confirmer == nil {
		s.confirmer = confirm.Auto()
	}
	if s.store == nil {
		s.store = cache.NewStore(afero.NewOsFs(), defaultCachePath())
	}
	return s
}

func defaultCachePath() string {
	p, err := paths.New()
	if err != nil {
		log.Warn().Err(err).Str("path", fallbackCachePath).Msg("Cannot determine state directory, caching in working directory")
		return fallbackCachePath
	}
	return p.CachePath()
}

// Run creates a session, hands it to fn and closes it however fn returns.
// fn's error wins over a teardown error.
func Run(fn func(*Session) error, opts ...Option) (err error) {
	s := New(opts...)
	defer func() {
		closeErr := s.Close()
		if err == nil {
			err = closeErr
		} else if closeErr != nil {
			log.Error().Err(closeErr).Msg("Session teardown failed")
		}
	}()
	return fn(s)
}

func (s *Session) checkOpen() error {
	if s.closed {
		return errors.New(errors.ErrSessionClosed, "session is already closed")
	}
	return nil
}

// Add builds each declaration against the session environment and merges
// the groups that survive filtering into the registry
func (s *Session) Add(decls ...pkgset.Declaration) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	for _, decl := range decls {
		if decl == nil {
			continue
		}
		group, err := decl.Declare().Build(s.env)
		if err != nil {
			return err
		}
		if group == nil {
			continue
		}
		if err := s.registry.Add(group); err != nil {
			return err
		}
	}
	return nil
}

// With is Add
func (s *Session) With(decls ...pkgset.Declaration) error {
	return s.Add(decls...)
}

// Schedule queues an action to run after the next Update, or at Close
func (s *Session) Schedule(name string, action callbacks.Action) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.callbacks.Add(name, action)
	return nil
}

// Enable declares services
func (s *Session) Enable(names ...string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.services.Enable(names...)
	return nil
}

// SkipCache makes Close skip persistence and pruning
func (s *Session) SkipCache() {
	s.skipCache = true
}

// DryRun is SkipCache
func (s *Session) DryRun() {
	s.SkipCache()
}

// Update installs what is declared but missing, then runs queued callbacks.
// The session stays usable after a failure.
func (s *Session) Update() error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.callbacks.Wait(); err != nil {
		return err
	}

	done := logging.LogOperationStart(log, "update")
	defer done()

	log.Info().Msg("Beginning install")
	if err := s.registry.Install(s.confirmer); err != nil {
		return err
	}
	return s.callbacks.Run()
}

// Plan reports what Update and Close would propose, without acting
func (s *Session) Plan() ([]packages.Plan, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.registry.Plan()
}

// State is the persisted snapshot of a session
type State struct {
	Packages []packages.EntryState `json:"packages"`
	Services *services.List        `json:"services"`
}

// State snapshots the registry and service declarations
func (s *Session) State() State {
	return State{
		Packages: s.registry.Snapshot(),
		Services: s.services,
	}
}

// Close tears the session down. Queued callbacks run first; then, unless
// the cache is skipped, the state is saved and prunable packages are
// offered for removal. Calling Close again does nothing.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.callbacks.Run(); err != nil {
		return err
	}
	if err := s.callbacks.Wait(); err != nil {
		return err
	}

	if s.skipCache {
		log.Debug().Msg("Cache skipped, not persisting or pruning")
		return nil
	}

	if err := s.store.Save(s.State()); err != nil {
		return err
	}
	return s.registry.Prune(s.confirmer)
}
