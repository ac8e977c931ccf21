// Package services records which system services a session wants enabled.
// Nothing is reconciled against a service manager yet; the list is kept
// so it can be persisted with the rest of the session state.
package services

import "github.com/arthur-debert/yuma/pkg/logging"

var log = logging.GetLogger("services")

// Service is a declared service
type Service struct {
	Name string `json:"name"`
}

// List is the ordered set of declared services
type List struct {
	Enabled []Service `json:"enabled"`
}

// NewList returns an empty list
func NewList() *List {
	return &List{Enabled: []Service{}}
}

// Enable declares services, skipping names already declared
func (l *List) Enable(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if l.Has(name) {
			log.Info().Str("service", name).Msg("Duplicate service skipped")
			continue
		}
		l.Enabled = append(l.Enabled, Service{Name: name})
	}
}

// Has reports whether name is declared
func (l *List) Has(name string) bool {
	for _, s := range l.Enabled {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Names lists declared services in declaration order
func (l *List) Names() []string {
	names := make([]string, len(l.Enabled))
	for i, s := range l.Enabled {
		names[i] = s.Name
	}
	return names
}
