package packages

import "github.com/arthur-debert/yuma/pkg/backend"

// Plan is what Install and Prune would propose for one backend
type Plan struct {
	Backend   backend.Backend `json:"backend"`
	ToInstall []string        `json:"to_install"`
	Prunable  []string        `json:"prunable"`
}

// Plan computes the proposals for every entry without asking or acting
func (r *Registry) Plan() ([]Plan, error) {
	plans := make([]Plan, 0, len(r.entries))
	for _, e := range r.entries {
		toInstall, err := e.missing()
		if err != nil {
			return nil, err
		}
		plans = append(plans, Plan{
			Backend:   e.backend,
			ToInstall: toInstall,
			Prunable:  e.prunable.items(),
		})
	}
	return plans, nil
}

// EntryState is a snapshot of one registry entry
type EntryState struct {
	Backend  backend.Backend `json:"backend"`
	Enabled  []string        `json:"enabled"`
	Prunable []string        `json:"prunable"`
}

// Snapshot copies the registry contents in entry order
func (r *Registry) Snapshot() []EntryState {
	out := make([]EntryState, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, EntryState{
			Backend:  e.backend,
			Enabled:  append([]string(nil), e.enabled...),
			Prunable: e.prunable.items(),
		})
	}
	return out
}
