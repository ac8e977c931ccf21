package backend

import (
	"sync"

	"github.com/spf13/afero"

	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
	"github.com/arthur-debert/yuma/pkg/registry"
)

var log = logging.GetLogger("backend")

// Settings control how shared adapters are created. They must be applied
// with Configure before the first adapter is used; adapters already created
// keep the settings they were built with.
type Settings struct {
	ParuBin  string
	BrewBin  string
	CargoBin string
	Runner   Runner

	// Index location: a single index file or a shipyard directory
	IndexFs   afero.Fs
	IndexPath string
}

func defaultSettings() Settings {
	return Settings{
		ParuBin:  "paru",
		BrewBin:  "brew",
		CargoBin: "cargo",
		Runner:   NewExecRunner(),
		IndexFs:  afero.NewOsFs(),
	}
}

var (
	settingsMu sync.RWMutex
	settings   = defaultSettings()

	adapters = registry.New[Kind, Adapter]()
)

// Configure replaces the settings used for adapters not yet created.
// Zero-valued fields keep their defaults.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	merged := defaultSettings()
	if s.ParuBin != "" {
		merged.ParuBin = s.ParuBin
	}
	if s.BrewBin != "" {
		merged.BrewBin = s.BrewBin
	}
	if s.CargoBin != "" {
		merged.CargoBin = s.CargoBin
	}
	if s.Runner != nil {
		merged.Runner = s.Runner
	}
	if s.IndexFs != nil {
		merged.IndexFs = s.IndexFs
	}
	merged.IndexPath = s.IndexPath
	settings = merged

	SetIndexSource(merged.IndexFs, merged.IndexPath)
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// SharedAdapter returns the process-wide adapter for kind, creating it on first use
func SharedAdapter(kind Kind) (Adapter, error) {
	return adapters.Load(kind, func() (Adapter, error) {
		s := currentSettings()
		log.Debug().Str("backend", kind.String()).Msg("Creating shared adapter")
		switch kind {
		case KindParu:
			return NewParu(s.ParuBin, s.Runner, Index), nil
		case KindBrew:
			return NewBrew(s.BrewBin, s.Runner, Index), nil
		case KindCargo:
			return NewCargo(s.CargoBin), nil
		case KindFake:
			return NewFake(), nil
		default:
			return nil, errors.Newf(errors.ErrInvalidInput, "unknown package backend: %s", kind)
		}
	})
}
