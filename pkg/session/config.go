package session

import (
	"github.com/spf13/afero"

	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/cache"
	"github.com/arthur-debert/yuma/pkg/config"
	"github.com/arthur-debert/yuma/pkg/confirm"
)

// Options turns configuration into session options. Backend executables
// and the name index location are process-wide, so they are applied to
// the backend package here as well.
func Options(cfg *config.Config, fs afero.Fs) ([]Option, error) {
	backend.Configure(backend.Settings{
		ParuBin:   cfg.Backend.ParuBin,
		BrewBin:   cfg.Backend.BrewBin,
		CargoBin:  cfg.Backend.CargoBin,
		IndexFs:   fs,
		IndexPath: cfg.Paths.Index,
	})

	var opts []Option

	if cfg.Backend.Default != "" {
		kind, err := backend.ParseKind(cfg.Backend.Default)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDefaultBackend(backend.Of(kind)))
	}

	c, err := confirm.Select(cfg.Confirm.Mode, cfg.Confirm.AssumeYes)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithConfirmer(c))

	if cfg.Paths.Cache != "" {
		opts = append(opts, WithStore(cache.NewStore(fs, cfg.Paths.Cache)))
	}
	return opts, nil
}
