package yuma

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/yuma/internal/version"
	"github.com/arthur-debert/yuma/pkg/backend"
	"github.com/arthur-debert/yuma/pkg/config"
	"github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
	"github.com/arthur-debert/yuma/pkg/manifest"
	"github.com/arthur-debert/yuma/pkg/paths"
	"github.com/arthur-debert/yuma/pkg/platform"
	"github.com/arthur-debert/yuma/pkg/session"
)

// globals are the flags shared by every command
type globals struct {
	verbosity int
	dryRun    bool
	yes       bool
	noCache   bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "yuma",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVarP(&g.yes, "yes", "y", false, MsgFlagYes)
	rootCmd.PersistentFlags().BoolVar(&g.noCache, "no-cache", false, MsgFlagNoCache)

	rootCmd.AddCommand(newApplyCmd(g))
	rootCmd.AddCommand(newPlanCmd(g))
	rootCmd.AddCommand(newBackendsCmd(g))
	rootCmd.AddCommand(newResolveCmd(g))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig reads the layered configuration and applies flag overrides
func (g *globals) loadConfig() (*config.Config, error) {
	p, err := paths.New()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to initialize paths")
	}

	cfg, err := config.Load(p)
	if err != nil {
		return nil, err
	}

	if g.yes {
		cfg, err = config.FromMap(cfg, map[string]interface{}{"confirm.assume_yes": true})
		if err != nil {
			return nil, err
		}
	}

	if cfg.Logging.Verbosity > g.verbosity {
		g.verbosity = cfg.Logging.Verbosity
		logging.SetupLogger(g.verbosity)
	}
	log.Debug().Str("config", cfg.String()).Msg("Configuration loaded")
	return cfg, nil
}

// sessionOptions turns configuration and flags into session options
func (g *globals) sessionOptions(cfg *config.Config, extra ...session.Option) ([]session.Option, error) {
	opts, err := session.Options(cfg, afero.NewOsFs())
	if err != nil {
		return nil, err
	}
	if g.noCache {
		opts = append(opts, session.WithSkipCache())
	}
	return append(opts, extra...), nil
}

func newApplyCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "apply <manifest>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.apply")
			logger.Info().
				Bool("dryRun", g.dryRun).
				Bool("noCache", g.noCache).
				Str("manifest", args[0]).
				Msg("Starting apply")

			if g.dryRun {
				if err := runPlan(cmd, g, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
				return nil
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			opts, err := g.sessionOptions(cfg)
			if err != nil {
				return err
			}

			runner := backend.NewExecRunner()
			return session.Run(func(s *session.Session) error {
				if err := m.Apply(s, runner); err != nil {
					return err
				}
				return s.Update()
			}, opts...)
		},
	}
}

func newPlanCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <manifest>",
		Short: MsgPlanShort,
		Long:  MsgPlanLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, g, args[0])
		},
	}
}

func runPlan(cmd *cobra.Command, g *globals, path string) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	decls, err := m.Declarations()
	if err != nil {
		return err
	}
	opts, err := g.sessionOptions(cfg, session.WithSkipCache())
	if err != nil {
		return err
	}

	s := session.New(opts...)
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Msg("Closing plan session failed")
		}
	}()

	if err := s.Add(decls...); err != nil {
		return err
	}
	plans, err := s.Plan()
	if err != nil {
		return err
	}
	renderPlan(cmd.OutOrStdout(), plans)
	return nil
}

func newBackendsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: MsgBackendsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			def, err := defaultBackend(cfg, "")
			if err != nil {
				return err
			}
			renderBackends(cmd.OutOrStdout(), backend.Kinds(), def.Kind())
			return nil
		},
	}
}

func newResolveCmd(g *globals) *cobra.Command {
	var backendName string

	cmd := &cobra.Command{
		Use:   "resolve <generic-name>...",
		Short: MsgResolveShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			backend.Configure(backend.Settings{
				ParuBin:   cfg.Backend.ParuBin,
				BrewBin:   cfg.Backend.BrewBin,
				CargoBin:  cfg.Backend.CargoBin,
				IndexPath: cfg.Paths.Index,
			})
			be, err := defaultBackend(cfg, backendName)
			if err != nil {
				return err
			}

			failed := 0
			for _, name := range args {
				specific, err := be.ResolveName(backend.GenericName(name))
				if err != nil {
					failed++
					renderUnresolved(cmd.OutOrStdout(), name, err)
					continue
				}
				renderResolved(cmd.OutOrStdout(), name, specific)
			}
			if failed > 0 {
				return errors.Newf(errors.ErrUnresolvedPackage, MsgErrUnresolvable, failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&backendName, "backend", "b", "", MsgFlagBackend)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

// defaultBackend picks the flag value, then the configured default, then a guess
func defaultBackend(cfg *config.Config, override string) (backend.Backend, error) {
	name := override
	if name == "" {
		name = cfg.Backend.Default
	}
	if name == "" {
		return backend.Guess(platform.Host{}), nil
	}
	kind, err := backend.ParseKind(name)
	if err != nil {
		return backend.Backend{}, err
	}
	return backend.Of(kind), nil
}
