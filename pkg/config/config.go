package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	yerrors "github.com/arthur-debert/yuma/pkg/errors"
	"github.com/arthur-debert/yuma/pkg/logging"
	"github.com/arthur-debert/yuma/pkg/paths"
)

var log = logging.GetLogger("config")

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix of environment variables read into the config
const EnvPrefix = "YUMA_"

// Confirmation modes
const (
	ConfirmAuto    = "auto"
	ConfirmConsole = "console"
	ConfirmForm    = "form"
)

// Config is the fully merged yuma configuration
type Config struct {
	Backend Backend `koanf:"backend"`
	Paths   Paths   `koanf:"paths"`
	Confirm Confirm `koanf:"confirm"`
	Logging Logging `koanf:"logging"`
}

// Backend selects and locates package-manager executables
type Backend struct {
	Default  string `koanf:"default"`
	ParuBin  string `koanf:"paru_bin"`
	BrewBin  string `koanf:"brew_bin"`
	CargoBin string `koanf:"cargo_bin"`
}

// Paths holds user-configurable resource locations
type Paths struct {
	Cache string `koanf:"cache"`
	Index string `koanf:"index"`
}

// Confirm controls how install/remove proposals are confirmed
type Confirm struct {
	AssumeYes bool   `koanf:"assume_yes"`
	Mode      string `koanf:"mode"`
}

// Logging holds logging settings
type Logging struct {
	Verbosity int `koanf:"verbosity"`
}

// RawBytes is a koanf provider serving an in-memory document
type RawBytes []byte

func (r RawBytes) ReadBytes() ([]byte, error) { return r, nil }
func (r RawBytes) Read() (map[string]interface{}, error) {
	return nil, errors.New("raw bytes provider needs a parser")
}

// Load merges defaults, the first user config file found and the environment.
func Load(p paths.Paths) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(RawBytes(defaultConfig), toml.Parser()); err != nil {
		return nil, yerrors.Wrap(err, yerrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	for _, path := range p.ConfigFiles() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), ParserFor(path)); err != nil {
			return nil, yerrors.Wrapf(err, yerrors.ErrConfigLoad, "failed to load config from %s", path)
		}
		log.Debug().Str("path", path).Msg("Loaded user config")
		break
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, yerrors.Wrap(err, yerrors.ErrConfigLoad, "failed to load env vars")
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}

	postProcess(cfg, p)
	return cfg, nil
}

// FromMap builds a Config from defaults overlaid with the given flat or nested map.
// The CLI uses this to apply flag overrides on top of a loaded config.
func FromMap(base *Config, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(RawBytes(defaultConfig), toml.Parser()); err != nil {
		return nil, yerrors.Wrap(err, yerrors.ErrConfigLoad, "failed to load defaults")
	}
	if base != nil {
		if err := k.Load(confmap.Provider(toMap(base), "."), nil); err != nil {
			return nil, yerrors.Wrap(err, yerrors.ErrConfigLoad, "failed to load base config")
		}
	}
	if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
		return nil, yerrors.Wrap(err, yerrors.ErrConfigLoad, "failed to load overrides")
	}
	return decode(k)
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, yerrors.Wrap(err, yerrors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	switch cfg.Confirm.Mode {
	case ConfirmAuto, ConfirmConsole, ConfirmForm:
	case "":
		cfg.Confirm.Mode = ConfirmAuto
	default:
		return nil, yerrors.Newf(yerrors.ErrConfigLoad, "unknown confirm mode: %s", cfg.Confirm.Mode)
	}
	return &cfg, nil
}

func postProcess(cfg *Config, p paths.Paths) {
	if cfg.Paths.Cache == "" {
		cfg.Paths.Cache = p.CachePath()
	}
	if cfg.Paths.Index == "" {
		cfg.Paths.Index = p.IndexPath()
	}
	cfg.Paths.Cache = paths.ExpandHome(cfg.Paths.Cache)
	cfg.Paths.Index = paths.ExpandHome(cfg.Paths.Index)
}

// envKey maps YUMA_BACKEND_PARU_BIN to backend.paru_bin: the first
// underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return section
	}
	return section + "." + key
}

// ParserFor picks the koanf parser matching a file extension, TOML by default
func ParserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func toMap(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"backend.default":    cfg.Backend.Default,
		"backend.paru_bin":   cfg.Backend.ParuBin,
		"backend.brew_bin":   cfg.Backend.BrewBin,
		"backend.cargo_bin":  cfg.Backend.CargoBin,
		"paths.cache":        cfg.Paths.Cache,
		"paths.index":        cfg.Paths.Index,
		"confirm.assume_yes": cfg.Confirm.AssumeYes,
		"confirm.mode":       cfg.Confirm.Mode,
		"logging.verbosity":  cfg.Logging.Verbosity,
	}
}

// String renders a one-line summary for debug logging
func (c *Config) String() string {
	return fmt.Sprintf("backend=%q cache=%q index=%q confirm=%s assume_yes=%t",
		c.Backend.Default, c.Paths.Cache, c.Paths.Index, c.Confirm.Mode, c.Confirm.AssumeYes)
}
