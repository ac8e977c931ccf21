package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvYumaConfigDir overrides the XDG config directory for yuma
	EnvYumaConfigDir = "YUMA_CONFIG_DIR"

	// EnvYumaStateDir overrides the XDG state directory for yuma
	EnvYumaStateDir = "YUMA_STATE_DIR"

	// EnvYumaDataDir overrides the XDG data directory for yuma
	EnvYumaDataDir = "YUMA_DATA_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// YumaDirName is the directory name for yuma-specific files
	YumaDirName = "yuma"

	// ConfigFileName is the base name of the user configuration file
	ConfigFileName = "config"

	// CacheFileName is the session-state cache written on teardown
	CacheFileName = "cache.json"

	// IndexDirName is the default location of the name index inside the data dir
	IndexDirName = "shipyard"

	// LogFileName is the name of the log file
	LogFileName = "yuma.log"
)

// Paths provides centralized path management for yuma
type Paths interface {
	ConfigDir() string
	StateDir() string
	DataDir() string
	ConfigFiles() []string
	CachePath() string
	IndexPath() string
	LogFilePath() string
}

type paths struct {
	configDir string
	stateDir  string
	dataDir   string
}

// New creates a Paths instance, respecting environment overrides
func New() (Paths, error) {
	p := &paths{}

	if dir := os.Getenv(EnvYumaConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, YumaDirName)
	}

	if dir := os.Getenv(EnvYumaDataDir); dir != "" {
		p.dataDir = ExpandHome(dir)
	} else {
		p.dataDir = filepath.Join(xdg.DataHome, YumaDirName)
	}

	// State directory - read XDG_STATE_HOME directly to match the logger
	if dir := os.Getenv(EnvYumaStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.stateDir = filepath.Join(stateHome, YumaDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.stateDir = filepath.Join(homeDir, ".local", "state", YumaDirName)
	}

	return p, nil
}

func (p *paths) ConfigDir() string {
	return p.configDir
}

func (p *paths) StateDir() string {
	return p.stateDir
}

func (p *paths) DataDir() string {
	return p.dataDir
}

// ConfigFiles lists candidate user config files in load-precedence order
func (p *paths) ConfigFiles() []string {
	return []string{
		filepath.Join(p.configDir, ConfigFileName+".toml"),
		filepath.Join(p.configDir, ConfigFileName+".yaml"),
	}
}

func (p *paths) CachePath() string {
	return filepath.Join(p.stateDir, CacheFileName)
}

func (p *paths) IndexPath() string {
	return filepath.Join(p.dataDir, IndexDirName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~user forms are left untouched
		return path
	}

	return path
}
