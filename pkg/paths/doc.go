// Package paths provides centralized path handling for yuma.
//
// It follows the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/yuma (config.toml or config.yaml)
//   - State: $XDG_STATE_HOME/yuma (session cache, log file)
//   - Data: $XDG_DATA_HOME/yuma (name index)
//
// # Environment Variables
//
//   - YUMA_CONFIG_DIR: Override the config directory
//   - YUMA_STATE_DIR: Override the state directory
//   - YUMA_DATA_DIR: Override the data directory
//
// # Usage
//
//	p, err := paths.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache := p.CachePath() // ~/.local/state/yuma/cache.json
package paths
