// Package config loads yuma's configuration.
//
// Layers are merged lowest to highest precedence:
//
//  1. Embedded defaults (embedded/defaults.toml)
//  2. User config file ($XDG_CONFIG_HOME/yuma/config.toml or config.yaml)
//  3. YUMA_* environment variables (YUMA_BACKEND_DEFAULT -> backend.default)
//
// The result is decoded into Config through mapstructure.
package config
