// Package config handles configuration management for repatch.
// It layers embedded defaults, the user config file, a project
// .repatch.toml, REPATCH_ environment variables and command line
// overrides, in that order, using koanf.
package config
