// Package config handles configuration management for filerouter.
// It layers the embedded defaults, the user config file, the vault config
// file and FILEROUTER_* environment variables, and publishes the result as
// immutable snapshots that can be swapped while the router is running.
package config
