// Package config holds the startup configuration: gesture thresholds and the
// named blocker layer order, loaded from TOML with validation and defaults,
// plus a file watcher for live reload.
package config
