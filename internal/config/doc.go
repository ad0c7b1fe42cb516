// Package config loads, normalizes, and validates stockroom's TOML
// configuration. Path fields accept ~ expansion and are absolutized during
// load; an absent config file yields the built-in defaults.
package config
