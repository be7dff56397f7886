// Package config loads, normalizes, and validates spatialtool configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts) and
// reads an optional TOML file. Always obtain settings through this package so
// the CLI receives absolute directories, a bounded worker count and canonical
// log settings.
package config
