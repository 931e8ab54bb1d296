// Package config loads, normalizes, and validates itlexport configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ITLEXPORT_LIBRARY_PATH. The Config type centralizes every knob the CLI
// needs so the library location, output roots, and prefix translation are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
