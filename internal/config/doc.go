// Package config loads, normalizes, and validates marquee configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// MARQUEE_API_BASE_URL. The Config type centralizes every knob the catalog
// client, the list cache and the CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
