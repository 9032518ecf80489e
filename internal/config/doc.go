// Package config loads, normalizes, and validates rollcall configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: the roster database location, per-roster matching policy,
// the classification threshold, and log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, parsed count specifiers, and clear validation errors.
package config
