// Package config loads, normalizes, and validates img2base configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the IMG2BASE_LOG_LEVEL environment
// override. Every setting the CLI needs is resolved here in one pass.
package config
