// Package config manages quill configuration with layered precedence:
// built-in defaults, then the YAML config file, then QUILL_* environment
// variables, then explicit CLI overrides.
package config
