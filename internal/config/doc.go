// Package config discovers, decodes and compiles stylint configuration.
//
// A config file (stylint.toml, .stylint.toml, .stylint.yaml or .stylint.yml)
// is found by walking up from the first input. Values are merged as
// defaults < file < flags and compiled once into an immutable Settings that
// the driver and the rules receive explicitly.
package config
