// Package config loads and validates the engine configuration from the
// environment. Missing credentials or malformed weights are startup errors:
// the process refuses to run rather than polling with a broken setup.
package config
