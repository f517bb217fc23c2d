// Package config loads the tournest application configuration from three
// layered sources: environment variables, command-line flags, and an
// optional JSON file. Sources are merged with mergo (first non-zero value
// wins), defaults are applied, and the result is validated before the
// process starts serving.
package config
