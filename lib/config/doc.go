// Package config holds the runtime-tunable knobs that govern how
// lib/keyspace builds and reclaims values, plus the server-facing
// settings (bind address, log level) that cmd/kvcore's serve command
// exposes as flags.
package config
