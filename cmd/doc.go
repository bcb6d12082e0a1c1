// Package cmd implements the command-line interface for kvcore. It
// provides a hierarchical command structure with operations for
// running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value operations against a running server
//     (set, get, del, hset/hget/hdel, list pushes/pops, blpop, scan)
//   - serve: Commands for starting and configuring the kvcore server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See kvcore -help for a list of all commands.
package cmd
