// Package unix implements a transport layer for the RPC system using
// Unix domain sockets, for processes running on the same machine.
//
// This package extends the base transport layer with Unix socket
// connectors while inheriting connection pooling, request routing, and
// error handling from the base package.
//
// Key Components:
//
//   - clientConnector: Establishes connections using Unix domain sockets
//
//   - serverConnector: Creates Unix socket listeners and accepts connections
//
// Performance Characteristics:
//
//   - Default buffer size: 64 KB, tuned for local communication patterns
//   - Lower latency than tcp: avoids the network subsystem entirely
package unix
