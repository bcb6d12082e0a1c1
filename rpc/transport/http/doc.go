// Package http implements an HTTP-based transport layer for the RPC
// system, enabling communication between clients and servers over
// plain HTTP instead of a custom framed protocol.
//
// The package focuses on:
//   - Client-side HTTP transport for sending RPC requests to servers
//   - Server-side HTTP transport for receiving and handling RPC requests
//   - Round-robin load balancing across multiple server endpoints
//   - Request routing based on the target database ID
//
// Key Components:
//
//   - httpClientTransport: implements IRPCClientTransport, managing
//     connections to server endpoints with round-robin selection and
//     retry on failure.
//
//   - httpServerTransport: implements IRPCServerTransport, routing
//     incoming requests to the handler based on the dbID path segment.
//
// Thread Safety:
//
//	The client transport is thread-safe; it uses atomic operations for
//	the round-robin counter.
package http
