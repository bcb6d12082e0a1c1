// Package rpc provides a thin request/response framework that exposes
// lib/engine's fixed command set (SET/GET/DEL/HSET/HGET/HDEL/RPUSH/
// LPUSH/LPOP/RPOP/BLPOP/SCAN) across a network boundary. It exists to
// exercise the External Interfaces contract end-to-end; command
// dispatch beyond that fixed set, replication, and scripting stay out
// of scope.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures shared across the RPC system,
//     namely the Message protocol.
//
//   - transport: Network communication abstractions with pluggable
//     implementations (TCP, Unix sockets, HTTP).
//
//   - serializer: Message serialization with multiple format options
//     (Binary, JSON, GOB) for converting between Message objects and
//     byte arrays.
//
//   - server: hosts a lib/engine.Engine and answers requests handed to
//     it by a transport.
package rpc
