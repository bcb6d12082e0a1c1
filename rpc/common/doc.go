// Package common provides the data structures shared across the RPC
// system: the Message protocol every transport and serializer speaks,
// and the ServerConfig/ClientConfig pair the transports dial from.
//
// Key Components:
//
//   - Message: the single request/response envelope for every engine
//     operation the rpc package exposes, with factory functions for
//     each command.
//
//   - MessageType: enumerates the fixed SET/GET/DEL/HSET/HGET/HDEL/
//     RPUSH/LPUSH/LPOP/RPOP/BLPOP/SCAN command set.
//
//   - ServerConfig / ClientConfig: connection-level settings for the
//     transports, independent of lib/config's engine tunables.
//
//   - Logger: the shared lib/logging logger every rpc subpackage uses.
package common
