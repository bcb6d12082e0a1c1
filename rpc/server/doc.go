// Package server implements the demo RPC server that exposes a
// lib/engine.Engine over a transport and serializer of the caller's
// choosing.
//
// Key Components:
//
//   - IRPCServerAdapter: translates a decoded Message into calls
//     against an Engine and packages the result back into a Message.
//
//   - NewEngineServerAdapter: the only adapter implementation, covering
//     the full SET/GET/DEL/HSET/HGET/HDEL/RPUSH/LPUSH/LPOP/RPOP/BLPOP/
//     SCAN command set.
//
//   - NewRPCServer: wires a Engine, a transport, and a serializer
//     together and drives the periodic BLPOP timeout sweep.
//
// Usage Example:
//
//	eng := engine.New(config.DefaultTunables())
//	defer eng.Close()
//
//	s := server.NewRPCServer(
//	  common.ServerConfig{Endpoint: "0.0.0.0:8080", TimeoutSecond: 5, LogLevel: "info"},
//	  eng,
//	  tcp.NewTCPDefaultServerTransport(),
//	  serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	The server dispatches every connection's requests through the same
//	Engine, which serializes access internally; Serve itself should be
//	called once.
package server
