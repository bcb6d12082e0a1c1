// Package tcp implements TCP socket transport for the RPC system,
// building on the base package's connection pooling and request
// routing with TCP-specific socket tuning (keep-alive, no-delay).
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// The default server buffer size is 512 KB, tuned for typical value
// sizes rather than the smaller frames unix favors.
package tcp
