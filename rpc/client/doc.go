// Package client implements an RPC client for the engine command set
// exposed by rpc/server.
//
// Key Components:
//
//   - RPCEngineClient: forwards SET/GET/DEL/HSET/HGET/HDEL/RPUSH/LPUSH/
//     LPOP/RPOP/BLPOP/SCAN to a remote server over the configured
//     transport and serializer.
//
//   - NewRPCEngineClient: factory function that connects the transport
//     and returns a ready-to-use RPCEngineClient.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Endpoints:              []string{"localhost:5000"},
//	  TimeoutSecond:          5,
//	  RetryCount:             3,
//	  ConnectionsPerEndpoint: 1,
//	}
//
//	c, _ := client.NewRPCEngineClient(0, config, tcp.NewTCPClientTransport(), serializer.NewBinarySerializer())
//	defer c.Close()
//
//	c.Set("mykey", []byte("myvalue"))
//	value, _ := c.Get("mykey")
//
// Performance Considerations:
//
//   - Increasing ConnectionsPerEndpoint improves throughput for
//     applications that send many concurrent requests.
//
//   - The binary serializer produces the smallest payloads and is the
//     fastest of the three; JSON is the easiest to inspect on the wire.
//
// Thread Safety:
//
//	RPCEngineClient is safe for concurrent use from multiple goroutines.
package client
