package transport

import (
	"github.com/tesserakv/kvcore/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc handles one already-framed request and returns the
// framed response. dbID identifies which keyspace.DB the request
// targets; the transport layer only ferries it, it never interprets it.
type ServerHandleFunc func(dbID uint64, req []byte) (resp []byte)

// IRPCServerTransport is the interface every concrete server transport
// (tcp, unix, http) implements.
type IRPCServerTransport interface {
	// RegisterHandler registers the handler invoked for every request.
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport and blocks, serving requests. It
	// returns an error if the listener cannot be created or, for http,
	// when the HTTP server stops; the tcp and unix transports log
	// accept errors and keep serving.
	Listen(config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface every concrete client transport
// implements.
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration.
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the response.
	Send(dbID uint64, req []byte) (resp []byte, err error)
	// Close closes the transport connection.
	Close() error
}
