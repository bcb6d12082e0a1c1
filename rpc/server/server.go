package server

import (
	"fmt"
	"time"

	"github.com/tesserakv/kvcore/lib/engine"
	"github.com/tesserakv/kvcore/rpc/common"
	"github.com/tesserakv/kvcore/rpc/serializer"
	"github.com/tesserakv/kvcore/rpc/transport"
)

var Logger = common.Logger

// sweepInterval is how often the server checks for BLPOP clients whose
// deadline has passed, per spec.md §4.F's periodic timeout requirement.
const sweepInterval = 100 * time.Millisecond

// NewRPCServer creates a new RPC server that dispatches every request
// onto eng.
//
// Usage:
//
//	s := server.NewRPCServer(
//		config,
//		eng,
//		http.NewHttpServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	eng *engine.Engine,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) rpcServer {
	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	return rpcServer{
		config:     config,
		engine:     eng,
		transport:  transport,
		serializer: serializer,
		adapter:    NewEngineServerAdapter(),
	}
}

type rpcServer struct {
	config     common.ServerConfig
	engine     *engine.Engine
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	adapter    IRPCServerAdapter
}

func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(dbID uint64, req []byte) []byte {
		var msg common.Message
		var respMsg *common.Message

		if err := s.serializer.Deserialize(req, &msg); err != nil {
			respMsg = common.NewErrorResponse(common.MsgTError, fmt.Sprintf("failed to deserialize request: %s", err))
		} else {
			respMsg = s.adapter.Handle(&msg, s.engine)
		}

		val, err := s.serializer.Serialize(*respMsg)
		if err != nil {
			val, _ = s.serializer.Serialize(*common.NewErrorResponse(
				common.MsgTError, fmt.Sprintf("failed to serialize response: %s", err)))
		}
		return val
	})
}

// sweepTimeouts periodically unblocks BLPOP callers whose deadline has
// elapsed. lib/keyspace never ticks its own clock, so someone in the
// transport layer must drive it; the server is the natural place since
// it owns the Engine the transport dispatches onto.
func (s *rpcServer) sweepTimeouts() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		s.engine.SweepTimeouts(time.Now())
	}
}

// Serve starts the RPC server: it wires the transport handler, starts
// the background timeout sweeper, and blocks on the transport's accept
// loop.
func (s *rpcServer) Serve() error {
	s.registerTransportHandler()
	go s.sweepTimeouts()
	return s.transport.Listen(s.config)
}
