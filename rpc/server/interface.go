package server

import (
	"github.com/tesserakv/kvcore/lib/engine"
	"github.com/tesserakv/kvcore/rpc/common"
)

// IRPCServerAdapter decouples the transport-facing server from the
// engine it dispatches onto.
type IRPCServerAdapter interface {
	// Handle processes one request against eng and returns the response
	// to send back. It never returns nil.
	Handle(req *common.Message, eng *engine.Engine) (resp *common.Message)
}
