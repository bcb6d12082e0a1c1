package client

import (
	"fmt"

	"github.com/tesserakv/kvcore/rpc/common"
	"github.com/tesserakv/kvcore/rpc/serializer"
	"github.com/tesserakv/kvcore/rpc/transport"
)

var Logger = common.Logger

// rpcClientAdapter stores everything the engine client needs to talk to
// a remote server: which database it operates on, how to reach it, and
// how to encode what it sends.
type rpcClientAdapter struct {
	dbID       uint32
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// invokeRPCRequest serializes req, sends it over transport, and decodes
// the response, surfacing transport, serialization, and engine errors
// uniformly.
func invokeRPCRequest(dbID uint32, req *common.Message, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (*common.Message, error) {
	reqBytes, err := serializer.Serialize(*req)
	if err != nil {
		return nil, err
	}

	respBytes, err := transport.Send(uint64(dbID), reqBytes)
	if err != nil {
		return nil, err
	}

	resp := &common.Message{}
	if err := serializer.Deserialize(respBytes, resp); err != nil {
		return nil, fmt.Errorf("RPC EngineClient - error: %s", err)
	}

	if resp.MsgType == common.MsgTError || resp.Err != "" {
		return nil, fmt.Errorf("RPC EngineClient - error: %s", resp.Err)
	}

	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("RPC EngineClient - unexpected message type: %s, expected %s", resp.MsgType, req.MsgType)
	}

	return resp, nil
}
