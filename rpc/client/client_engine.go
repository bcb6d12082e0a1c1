package client

import (
	"time"

	"github.com/tesserakv/kvcore/rpc/common"
	"github.com/tesserakv/kvcore/rpc/serializer"
	"github.com/tesserakv/kvcore/rpc/transport"
)

// NewRPCEngineClient connects transport and returns a client that
// forwards every command to dbID on the remote engine.
func NewRPCEngineClient(
	dbID uint32,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (*RPCEngineClient, error) {
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &RPCEngineClient{
		rpcClientAdapter{
			dbID:       dbID,
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}, nil
}

// RPCEngineClient is a thin RPC stand-in for lib/engine.Engine: every
// method mirrors an Engine method but goes over the wire instead of a
// direct call.
type RPCEngineClient struct {
	rpcClientAdapter
}

func (c *RPCEngineClient) Set(key string, value []byte) error {
	req := common.NewSetRequest(c.dbID, key, value)
	_, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	return err
}

func (c *RPCEngineClient) Get(key string) ([]byte, error) {
	req := common.NewGetRequest(c.dbID, key)
	resp, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (c *RPCEngineClient) Del(key string) error {
	req := common.NewDelRequest(c.dbID, key)
	_, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	return err
}

func (c *RPCEngineClient) HSet(key, field string, value []byte) error {
	req := common.NewHSetRequest(c.dbID, key, field, value)
	_, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	return err
}

func (c *RPCEngineClient) HGet(key, field string) ([]byte, error) {
	req := common.NewHGetRequest(c.dbID, key, field)
	resp, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (c *RPCEngineClient) HDel(key, field string) error {
	req := common.NewHDelRequest(c.dbID, key, field)
	_, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	return err
}

func (c *RPCEngineClient) RPush(key string, value []byte) (int, error) {
	req := common.NewPushRequest(c.dbID, key, value, true)
	resp, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	if err != nil {
		return 0, err
	}
	return resp.Length, nil
}

func (c *RPCEngineClient) LPush(key string, value []byte) (int, error) {
	req := common.NewPushRequest(c.dbID, key, value, false)
	resp, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	if err != nil {
		return 0, err
	}
	return resp.Length, nil
}

func (c *RPCEngineClient) LPop(key string) ([]byte, error) {
	req := common.NewPopRequest(c.dbID, key, false)
	resp, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (c *RPCEngineClient) RPop(key string) ([]byte, error) {
	req := common.NewPopRequest(c.dbID, key, true)
	resp, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// BLPop blocks (for up to timeout, or forever if timeout is zero) until
// one of keys has an element to pop.
func (c *RPCEngineClient) BLPop(clientID uint64, keys []string, timeout time.Duration) (key string, value []byte, timedOut bool, err error) {
	req := common.NewBLPopRequest(c.dbID, clientID, keys, uint64(timeout/time.Millisecond))
	resp, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	if err != nil {
		return "", nil, false, err
	}
	return resp.Key, resp.Value, resp.TimedOut, nil
}

// Scan advances a SCAN cursor, returning the keys found this step and
// the cursor to resume from (0 means the scan is complete).
func (c *RPCEngineClient) Scan(cursor uint64, count int) (keys []string, next uint64, err error) {
	req := common.NewScanRequest(c.dbID, cursor, count)
	resp, err := invokeRPCRequest(c.dbID, req, c.transport, c.serializer)
	if err != nil {
		return nil, 0, err
	}
	return resp.ScanKeys, resp.NextCursor, nil
}

// Close closes the underlying transport connection.
func (c *RPCEngineClient) Close() error {
	return c.transport.Close()
}
