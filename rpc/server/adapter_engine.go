package server

import (
	"fmt"
	"time"

	"github.com/tesserakv/kvcore/lib/engine"
	"github.com/tesserakv/kvcore/rpc/common"
)

// NewEngineServerAdapter creates the adapter that dispatches Messages
// onto a lib/engine.Engine.
func NewEngineServerAdapter() IRPCServerAdapter {
	return &engineServerAdapterImpl{}
}

type engineServerAdapterImpl struct{}

func (a *engineServerAdapterImpl) Handle(req *common.Message, eng *engine.Engine) *common.Message {
	if eng == nil {
		return common.NewErrorResponse(req.MsgType, "handler: engine is nil")
	}

	switch req.MsgType {
	case common.MsgTSet:
		eng.Set(req.DBID, req.Key, req.Value)
		return common.NewSetResponse()

	case common.MsgTGet:
		val, err := eng.Get(req.DBID, req.Key)
		return common.NewGetResponse(val, err)

	case common.MsgTDel:
		err := eng.Del(req.DBID, req.Key)
		return common.NewDelResponse(err)

	case common.MsgTHSet:
		err := eng.HSet(req.DBID, req.Key, req.Field, req.Value)
		return common.NewHSetResponse(err)

	case common.MsgTHGet:
		val, err := eng.HGet(req.DBID, req.Key, req.Field)
		return common.NewHGetResponse(val, err)

	case common.MsgTHDel:
		err := eng.HDel(req.DBID, req.Key, req.Field)
		return common.NewHDelResponse(err)

	case common.MsgTRPush:
		n, err := eng.RPush(req.DBID, req.Key, req.Value)
		return common.NewPushResponse(common.MsgTRPush, n, err)

	case common.MsgTLPush:
		n, err := eng.LPush(req.DBID, req.Key, req.Value)
		return common.NewPushResponse(common.MsgTLPush, n, err)

	case common.MsgTLPop:
		val, err := eng.LPop(req.DBID, req.Key)
		return common.NewPopResponse(common.MsgTLPop, val, err)

	case common.MsgTRPop:
		val, err := eng.RPop(req.DBID, req.Key)
		return common.NewPopResponse(common.MsgTRPop, val, err)

	case common.MsgTBLPop:
		res := eng.BLPop(req.DBID, req.ClientID, req.Keys, time.Duration(req.TimeoutMS)*time.Millisecond)
		return common.NewBLPopResponse(res.Key, res.Value, res.TimedOut)

	case common.MsgTScan:
		keys, next := eng.Scan(req.DBID, req.Cursor, req.Count)
		return common.NewScanResponse(keys, next)

	default:
		return common.NewErrorResponse(
			common.MsgTError,
			fmt.Sprintf("RPC EngineAdapter - unsupported message type: %s", req.MsgType),
		)
	}
}
