package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and
// responses. Which fields are used depends on MsgType: a
// discriminated union by convention rather than by Go type.
type Message struct {
	MsgType MessageType `json:"msg_type"`

	// Request fields.
	DBID      uint32   `json:"db_id,omitempty"`
	Key       string   `json:"key,omitempty"`       // Set, Get, Del, HSet, HGet, HDel, RPush, LPush, LPop, RPop
	Field     string   `json:"field,omitempty"`     // HSet, HGet, HDel
	Value     []byte   `json:"value,omitempty"`     // Set, HSet, RPush, LPush (request); Get, HGet, LPop, RPop, BLPop (response)
	Keys      []string `json:"keys,omitempty"`      // BLPop
	ClientID  uint64   `json:"client_id,omitempty"` // BLPop
	TimeoutMS uint64   `json:"timeout_ms,omitempty"`
	Cursor    uint64   `json:"cursor,omitempty"`
	Count     int      `json:"count,omitempty"`

	// Response fields.
	Ok         bool     `json:"ok,omitempty"`
	Err        string   `json:"err,omitempty"`
	Length     int      `json:"length,omitempty"`      // RPush, LPush
	NextCursor uint64   `json:"next_cursor,omitempty"` // Scan
	ScanKeys   []string `json:"scan_keys,omitempty"`   // Scan
	TimedOut   bool     `json:"timed_out,omitempty"`   // BLPop
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

func NewSetRequest(dbID uint32, key string, value []byte) *Message {
	return &Message{MsgType: MsgTSet, DBID: dbID, Key: key, Value: value}
}

func NewSetResponse() *Message {
	return &Message{MsgType: MsgTSet}
}

func NewGetRequest(dbID uint32, key string) *Message {
	return &Message{MsgType: MsgTGet, DBID: dbID, Key: key}
}

func NewGetResponse(value []byte, err error) *Message {
	msg := &Message{MsgType: MsgTGet, Value: value}
	setErr(msg, err)
	return msg
}

func NewDelRequest(dbID uint32, key string) *Message {
	return &Message{MsgType: MsgTDel, DBID: dbID, Key: key}
}

func NewDelResponse(err error) *Message {
	msg := &Message{MsgType: MsgTDel}
	setErr(msg, err)
	return msg
}

func NewHSetRequest(dbID uint32, key, field string, value []byte) *Message {
	return &Message{MsgType: MsgTHSet, DBID: dbID, Key: key, Field: field, Value: value}
}

func NewHSetResponse(err error) *Message {
	msg := &Message{MsgType: MsgTHSet}
	setErr(msg, err)
	return msg
}

func NewHGetRequest(dbID uint32, key, field string) *Message {
	return &Message{MsgType: MsgTHGet, DBID: dbID, Key: key, Field: field}
}

func NewHGetResponse(value []byte, err error) *Message {
	msg := &Message{MsgType: MsgTHGet, Value: value}
	setErr(msg, err)
	return msg
}

func NewHDelRequest(dbID uint32, key, field string) *Message {
	return &Message{MsgType: MsgTHDel, DBID: dbID, Key: key, Field: field}
}

func NewHDelResponse(err error) *Message {
	msg := &Message{MsgType: MsgTHDel}
	setErr(msg, err)
	return msg
}

// NewPushRequest builds an RPush or LPush request depending on toTail.
func NewPushRequest(dbID uint32, key string, value []byte, toTail bool) *Message {
	msgType := MsgTLPush
	if toTail {
		msgType = MsgTRPush
	}
	return &Message{MsgType: msgType, DBID: dbID, Key: key, Value: value}
}

func NewPushResponse(msgType MessageType, length int, err error) *Message {
	msg := &Message{MsgType: msgType, Length: length}
	setErr(msg, err)
	return msg
}

// NewPopRequest builds an LPop or RPop request depending on fromTail.
func NewPopRequest(dbID uint32, key string, fromTail bool) *Message {
	msgType := MsgTLPop
	if fromTail {
		msgType = MsgTRPop
	}
	return &Message{MsgType: msgType, DBID: dbID, Key: key}
}

func NewPopResponse(msgType MessageType, value []byte, err error) *Message {
	msg := &Message{MsgType: msgType, Value: value}
	setErr(msg, err)
	return msg
}

func NewBLPopRequest(dbID uint32, clientID uint64, keys []string, timeoutMS uint64) *Message {
	return &Message{MsgType: MsgTBLPop, DBID: dbID, ClientID: clientID, Keys: keys, TimeoutMS: timeoutMS}
}

func NewBLPopResponse(key string, value []byte, timedOut bool) *Message {
	return &Message{MsgType: MsgTBLPop, Key: key, Value: value, TimedOut: timedOut}
}

func NewScanRequest(dbID uint32, cursor uint64, count int) *Message {
	return &Message{MsgType: MsgTScan, DBID: dbID, Cursor: cursor, Count: count}
}

func NewScanResponse(keys []string, nextCursor uint64) *Message {
	return &Message{MsgType: MsgTScan, ScanKeys: keys, NextCursor: nextCursor}
}

func NewErrorResponse(msgType MessageType, err string) *Message {
	return &Message{MsgType: msgType, Err: err}
}

func setErr(msg *Message, err error) {
	if err != nil {
		msg.Err = err.Error()
	} else {
		msg.Ok = true
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines which engine operation a Message carries.
type MessageType uint8

func (t MessageType) String() string {
	switch t {
	case MsgTSet:
		return "set"
	case MsgTGet:
		return "get"
	case MsgTDel:
		return "del"
	case MsgTHSet:
		return "hset"
	case MsgTHGet:
		return "hget"
	case MsgTHDel:
		return "hdel"
	case MsgTRPush:
		return "rpush"
	case MsgTLPush:
		return "lpush"
	case MsgTLPop:
		return "lpop"
	case MsgTRPop:
		return "rpop"
	case MsgTBLPop:
		return "blpop"
	case MsgTScan:
		return "scan"
	case MsgTError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler so MessageType serializes as a
// readable string rather than a raw byte.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "set":
		*t = MsgTSet
	case "get":
		*t = MsgTGet
	case "del":
		*t = MsgTDel
	case "hset":
		*t = MsgTHSet
	case "hget":
		*t = MsgTHGet
	case "hdel":
		*t = MsgTHDel
	case "rpush":
		*t = MsgTRPush
	case "lpush":
		*t = MsgTLPush
	case "lpop":
		*t = MsgTLPop
	case "rpop":
		*t = MsgTRPop
	case "blpop":
		*t = MsgTBLPop
	case "scan":
		*t = MsgTScan
	case "error":
		*t = MsgTError
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}
	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	MsgTUnknown MessageType = iota
	MsgTError

	MsgTSet
	MsgTGet
	MsgTDel

	MsgTHSet
	MsgTHGet
	MsgTHDel

	MsgTRPush
	MsgTLPush
	MsgTLPop
	MsgTRPop
	MsgTBLPop

	MsgTScan
)
