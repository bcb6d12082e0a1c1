package serializer

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tesserakv/kvcore/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary
// format optimized for speed and space: a 16-bit flag word marks which
// optional string, byte and slice fields are present so absent ones
// cost nothing on the wire, including the string slices Message
// carries for BLPOP/SCAN. The numeric fields are always written.
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

type binarySerializerImpl struct{}

// Bit flags indicating which optional fields are present.
const (
	hasKey      uint16 = 1 << 0
	hasField    uint16 = 1 << 1
	hasValue    uint16 = 1 << 2
	hasKeys     uint16 = 1 << 3
	hasErr      uint16 = 1 << 4
	hasScanKeys uint16 = 1 << 5
	hasOk       uint16 = 1 << 6
	hasTimedOut uint16 = 1 << 7
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(byte(msg.MsgType))

	var flags uint16
	if msg.Key != "" {
		flags |= hasKey
	}
	if msg.Field != "" {
		flags |= hasField
	}
	if msg.Value != nil {
		flags |= hasValue
	}
	if msg.Keys != nil {
		flags |= hasKeys
	}
	if msg.Err != "" {
		flags |= hasErr
	}
	if len(msg.ScanKeys) > 0 {
		flags |= hasScanKeys
	}
	if msg.Ok {
		flags |= hasOk
	}
	if msg.TimedOut {
		flags |= hasTimedOut
	}
	writeUint16(&buf, flags)

	writeUint32(&buf, msg.DBID)
	writeUint64(&buf, msg.ClientID)
	writeUint64(&buf, msg.TimeoutMS)
	writeUint64(&buf, msg.Cursor)
	writeUint32(&buf, uint32(msg.Count))
	writeUint32(&buf, uint32(msg.Length))
	writeUint64(&buf, msg.NextCursor)

	if flags&hasKey != 0 {
		writeString(&buf, msg.Key)
	}
	if flags&hasField != 0 {
		writeString(&buf, msg.Field)
	}
	if flags&hasValue != 0 {
		writeBytes(&buf, msg.Value)
	}
	if flags&hasErr != 0 {
		writeString(&buf, msg.Err)
	}
	if flags&hasKeys != 0 {
		writeStrings(&buf, msg.Keys)
	}
	if flags&hasScanKeys != 0 {
		writeStrings(&buf, msg.ScanKeys)
	}

	return buf.Bytes(), nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	buf := bytes.NewReader(data)

	msgType, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("read msg type: %w", err)
	}
	msg.MsgType = common.MessageType(msgType)

	flags, err := readUint16(buf)
	if err != nil {
		return fmt.Errorf("read flags: %w", err)
	}

	if msg.DBID, err = readUint32(buf); err != nil {
		return fmt.Errorf("read db id: %w", err)
	}
	if msg.ClientID, err = readUint64(buf); err != nil {
		return fmt.Errorf("read client id: %w", err)
	}
	if msg.TimeoutMS, err = readUint64(buf); err != nil {
		return fmt.Errorf("read timeout: %w", err)
	}
	if msg.Cursor, err = readUint64(buf); err != nil {
		return fmt.Errorf("read cursor: %w", err)
	}
	count, err := readUint32(buf)
	if err != nil {
		return fmt.Errorf("read count: %w", err)
	}
	msg.Count = int(count)
	length, err := readUint32(buf)
	if err != nil {
		return fmt.Errorf("read length: %w", err)
	}
	msg.Length = int(length)
	if msg.NextCursor, err = readUint64(buf); err != nil {
		return fmt.Errorf("read next cursor: %w", err)
	}

	msg.Key, msg.Field, msg.Value, msg.Err, msg.Keys, msg.ScanKeys = "", "", nil, "", nil, nil

	if flags&hasKey != 0 {
		if msg.Key, err = readString(buf); err != nil {
			return fmt.Errorf("read key: %w", err)
		}
	}
	if flags&hasField != 0 {
		if msg.Field, err = readString(buf); err != nil {
			return fmt.Errorf("read field: %w", err)
		}
	}
	if flags&hasValue != 0 {
		if msg.Value, err = readBytes(buf); err != nil {
			return fmt.Errorf("read value: %w", err)
		}
	}
	if flags&hasErr != 0 {
		if msg.Err, err = readString(buf); err != nil {
			return fmt.Errorf("read err: %w", err)
		}
	}
	if flags&hasKeys != 0 {
		if msg.Keys, err = readStrings(buf); err != nil {
			return fmt.Errorf("read keys: %w", err)
		}
	}
	if flags&hasScanKeys != 0 {
		if msg.ScanKeys, err = readStrings(buf); err != nil {
			return fmt.Errorf("read scan keys: %w", err)
		}
	}

	msg.Ok = flags&hasOk != 0
	msg.TimedOut = flags&hasTimedOut != 0

	return nil
}

// --------------------------------------------------------------------------
// Primitive read/write helpers
// --------------------------------------------------------------------------

func writeUint16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeUint32(buf, uint32(len(b)))
	buf.Write(b)
}

func writeString(buf *bytes.Buffer, s string) {
	writeBytes(buf, []byte(s))
}

func writeStrings(buf *bytes.Buffer, ss []string) {
	writeUint32(buf, uint32(len(ss)))
	for _, s := range ss {
		writeString(buf, s)
	}
}

func readUint16(r *bytes.Reader) (uint16, error) {
	var tmp [2]byte
	if _, err := readFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(tmp[:]), nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := readFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(tmp[:]), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var tmp [8]byte
	if _, err := readFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(tmp[:]), nil
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if n == 0 {
		return b, nil
	}
	if _, err := readFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func readString(r *bytes.Reader) (string, error) {
	b, err := readBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readStrings(r *bytes.Reader) ([]string, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	ss := make([]string, n)
	for i := range ss {
		if ss[i], err = readString(r); err != nil {
			return nil, err
		}
	}
	return ss, nil
}

func readFull(r *bytes.Reader, buf []byte) (int, error) {
	n, err := r.Read(buf)
	if err != nil {
		return n, err
	}
	if n != len(buf) {
		return n, fmt.Errorf("short read: got %d want %d", n, len(buf))
	}
	return n, nil
}
