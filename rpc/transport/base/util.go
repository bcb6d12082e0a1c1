package base

import (
	"encoding/binary"
	"io"
	"net"
)

// writeFrame writes one request or response onto conn: dbID (the
// keyspace.DB the enclosed Message targets), requestID (the
// correlation id a client uses to match a response to its in-flight
// call, since one connection can have several requests outstanding),
// then the serializer's encoded Message bytes. dbID and requestID ride
// outside the serialized payload so a connection can be routed and
// correlated without decoding whichever of json/gob/binary produced
// data.
//
// Frame layout: 8 bytes dbID, 8 bytes requestID, 4 bytes data length,
// N bytes data, all big endian.
func writeFrame(conn net.Conn, dbID uint64, requestID uint64, data []byte) error {
	header := make([]byte, 20)
	binary.BigEndian.PutUint64(header[:8], dbID)
	binary.BigEndian.PutUint64(header[8:16], requestID)
	binary.BigEndian.PutUint32(header[16:20], uint32(len(data)))

	b := net.Buffers{header, data}
	_, err := b.WriteTo(conn)
	return err
}

// readFrame reads one frame written by writeFrame, reusing buf for
// both the header and the payload when it's large enough, falling
// back to a freshly allocated buffer otherwise.
func readFrame(conn net.Conn, buf []byte) (dbID uint64, requestID uint64, data []byte, err error) {
	if buf == nil || len(buf) < 20 {
		buf = make([]byte, 20)
	}

	if _, err := io.ReadFull(conn, buf[:20]); err != nil {
		return 0, 0, nil, err
	}

	dbID = binary.BigEndian.Uint64(buf[:8])
	requestID = binary.BigEndian.Uint64(buf[8:16])
	contentLength := binary.BigEndian.Uint32(buf[16:20])

	if contentLength == 0 {
		return dbID, requestID, []byte{}, nil
	}

	if len(buf) < int(contentLength) {
		buf = make([]byte, contentLength)
	}

	if _, err := io.ReadFull(conn, buf[:contentLength]); err != nil {
		return 0, 0, nil, err
	}

	return dbID, requestID, buf[:contentLength], nil
}
