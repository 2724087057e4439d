package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const recordFormatVersionV1 = 1

// ErrCorruptRecord is returned by Decode for blobs that do not parse as any
// known record version.
var ErrCorruptRecord = errors.New("corrupt session record")

// Encode serializes a record into the compact binary layout used by durable
// backends: version byte, length-prefixed user id, big-endian creation time.
func Encode(r Record) ([]byte, error) {
	if len(r.UserID) > 255 {
		return nil, errors.New("user id too long")
	}

	var buf bytes.Buffer
	buf.WriteByte(recordFormatVersionV1)
	buf.WriteByte(byte(len(r.UserID)))
	buf.WriteString(r.UserID)

	if err := binary.Write(&buf, binary.BigEndian, r.CreatedAt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode parses a blob produced by [Encode]. Any structural problem yields
// [ErrCorruptRecord]; callers treat a corrupt stored session as invalid, not
// as a crash.
func Decode(data []byte) (*Record, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil || version != recordFormatVersionV1 {
		return nil, ErrCorruptRecord
	}

	userLen, err := reader.ReadByte()
	if err != nil {
		return nil, ErrCorruptRecord
	}
	userID := make([]byte, userLen)
	if _, err := io.ReadFull(reader, userID); err != nil {
		return nil, ErrCorruptRecord
	}

	var createdAt int64
	if err := binary.Read(reader, binary.BigEndian, &createdAt); err != nil {
		return nil, ErrCorruptRecord
	}

	if reader.Len() != 0 {
		return nil, ErrCorruptRecord
	}

	return &Record{
		UserID:    string(userID),
		CreatedAt: createdAt,
	}, nil
}
