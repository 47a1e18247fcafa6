package field

import (
	"encoding/binary"
	"fmt"
)

// Value is a typed radiotap field. Every typed kind has exactly one Value
// implementation; its pointer also implements encoding.BinaryUnmarshaler.
type Value interface {
	Kind() Kind
	AppendBinary(b []byte) ([]byte, error)
}

// Decoder is implemented by pointers to Value types.
type Decoder interface {
	UnmarshalBinary(data []byte) error
}

func checkSize(k Kind, data []byte) error {
	if len(data) != k.Size() {
		return fmt.Errorf("%s: got %d bytes, want %d: %w", k, len(data), k.Size(), ErrInvalidFormat)
	}
	return nil
}

func decodeU8(k Kind, data []byte) (uint8, error) {
	if err := checkSize(k, data); err != nil {
		return 0, err
	}
	return data[0], nil
}

func decodeU16(k Kind, data []byte) (uint16, error) {
	if err := checkSize(k, data); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}
