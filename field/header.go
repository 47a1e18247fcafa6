package field

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Radiotap header prefix layout.
const (
	Version          = 0 // only supported header version
	HeaderPrefixSize = 4 // version(1) + pad(1) + length(2)
	BitmapWordSize   = 4 // one little-endian presence word
	MinHeaderLength  = HeaderPrefixSize + BitmapWordSize
)

// Header is the fixed-format prefix of a radiotap capture.
//
// Size is the offset of the first field, i.e. the prefix plus every presence
// word. Length is the total span governed by the header, including padding.
// Present lists kinds in the order their data appears.
type Header struct {
	Version uint8
	Size    int
	Length  int
	Present []Kind
}

// DefaultHeader returns the header of a capture with no fields.
func DefaultHeader() Header {
	return Header{
		Version: Version,
		Size:    MinHeaderLength,
		Length:  MinHeaderLength,
	}
}

// Has reports whether k is listed in the presence list.
func (h Header) Has(k Kind) bool {
	for _, p := range h.Present {
		if p == k {
			return true
		}
	}
	return false
}

// DecodeHeader parses the header prefix and presence bitmap at the start of
// data. It validates the version before anything else, then that the declared
// length fits in data.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) == 0 {
		return Header{}, fmt.Errorf("read version: %w", ErrIncomplete)
	}
	if data[0] != Version {
		return Header{}, fmt.Errorf("version %d: %w", data[0], ErrUnsupportedVersion)
	}
	if len(data) < HeaderPrefixSize {
		return Header{}, fmt.Errorf("read length: %w", ErrIncomplete)
	}

	length := int(binary.LittleEndian.Uint16(data[2:4]))
	if length > len(data) {
		return Header{}, fmt.Errorf("header declares %d bytes, have %d: %w", length, len(data), ErrInvalidLength)
	}

	var present []Kind
	offset := HeaderPrefixSize
	vendor := false
	base := uint(0) // bit index of the current word within its namespace
	for {
		if offset+BitmapWordSize > length {
			return Header{}, fmt.Errorf("presence word at offset %d exceeds length %d: %w", offset, length, ErrInvalidFormat)
		}
		word := binary.LittleEndian.Uint32(data[offset:])
		offset += BitmapWordSize

		if !vendor {
			for b := uint(0); b < bitRadiotapNamespace; b++ {
				if word&(1<<b) == 0 {
					continue
				}
				idx := base + b
				if !KnownKind(idx) {
					return Header{}, fmt.Errorf("presence bit %d: %w", idx, ErrUnsupportedField)
				}
				present = append(present, Kind(idx))
			}
		}

		rt := word&(1<<bitRadiotapNamespace) != 0
		vns := word&(1<<bitVendorNamespace) != 0
		switch {
		case rt && vns:
			return Header{}, fmt.Errorf("presence word at offset %d switches to both namespaces: %w", offset-BitmapWordSize, ErrInvalidFormat)
		case vns:
			present = append(present, KindVendorNamespace)
			vendor, base = true, 0
		case rt:
			vendor, base = false, 0
		default:
			base += 32
		}

		if word&(1<<bitExtended) == 0 {
			break
		}
	}

	return Header{
		Version: data[0],
		Size:    offset,
		Length:  length,
		Present: present,
	}, nil
}

// words lays Present out as presence bitmap words. A kind that does not sort
// after the previous one in the same word, or that follows a vendor namespace,
// opens a fresh radiotap namespace.
func (h Header) words() ([]uint32, error) {
	words := []uint32{0}
	vendor := false
	last := -1
	for _, k := range h.Present {
		if k == KindVendorNamespace {
			words[len(words)-1] |= 1<<bitVendorNamespace | 1<<bitExtended
			words = append(words, 0)
			vendor = true
			continue
		}
		if !KnownKind(k.Bit()) {
			return nil, fmt.Errorf("encode presence bit %d: %w", k.Bit(), ErrUnsupportedField)
		}
		if vendor || int(k.Bit()) <= last {
			words[len(words)-1] |= 1<<bitRadiotapNamespace | 1<<bitExtended
			words = append(words, 0)
			vendor, last = false, -1
		}
		words[len(words)-1] |= 1 << k.Bit()
		last = int(k.Bit())
	}
	return words, nil
}

// EncodedSize returns the prefix size AppendBinary produces for h, or 0 if
// the presence list cannot be encoded.
func (h Header) EncodedSize() int {
	words, err := h.words()
	if err != nil {
		return 0
	}
	return HeaderPrefixSize + BitmapWordSize*len(words)
}

// AppendBinary appends the encoded header prefix to b.
func (h Header) AppendBinary(b []byte) ([]byte, error) {
	if h.Length < 0 || h.Length > math.MaxUint16 {
		return b, fmt.Errorf("header length %d: %w", h.Length, ErrInvalidFormat)
	}
	words, err := h.words()
	if err != nil {
		return b, err
	}
	b = append(b, h.Version, 0)
	b = binary.LittleEndian.AppendUint16(b, uint16(h.Length))
	for _, w := range words {
		b = binary.LittleEndian.AppendUint32(b, w)
	}
	return b, nil
}
