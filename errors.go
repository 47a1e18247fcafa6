package radiotap

import (
	"errors"

	"github.com/banshee-data/radiotap/field"
)

// Decode and encode errors. They are the field package sentinels, re-exported
// so callers need only one import.
var (
	ErrIncomplete         = field.ErrIncomplete
	ErrInvalidLength      = field.ErrInvalidLength
	ErrInvalidFormat      = field.ErrInvalidFormat
	ErrUnsupportedVersion = field.ErrUnsupportedVersion
	ErrUnsupportedField   = field.ErrUnsupportedField
)

// IsTruncated reports whether err means the capture ended before a field the
// header announced. More data may make it decodable.
func IsTruncated(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// IsMalformed reports whether err means the capture can never be decoded.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrUnsupportedVersion) ||
		errors.Is(err, ErrUnsupportedField)
}
