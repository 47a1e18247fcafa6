package field

import "errors"

// Errors returned while decoding or encoding radiotap data. Callers should
// match them with errors.Is, as they are usually wrapped with context.
var (
	// ErrIncomplete means a field the header promised runs past the end of the
	// data. The capture is truncated rather than malformed.
	ErrIncomplete = errors.New("incomplete radiotap capture")

	// ErrInvalidLength means the header declares more bytes than were supplied.
	ErrInvalidLength = errors.New("invalid radiotap length")

	// ErrInvalidFormat means the data is structurally malformed.
	ErrInvalidFormat = errors.New("invalid radiotap capture")

	// ErrUnsupportedVersion means the header version is not 0.
	ErrUnsupportedVersion = errors.New("unsupported radiotap header version")

	// ErrUnsupportedField means a present bit has no known size or alignment.
	ErrUnsupportedField = errors.New("unsupported radiotap field")
)
