// Package testutil provides shared test fixtures and helpers.
//
// Fixtures are returned as fresh slices so tests may modify them freely.
package testutil

import (
	"encoding/hex"
	"errors"
	"testing"
)

// ErrShortWrite is returned by FailingWriter once its limit is reached.
var ErrShortWrite = errors.New("testutil: write limit reached")

// VendorFrame returns a 39 byte capture header. It lists Flags, Rate,
// Channel, AntennaSignal, Antenna and RxFlags, then a vendor namespace
// skipping two bytes, then a restarted radiotap namespace with a second Rate.
// The second Rate is 2 Mb/s, the first 1 Mb/s.
func VendorFrame() []byte {
	return []byte{
		0, 0, 39, 0,              // version, pad, length
		46, 72, 0, 192,           // bits 1,2,3,5,11,14 + vendor namespace + extended
		0, 0, 0, 128,             // vendor namespace word, extended
		0, 0, 0, 160,             // back to radiotap namespace, extended
		4, 0, 0, 0,               // bit 2
		16,                       // flags: FCS
		2,                        // rate: 1 Mb/s
		158, 9, 160, 0,           // channel 2462 MHz, CCK | 2 GHz
		227,                      // antenna signal -29 dBm
		5,                        // antenna
		0, 0,                     // rx flags
		255, 255, 255, 255, 2, 0, // vendor descriptor, skip 2
		222, 173,                 // vendor payload
		4,                        // rate: 2 Mb/s
	}
}

// WithByte returns a copy of frame with frame[i] set to v.
func WithByte(frame []byte, i int, v byte) []byte {
	out := append([]byte(nil), frame...)
	out[i] = v
	return out
}

// MustDecodeHex decodes s or fails the test.
func MustDecodeHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex fixture %q: %v", s, err)
	}
	return b
}

// FailingWriter accepts Limit bytes and then fails with ErrShortWrite.
type FailingWriter struct {
	Limit   int
	Written int
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	room := w.Limit - w.Written
	if room >= len(p) {
		w.Written += len(p)
		return len(p), nil
	}
	if room < 0 {
		room = 0
	}
	w.Written += room
	return room, ErrShortWrite
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
