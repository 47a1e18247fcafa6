package field

import (
	"encoding/binary"
	"fmt"
	"time"
)

// TimeUnit is the resolution of a Timestamp.
type TimeUnit uint8

const (
	Milliseconds TimeUnit = 0
	Microseconds TimeUnit = 1
	Nanoseconds  TimeUnit = 2
)

func (u TimeUnit) valid() bool { return u <= Nanoseconds }

// Duration returns one unit as a time.Duration.
func (u TimeUnit) Duration() time.Duration {
	switch u {
	case Milliseconds:
		return time.Millisecond
	case Microseconds:
		return time.Microsecond
	}
	return time.Nanosecond
}

// SamplingPosition is the point in the frame the timestamp was taken at.
type SamplingPosition uint8

const (
	StartMPDU         SamplingPosition = 0 // first bit of the MPDU
	SignalAcquisition SamplingPosition = 1 // first bit of the PLCP
	EndPPDU           SamplingPosition = 2
	EndMPDU           SamplingPosition = 3
	UnknownPosition   SamplingPosition = 15
)

func (p SamplingPosition) valid() bool { return p <= EndMPDU || p == UnknownPosition }

// TimestampFlags qualify a Timestamp.
type TimestampFlags uint8

const (
	Timestamp32Bit         TimestampFlags = 0x01 // only the low 32 bits are valid
	TimestampAccuracyKnown TimestampFlags = 0x02
)

// Timestamp is a high-resolution time the frame was sampled at.
type Timestamp struct {
	Timestamp uint64
	Accuracy  uint16 // in Unit, valid with TimestampAccuracyKnown
	Unit      TimeUnit
	Position  SamplingPosition
	Flags     TimestampFlags
}

func (Timestamp) Kind() Kind { return KindTimestamp }

func (t *Timestamp) UnmarshalBinary(data []byte) error {
	if err := checkSize(KindTimestamp, data); err != nil {
		return err
	}
	unit := TimeUnit(data[10] & 0x0f)
	pos := SamplingPosition(data[10] >> 4)
	if !unit.valid() {
		return fmt.Errorf("timestamp unit %d: %w", unit, ErrInvalidFormat)
	}
	if !pos.valid() {
		return fmt.Errorf("timestamp sampling position %d: %w", pos, ErrInvalidFormat)
	}
	t.Timestamp = binary.LittleEndian.Uint64(data[0:8])
	t.Accuracy = binary.LittleEndian.Uint16(data[8:10])
	t.Unit = unit
	t.Position = pos
	t.Flags = TimestampFlags(data[11])
	return nil
}

func (t Timestamp) AppendBinary(b []byte) ([]byte, error) {
	if !t.Unit.valid() {
		return b, fmt.Errorf("timestamp unit %d: %w", t.Unit, ErrInvalidFormat)
	}
	if !t.Position.valid() {
		return b, fmt.Errorf("timestamp sampling position %d: %w", t.Position, ErrInvalidFormat)
	}
	b = binary.LittleEndian.AppendUint64(b, t.Timestamp)
	b = binary.LittleEndian.AppendUint16(b, t.Accuracy)
	return append(b, uint8(t.Position)<<4|uint8(t.Unit), uint8(t.Flags)), nil
}

// Duration converts the timestamp to a time.Duration.
func (t Timestamp) Duration() time.Duration {
	v := t.Timestamp
	if t.Flags&Timestamp32Bit != 0 {
		v &= 0xffffffff
	}
	return time.Duration(v) * t.Unit.Duration()
}

// AccuracyDuration returns the accuracy if known.
func (t Timestamp) AccuracyDuration() (time.Duration, bool) {
	return time.Duration(t.Accuracy) * t.Unit.Duration(), t.Flags&TimestampAccuracyKnown != 0
}
