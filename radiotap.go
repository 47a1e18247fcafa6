package radiotap

import (
	"bytes"
	"fmt"
	"io"

	"github.com/banshee-data/radiotap/field"
)

// Radiotap is a decoded capture header. Each typed kind has an optional slot;
// a slot is set exactly when its kind is listed in Header.Present. Kinds
// without a slot, such as vendor namespaces, are listed but not kept.
type Radiotap struct {
	Header field.Header

	TSFT            *field.TSFT
	Flags           *field.Flags
	Rate            *field.Rate
	Channel         *field.Channel
	FHSS            *field.FHSS
	AntennaSignal   *field.AntennaSignal
	AntennaNoise    *field.AntennaNoise
	LockQuality     *field.LockQuality
	TxAttenuation   *field.TxAttenuation
	TxAttenuationDB *field.TxAttenuationDB
	TxPower         *field.TxPower
	Antenna         *field.Antenna
	AntennaSignalDB *field.AntennaSignalDB
	AntennaNoiseDB  *field.AntennaNoiseDB
	RxFlags         *field.RxFlags
	TxFlags         *field.TxFlags
	RTSRetries      *field.RTSRetries
	DataRetries     *field.DataRetries
	XChannel        *field.XChannel
	MCS             *field.MCS
	AMPDUStatus     *field.AMPDUStatus
	VHT             *field.VHT
	Timestamp       *field.Timestamp
}

// FromBytes decodes the capture header at the start of input.
func FromBytes(input []byte) (Radiotap, error) {
	r, _, err := Parse(input)
	return r, err
}

// Parse decodes the capture header at the start of input and returns the
// bytes that follow it. Nothing is returned on error.
func Parse(input []byte) (Radiotap, []byte, error) {
	it, rest, err := NewIterator(input)
	if err != nil {
		return Radiotap{}, nil, err
	}

	r := Radiotap{Header: it.Header()}
	fields := it.Fields()
	for fields.Next() {
		f := fields.Field()
		if err := r.decode(f.Kind, f.Data); err != nil {
			return Radiotap{}, nil, err
		}
	}
	if err := fields.Err(); err != nil {
		return Radiotap{}, nil, err
	}
	return r, rest, nil
}

// decode stores data in the slot for k. A later occurrence of a kind replaces
// an earlier one.
func (r *Radiotap) decode(k field.Kind, data []byte) error {
	var err error
	switch k {
	case field.KindTSFT:
		r.TSFT, err = decodeValue[field.TSFT](data)
	case field.KindFlags:
		r.Flags, err = decodeValue[field.Flags](data)
	case field.KindRate:
		r.Rate, err = decodeValue[field.Rate](data)
	case field.KindChannel:
		r.Channel, err = decodeValue[field.Channel](data)
	case field.KindFHSS:
		r.FHSS, err = decodeValue[field.FHSS](data)
	case field.KindAntennaSignal:
		r.AntennaSignal, err = decodeValue[field.AntennaSignal](data)
	case field.KindAntennaNoise:
		r.AntennaNoise, err = decodeValue[field.AntennaNoise](data)
	case field.KindLockQuality:
		r.LockQuality, err = decodeValue[field.LockQuality](data)
	case field.KindTxAttenuation:
		r.TxAttenuation, err = decodeValue[field.TxAttenuation](data)
	case field.KindTxAttenuationDB:
		r.TxAttenuationDB, err = decodeValue[field.TxAttenuationDB](data)
	case field.KindTxPower:
		r.TxPower, err = decodeValue[field.TxPower](data)
	case field.KindAntenna:
		r.Antenna, err = decodeValue[field.Antenna](data)
	case field.KindAntennaSignalDB:
		r.AntennaSignalDB, err = decodeValue[field.AntennaSignalDB](data)
	case field.KindAntennaNoiseDB:
		r.AntennaNoiseDB, err = decodeValue[field.AntennaNoiseDB](data)
	case field.KindRxFlags:
		r.RxFlags, err = decodeValue[field.RxFlags](data)
	case field.KindTxFlags:
		r.TxFlags, err = decodeValue[field.TxFlags](data)
	case field.KindRTSRetries:
		r.RTSRetries, err = decodeValue[field.RTSRetries](data)
	case field.KindDataRetries:
		r.DataRetries, err = decodeValue[field.DataRetries](data)
	case field.KindXChannel:
		r.XChannel, err = decodeValue[field.XChannel](data)
	case field.KindMCS:
		r.MCS, err = decodeValue[field.MCS](data)
	case field.KindAMPDUStatus:
		r.AMPDUStatus, err = decodeValue[field.AMPDUStatus](data)
	case field.KindVHT:
		r.VHT, err = decodeValue[field.VHT](data)
	case field.KindTimestamp:
		r.Timestamp, err = decodeValue[field.Timestamp](data)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", k, err)
	}
	return nil
}

func decodeValue[T any, P interface {
	*T
	field.Decoder
}](data []byte) (*T, error) {
	v := new(T)
	if err := P(v).UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return v, nil
}

// Value returns the stored value for k, or nil if k has no slot or the slot
// is empty.
func (r Radiotap) Value(k field.Kind) field.Value {
	switch k {
	case field.KindTSFT:
		return stored(r.TSFT)
	case field.KindFlags:
		return stored(r.Flags)
	case field.KindRate:
		return stored(r.Rate)
	case field.KindChannel:
		return stored(r.Channel)
	case field.KindFHSS:
		return stored(r.FHSS)
	case field.KindAntennaSignal:
		return stored(r.AntennaSignal)
	case field.KindAntennaNoise:
		return stored(r.AntennaNoise)
	case field.KindLockQuality:
		return stored(r.LockQuality)
	case field.KindTxAttenuation:
		return stored(r.TxAttenuation)
	case field.KindTxAttenuationDB:
		return stored(r.TxAttenuationDB)
	case field.KindTxPower:
		return stored(r.TxPower)
	case field.KindAntenna:
		return stored(r.Antenna)
	case field.KindAntennaSignalDB:
		return stored(r.AntennaSignalDB)
	case field.KindAntennaNoiseDB:
		return stored(r.AntennaNoiseDB)
	case field.KindRxFlags:
		return stored(r.RxFlags)
	case field.KindTxFlags:
		return stored(r.TxFlags)
	case field.KindRTSRetries:
		return stored(r.RTSRetries)
	case field.KindDataRetries:
		return stored(r.DataRetries)
	case field.KindXChannel:
		return stored(r.XChannel)
	case field.KindMCS:
		return stored(r.MCS)
	case field.KindAMPDUStatus:
		return stored(r.AMPDUStatus)
	case field.KindVHT:
		return stored(r.VHT)
	case field.KindTimestamp:
		return stored(r.Timestamp)
	}
	return nil
}

func stored[T field.Value](p *T) field.Value {
	if p == nil {
		return nil
	}
	return *p
}

// set stores v in its slot. It reports false if v has no slot.
func (r *Radiotap) set(v field.Value) bool {
	switch v := v.(type) {
	case field.TSFT:
		r.TSFT = &v
	case field.Flags:
		r.Flags = &v
	case field.Rate:
		r.Rate = &v
	case field.Channel:
		r.Channel = &v
	case field.FHSS:
		r.FHSS = &v
	case field.AntennaSignal:
		r.AntennaSignal = &v
	case field.AntennaNoise:
		r.AntennaNoise = &v
	case field.LockQuality:
		r.LockQuality = &v
	case field.TxAttenuation:
		r.TxAttenuation = &v
	case field.TxAttenuationDB:
		r.TxAttenuationDB = &v
	case field.TxPower:
		r.TxPower = &v
	case field.Antenna:
		r.Antenna = &v
	case field.AntennaSignalDB:
		r.AntennaSignalDB = &v
	case field.AntennaNoiseDB:
		r.AntennaNoiseDB = &v
	case field.RxFlags:
		r.RxFlags = &v
	case field.TxFlags:
		r.TxFlags = &v
	case field.RTSRetries:
		r.RTSRetries = &v
	case field.DataRetries:
		r.DataRetries = &v
	case field.XChannel:
		r.XChannel = &v
	case field.MCS:
		r.MCS = &v
	case field.AMPDUStatus:
		r.AMPDUStatus = &v
	case field.VHT:
		r.VHT = &v
	case field.Timestamp:
		r.Timestamp = &v
	default:
		return false
	}
	return true
}

var zeroPad [8]byte

// Unparse writes the header and every present field to w, zero padding each
// field to its alignment. It returns the number of bytes written, which
// equals Header.Length for values produced by Build or Parse without vendor
// namespaces. Present kinds with no stored value contribute only padding.
func (r Radiotap) Unparse(w io.Writer) (int, error) {
	buf, err := r.Header.AppendBinary(make([]byte, 0, 64))
	if err != nil {
		return 0, fmt.Errorf("encode header: %w", err)
	}
	size, err := w.Write(buf)
	if err != nil {
		return size, fmt.Errorf("write header: %w", err)
	}

	for _, k := range r.Header.Present {
		if pad := padding(size, k.Align()); pad > 0 {
			n, err := w.Write(zeroPad[:pad])
			size += n
			if err != nil {
				return size, fmt.Errorf("write padding before %s: %w", k, err)
			}
		}

		v := r.Value(k)
		if v == nil {
			continue
		}
		buf, err = v.AppendBinary(buf[:0])
		if err != nil {
			return size, fmt.Errorf("encode %s: %w", k, err)
		}
		n, err := w.Write(buf)
		size += n
		if err != nil {
			return size, fmt.Errorf("write %s: %w", k, err)
		}
	}
	return size, nil
}

// Bytes returns the encoded capture header.
func (r Radiotap) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(r.Header.Length)
	if _, err := r.Unparse(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
