package field

import (
	"encoding/binary"
	"fmt"
	"math"
)

// TSFT is the MAC timer value in microseconds when the first bit of the MPDU
// arrived.
type TSFT uint64

func (TSFT) Kind() Kind { return KindTSFT }

func (t *TSFT) UnmarshalBinary(data []byte) error {
	if err := checkSize(KindTSFT, data); err != nil {
		return err
	}
	*t = TSFT(binary.LittleEndian.Uint64(data))
	return nil
}

func (t TSFT) AppendBinary(b []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint64(b, uint64(t)), nil
}

// Flags are the frame properties carried in the Flags field.
type Flags uint8

const (
	FlagCFP           Flags = 0x01 // sent during CFP
	FlagShortPreamble Flags = 0x02
	FlagWEP           Flags = 0x04
	FlagFragmentation Flags = 0x08
	FlagFCS           Flags = 0x10 // frame includes FCS
	FlagDataPad       Flags = 0x20 // padding between 802.11 header and payload
	FlagBadFCS        Flags = 0x40
	FlagShortGI       Flags = 0x80
)

// Has reports whether every bit of f is set.
func (fl Flags) Has(f Flags) bool { return fl&f == f }

func (Flags) Kind() Kind { return KindFlags }

func (fl *Flags) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindFlags, data)
	*fl = Flags(v)
	return err
}

func (fl Flags) AppendBinary(b []byte) ([]byte, error) { return append(b, uint8(fl)), nil }

// Rate is the legacy TX/RX data rate in Mb/s. It is carried in 500 kb/s units,
// so only multiples of 0.5 up to 127.5 can be encoded.
type Rate float64

func (Rate) Kind() Kind { return KindRate }

func (r *Rate) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindRate, data)
	if err != nil {
		return err
	}
	*r = Rate(float64(v) / 2)
	return nil
}

func (r Rate) AppendBinary(b []byte) ([]byte, error) {
	units := float64(r) * 2
	if units < 0 || units > math.MaxUint8 || units != math.Trunc(units) {
		return b, fmt.Errorf("rate %v Mb/s is not a multiple of 500 kb/s: %w", float64(r), ErrInvalidFormat)
	}
	return append(b, uint8(units)), nil
}

// ChannelFlags describe the channel the frame was sent or received on.
type ChannelFlags uint16

const (
	ChannelTurbo   ChannelFlags = 0x0010
	ChannelCCK     ChannelFlags = 0x0020
	ChannelOFDM    ChannelFlags = 0x0040
	Channel2GHz    ChannelFlags = 0x0080
	Channel5GHz    ChannelFlags = 0x0100
	ChannelPassive ChannelFlags = 0x0200 // only passive scan allowed
	ChannelDynamic ChannelFlags = 0x0400 // dynamic CCK-OFDM
	ChannelGFSK    ChannelFlags = 0x0800
)

// Channel is the frequency in MHz and channel flags.
type Channel struct {
	Freq  uint16
	Flags ChannelFlags
}

func (Channel) Kind() Kind { return KindChannel }

func (c *Channel) UnmarshalBinary(data []byte) error {
	if err := checkSize(KindChannel, data); err != nil {
		return err
	}
	c.Freq = binary.LittleEndian.Uint16(data[0:2])
	c.Flags = ChannelFlags(binary.LittleEndian.Uint16(data[2:4]))
	return nil
}

func (c Channel) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint16(b, c.Freq)
	return binary.LittleEndian.AppendUint16(b, uint16(c.Flags)), nil
}

// Number returns the IEEE channel number for Freq, or 0 if it is outside the
// 2.4, 5 and 6 GHz bands.
func (c Channel) Number() int {
	return ChannelNumber(c.Freq)
}

// ChannelNumber maps a centre frequency in MHz to its IEEE channel number.
func ChannelNumber(freq uint16) int {
	f := int(freq)
	switch {
	case f == 2484:
		return 14
	case f >= 2412 && f < 2484:
		return (f - 2407) / 5
	case f >= 5955 && f <= 7115:
		return (f - 5950) / 5
	case f >= 5000 && f < 5950:
		return (f - 5000) / 5
	}
	return 0
}

// FHSS is the hop set and pattern of a frequency-hopping radio.
type FHSS struct {
	HopSet  uint8
	Pattern uint8
}

func (FHSS) Kind() Kind { return KindFHSS }

func (f *FHSS) UnmarshalBinary(data []byte) error {
	if err := checkSize(KindFHSS, data); err != nil {
		return err
	}
	f.HopSet, f.Pattern = data[0], data[1]
	return nil
}

func (f FHSS) AppendBinary(b []byte) ([]byte, error) { return append(b, f.HopSet, f.Pattern), nil }

// AntennaSignal is the RF signal power at the antenna in dBm.
type AntennaSignal int8

func (AntennaSignal) Kind() Kind { return KindAntennaSignal }

func (s *AntennaSignal) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindAntennaSignal, data)
	*s = AntennaSignal(int8(v))
	return err
}

func (s AntennaSignal) AppendBinary(b []byte) ([]byte, error) { return append(b, uint8(s)), nil }

// AntennaNoise is the RF noise power at the antenna in dBm.
type AntennaNoise int8

func (AntennaNoise) Kind() Kind { return KindAntennaNoise }

func (n *AntennaNoise) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindAntennaNoise, data)
	*n = AntennaNoise(int8(v))
	return err
}

func (n AntennaNoise) AppendBinary(b []byte) ([]byte, error) { return append(b, uint8(n)), nil }

// LockQuality is the Barker code lock quality. Larger is better.
type LockQuality uint16

func (LockQuality) Kind() Kind { return KindLockQuality }

func (q *LockQuality) UnmarshalBinary(data []byte) error {
	v, err := decodeU16(KindLockQuality, data)
	*q = LockQuality(v)
	return err
}

func (q LockQuality) AppendBinary(b []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint16(b, uint16(q)), nil
}

// TxAttenuation is the transmit power as unitless distance from max power.
type TxAttenuation uint16

func (TxAttenuation) Kind() Kind { return KindTxAttenuation }

func (a *TxAttenuation) UnmarshalBinary(data []byte) error {
	v, err := decodeU16(KindTxAttenuation, data)
	*a = TxAttenuation(v)
	return err
}

func (a TxAttenuation) AppendBinary(b []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint16(b, uint16(a)), nil
}

// TxAttenuationDB is the transmit power as dB distance from max power.
type TxAttenuationDB uint16

func (TxAttenuationDB) Kind() Kind { return KindTxAttenuationDB }

func (a *TxAttenuationDB) UnmarshalBinary(data []byte) error {
	v, err := decodeU16(KindTxAttenuationDB, data)
	*a = TxAttenuationDB(v)
	return err
}

func (a TxAttenuationDB) AppendBinary(b []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint16(b, uint16(a)), nil
}

// TxPower is the transmit power in dBm.
type TxPower int8

func (TxPower) Kind() Kind { return KindTxPower }

func (p *TxPower) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindTxPower, data)
	*p = TxPower(int8(v))
	return err
}

func (p TxPower) AppendBinary(b []byte) ([]byte, error) { return append(b, uint8(p)), nil }

// Antenna is the index of the antenna used.
type Antenna uint8

func (Antenna) Kind() Kind { return KindAntenna }

func (a *Antenna) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindAntenna, data)
	*a = Antenna(v)
	return err
}

func (a Antenna) AppendBinary(b []byte) ([]byte, error) { return append(b, uint8(a)), nil }

// AntennaSignalDB is the signal power in dB from an arbitrary reference.
type AntennaSignalDB uint8

func (AntennaSignalDB) Kind() Kind { return KindAntennaSignalDB }

func (s *AntennaSignalDB) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindAntennaSignalDB, data)
	*s = AntennaSignalDB(v)
	return err
}

func (s AntennaSignalDB) AppendBinary(b []byte) ([]byte, error) { return append(b, uint8(s)), nil }

// AntennaNoiseDB is the noise power in dB from an arbitrary reference.
type AntennaNoiseDB uint8

func (AntennaNoiseDB) Kind() Kind { return KindAntennaNoiseDB }

func (n *AntennaNoiseDB) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindAntennaNoiseDB, data)
	*n = AntennaNoiseDB(v)
	return err
}

func (n AntennaNoiseDB) AppendBinary(b []byte) ([]byte, error) { return append(b, uint8(n)), nil }

// RxFlags are properties of received frames.
type RxFlags uint16

const RxFlagBadPLCP RxFlags = 0x0002

func (RxFlags) Kind() Kind { return KindRxFlags }

func (f *RxFlags) UnmarshalBinary(data []byte) error {
	v, err := decodeU16(KindRxFlags, data)
	*f = RxFlags(v)
	return err
}

func (f RxFlags) AppendBinary(b []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint16(b, uint16(f)), nil
}

// TxFlags are properties of transmitted frames.
type TxFlags uint16

const (
	TxFlagFail  TxFlags = 0x0001 // excessive retries
	TxFlagCTS   TxFlags = 0x0002 // used CTS-to-self protection
	TxFlagRTS   TxFlags = 0x0004 // used RTS/CTS handshake
	TxFlagNoAck TxFlags = 0x0008 // don't expect an ACK
	TxFlagNoSeq TxFlags = 0x0010 // sequence number pre-configured
	TxFlagOrder TxFlags = 0x0020 // don't reorder
)

// Has reports whether every bit of f is set.
func (t TxFlags) Has(f TxFlags) bool { return t&f == f }

func (TxFlags) Kind() Kind { return KindTxFlags }

func (t *TxFlags) UnmarshalBinary(data []byte) error {
	v, err := decodeU16(KindTxFlags, data)
	*t = TxFlags(v)
	return err
}

func (t TxFlags) AppendBinary(b []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint16(b, uint16(t)), nil
}

// RTSRetries is the number of RTS retries a transmitted frame used.
type RTSRetries uint8

func (RTSRetries) Kind() Kind { return KindRTSRetries }

func (r *RTSRetries) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindRTSRetries, data)
	*r = RTSRetries(v)
	return err
}

func (r RTSRetries) AppendBinary(b []byte) ([]byte, error) { return append(b, uint8(r)), nil }

// DataRetries is the number of data retries a transmitted frame used.
type DataRetries uint8

func (DataRetries) Kind() Kind { return KindDataRetries }

func (r *DataRetries) UnmarshalBinary(data []byte) error {
	v, err := decodeU8(KindDataRetries, data)
	*r = DataRetries(v)
	return err
}

func (r DataRetries) AppendBinary(b []byte) ([]byte, error) { return append(b, uint8(r)), nil }

// XChannelFlags extend ChannelFlags with HT and half/quarter rate channels.
type XChannelFlags uint32

const (
	XChannelTurbo    XChannelFlags = 0x00000010
	XChannelCCK      XChannelFlags = 0x00000020
	XChannelOFDM     XChannelFlags = 0x00000040
	XChannel2GHz     XChannelFlags = 0x00000080
	XChannel5GHz     XChannelFlags = 0x00000100
	XChannelPassive  XChannelFlags = 0x00000200
	XChannelDynamic  XChannelFlags = 0x00000400
	XChannelGFSK     XChannelFlags = 0x00000800
	XChannelGSM      XChannelFlags = 0x00001000
	XChannelSTurbo   XChannelFlags = 0x00002000
	XChannelHalf     XChannelFlags = 0x00004000
	XChannelQuarter  XChannelFlags = 0x00008000
	XChannelHT20     XChannelFlags = 0x00010000
	XChannelHT40Up   XChannelFlags = 0x00020000
	XChannelHT40Down XChannelFlags = 0x00040000
)

// XChannel is the extended channel field.
type XChannel struct {
	Flags    XChannelFlags
	Freq     uint16
	Channel  uint8
	MaxPower uint8
}

func (XChannel) Kind() Kind { return KindXChannel }

func (x *XChannel) UnmarshalBinary(data []byte) error {
	if err := checkSize(KindXChannel, data); err != nil {
		return err
	}
	x.Flags = XChannelFlags(binary.LittleEndian.Uint32(data[0:4]))
	x.Freq = binary.LittleEndian.Uint16(data[4:6])
	x.Channel = data[6]
	x.MaxPower = data[7]
	return nil
}

func (x XChannel) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint32(b, uint32(x.Flags))
	b = binary.LittleEndian.AppendUint16(b, x.Freq)
	return append(b, x.Channel, x.MaxPower), nil
}
