package field

import "encoding/binary"

// AMPDUFlags describe the A-MPDU a frame was part of.
type AMPDUFlags uint16

const (
	AMPDUReportZeroLength AMPDUFlags = 0x0001 // driver reports 0-length subframes
	AMPDUIsZeroLength     AMPDUFlags = 0x0002
	AMPDULastKnown        AMPDUFlags = 0x0004
	AMPDUIsLast           AMPDUFlags = 0x0008
	AMPDUDelimCRCError    AMPDUFlags = 0x0010
	AMPDUDelimCRCKnown    AMPDUFlags = 0x0020
	AMPDUEOFValue         AMPDUFlags = 0x0040
	AMPDUEOFKnown         AMPDUFlags = 0x0080
)

// AMPDUStatus ties subframes of one A-MPDU together by Reference.
type AMPDUStatus struct {
	Reference    uint32
	Flags        AMPDUFlags
	DelimiterCRC uint8
	Reserved     uint8
}

func (AMPDUStatus) Kind() Kind { return KindAMPDUStatus }

func (a *AMPDUStatus) UnmarshalBinary(data []byte) error {
	if err := checkSize(KindAMPDUStatus, data); err != nil {
		return err
	}
	a.Reference = binary.LittleEndian.Uint32(data[0:4])
	a.Flags = AMPDUFlags(binary.LittleEndian.Uint16(data[4:6]))
	a.DelimiterCRC = data[6]
	a.Reserved = data[7]
	return nil
}

func (a AMPDUStatus) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint32(b, a.Reference)
	b = binary.LittleEndian.AppendUint16(b, uint16(a.Flags))
	return append(b, a.DelimiterCRC, a.Reserved), nil
}

// ZeroLength reports whether this is a 0-length subframe, if the driver
// reports them.
func (a AMPDUStatus) ZeroLength() (zero, known bool) {
	return a.Flags&AMPDUIsZeroLength != 0, a.Flags&AMPDUReportZeroLength != 0
}

// Last reports whether this is the last subframe, if known.
func (a AMPDUStatus) Last() (last, known bool) {
	return a.Flags&AMPDUIsLast != 0, a.Flags&AMPDULastKnown != 0
}

// DelimiterCRCValue returns the delimiter CRC, if known.
func (a AMPDUStatus) DelimiterCRCValue() (uint8, bool) {
	return a.DelimiterCRC, a.Flags&AMPDUDelimCRCKnown != 0
}
