package field

import "encoding/binary"

// VHTKnown marks which VHT values are valid.
type VHTKnown uint16

const (
	VHTKnownSTBC            VHTKnown = 0x0001
	VHTKnownTXOPPS          VHTKnown = 0x0002
	VHTKnownGI              VHTKnown = 0x0004
	VHTKnownSGINsymDisambig VHTKnown = 0x0008
	VHTKnownLDPCExtra       VHTKnown = 0x0010
	VHTKnownBeamformed      VHTKnown = 0x0020
	VHTKnownBandwidth       VHTKnown = 0x0040
	VHTKnownGroupID         VHTKnown = 0x0080
	VHTKnownPartialAID      VHTKnown = 0x0100
)

// VHTFlags holds the single-bit VHT values.
type VHTFlags uint8

const (
	VHTFlagSTBC             VHTFlags = 0x01
	VHTFlagTXOPPSNotAllowed VHTFlags = 0x02
	VHTFlagShortGI          VHTFlags = 0x04
	VHTFlagSGINsymDisambig  VHTFlags = 0x08
	VHTFlagLDPCExtra        VHTFlags = 0x10
	VHTFlagBeamformed       VHTFlags = 0x20
)

// VHT describes an 802.11ac transmission for up to four users.
type VHT struct {
	Known      VHTKnown
	Flags      VHTFlags
	Bandwidth  uint8    // bandwidth code 0-25
	MCSNSS     [4]uint8 // per user: MCS in the high nibble, NSS in the low
	Coding     uint8    // per user bit: 1 = LDPC
	GroupID    uint8
	PartialAID uint16
}

// VHTUser is one populated user of a VHT field.
type VHTUser struct {
	Index    int
	MCS      uint8
	NSS      uint8
	FEC      FEC
	DataRate float64 // Mb/s, 0 when bandwidth or MCS is out of range
}

func (VHT) Kind() Kind { return KindVHT }

func (v *VHT) UnmarshalBinary(data []byte) error {
	if err := checkSize(KindVHT, data); err != nil {
		return err
	}
	v.Known = VHTKnown(binary.LittleEndian.Uint16(data[0:2]))
	v.Flags = VHTFlags(data[2])
	v.Bandwidth = data[3]
	copy(v.MCSNSS[:], data[4:8])
	v.Coding = data[8]
	v.GroupID = data[9]
	v.PartialAID = binary.LittleEndian.Uint16(data[10:12])
	return nil
}

func (v VHT) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint16(b, uint16(v.Known))
	b = append(b, uint8(v.Flags), v.Bandwidth)
	b = append(b, v.MCSNSS[:]...)
	b = append(b, v.Coding, v.GroupID)
	return binary.LittleEndian.AppendUint16(b, v.PartialAID), nil
}

// BandwidthMHz returns the channel width for the bandwidth code, or 0 if the
// bandwidth is unknown or the code is undefined.
func (v VHT) BandwidthMHz() int {
	if v.Known&VHTKnownBandwidth == 0 {
		return 0
	}
	switch c := v.Bandwidth; {
	case c == 0:
		return 20
	case c <= 3:
		return 40
	case c <= 10:
		return 80
	case c <= 25:
		return 160
	}
	return 0
}

// Users returns the users with a non-zero NSS.
func (v VHT) Users() []VHTUser {
	var users []VHTUser
	mhz := v.BandwidthMHz()
	sgi := v.Known&VHTKnownGI != 0 && v.Flags&VHTFlagShortGI != 0
	for i, mn := range v.MCSNSS {
		nss := mn & 0x0f
		if nss == 0 {
			continue
		}
		u := VHTUser{
			Index: i,
			MCS:   mn >> 4,
			NSS:   nss,
			FEC:   FEC((v.Coding >> i) & 1),
		}
		if mhz != 0 && u.MCS <= 9 {
			u.DataRate = htRate(mhz, u.MCS) * float64(nss)
			if sgi {
				u.DataRate = u.DataRate * 10 / 9
			}
		}
		users = append(users, u)
	}
	return users
}
