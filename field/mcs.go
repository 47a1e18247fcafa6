package field

// GuardInterval is the OFDM guard interval.
type GuardInterval uint8

const (
	GuardIntervalLong GuardInterval = iota
	GuardIntervalShort
)

func (g GuardInterval) String() string {
	if g == GuardIntervalShort {
		return "short"
	}
	return "long"
}

// FEC is the forward error correction coding.
type FEC uint8

const (
	FECBCC FEC = iota
	FECLDPC
)

func (f FEC) String() string {
	if f == FECLDPC {
		return "LDPC"
	}
	return "BCC"
}

// HTFormat is the HT PPDU format.
type HTFormat uint8

const (
	HTFormatMixed HTFormat = iota
	HTFormatGreenfield
)

// HTBandwidth is the bandwidth code of the MCS field.
type HTBandwidth uint8

const (
	HTBandwidth20      HTBandwidth = 0
	HTBandwidth40      HTBandwidth = 1
	HTBandwidth20Lower HTBandwidth = 2 // 20 MHz in the lower half of a 40 MHz channel
	HTBandwidth20Upper HTBandwidth = 3
)

// MHz returns the channel width used for data rate calculations.
func (b HTBandwidth) MHz() int {
	if b == HTBandwidth40 {
		return 40
	}
	return 20
}

// MCSKnown marks which parts of the MCS field carry information.
type MCSKnown uint8

const (
	MCSKnownBandwidth MCSKnown = 0x01
	MCSKnownIndex     MCSKnown = 0x02
	MCSKnownGI        MCSKnown = 0x04
	MCSKnownFormat    MCSKnown = 0x08
	MCSKnownFEC       MCSKnown = 0x10
	MCSKnownSTBC      MCSKnown = 0x20
	MCSKnownNess      MCSKnown = 0x40
	MCSNessBit1       MCSKnown = 0x80 // bit 1 of the Ness value, not a known flag
)

// MCSFlags holds the values that MCSKnown qualifies.
type MCSFlags uint8

const (
	MCSFlagBandwidthMask MCSFlags = 0x03
	MCSFlagShortGI       MCSFlags = 0x04
	MCSFlagGreenfield    MCSFlags = 0x08
	MCSFlagLDPC          MCSFlags = 0x10
	MCSFlagSTBCMask      MCSFlags = 0x60
	MCSFlagNessBit0      MCSFlags = 0x80

	mcsSTBCShift = 5
)

// MCS describes an 802.11n transmission.
type MCS struct {
	Known MCSKnown
	Flags MCSFlags
	Index uint8
}

func (MCS) Kind() Kind { return KindMCS }

func (m *MCS) UnmarshalBinary(data []byte) error {
	if err := checkSize(KindMCS, data); err != nil {
		return err
	}
	m.Known, m.Flags, m.Index = MCSKnown(data[0]), MCSFlags(data[1]), data[2]
	return nil
}

func (m MCS) AppendBinary(b []byte) ([]byte, error) {
	return append(b, uint8(m.Known), uint8(m.Flags), m.Index), nil
}

func (m MCS) known(k MCSKnown) bool { return m.Known&k != 0 }

// Bandwidth returns the bandwidth code if known.
func (m MCS) Bandwidth() (HTBandwidth, bool) {
	return HTBandwidth(m.Flags & MCSFlagBandwidthMask), m.known(MCSKnownBandwidth)
}

// GuardInterval returns the guard interval if known.
func (m MCS) GuardInterval() (GuardInterval, bool) {
	if m.Flags&MCSFlagShortGI != 0 {
		return GuardIntervalShort, m.known(MCSKnownGI)
	}
	return GuardIntervalLong, m.known(MCSKnownGI)
}

// HTFormat returns the PPDU format if known.
func (m MCS) HTFormat() (HTFormat, bool) {
	if m.Flags&MCSFlagGreenfield != 0 {
		return HTFormatGreenfield, m.known(MCSKnownFormat)
	}
	return HTFormatMixed, m.known(MCSKnownFormat)
}

// FEC returns the coding if known.
func (m MCS) FEC() (FEC, bool) {
	if m.Flags&MCSFlagLDPC != 0 {
		return FECLDPC, m.known(MCSKnownFEC)
	}
	return FECBCC, m.known(MCSKnownFEC)
}

// STBC returns the number of space-time streams if known.
func (m MCS) STBC() (uint8, bool) {
	return uint8(m.Flags&MCSFlagSTBCMask) >> mcsSTBCShift, m.known(MCSKnownSTBC)
}

// Ness returns the number of extension spatial streams if known.
func (m MCS) Ness() (uint8, bool) {
	var n uint8
	if m.Flags&MCSFlagNessBit0 != 0 {
		n |= 1
	}
	if m.Known&MCSNessBit1 != 0 {
		n |= 2
	}
	return n, m.known(MCSKnownNess)
}

// DataRate returns the PHY rate in Mb/s. The index must be known; unknown
// bandwidth and guard interval default to 20 MHz and long GI.
func (m MCS) DataRate() (float64, bool) {
	if !m.known(MCSKnownIndex) || m.Index > 31 {
		return 0, false
	}
	bw, _ := m.Bandwidth()
	gi, _ := m.GuardInterval()
	streams := float64(m.Index/8 + 1)
	rate := htRate(bw.MHz(), m.Index%8) * streams
	if gi == GuardIntervalShort {
		rate = rate * 10 / 9
	}
	return rate, true
}

// Per-stream long-GI rates in Mb/s for MCS 0-7 (HT) and 0-9 (VHT).
var (
	rates20  = [...]float64{6.5, 13, 19.5, 26, 39, 52, 58.5, 65, 78, 86.7}
	rates40  = [...]float64{13.5, 27, 40.5, 54, 81, 108, 121.5, 135, 162, 180}
	rates80  = [...]float64{29.3, 58.5, 87.8, 117, 175.5, 234, 263.3, 292.5, 351, 390}
	rates160 = [...]float64{58.5, 117, 175.5, 234, 351, 468, 526.5, 585, 702, 780}
)

func htRate(mhz int, mcs uint8) float64 {
	switch mhz {
	case 40:
		return rates40[mcs]
	case 80:
		return rates80[mcs]
	case 160:
		return rates160[mcs]
	}
	return rates20[mcs]
}
