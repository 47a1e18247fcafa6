package field

import (
	"fmt"
	"strings"
)

// Kind identifies a radiotap field by its bit in the presence bitmap. The bit
// defines both the order fields appear in and which alignment group they use.
type Kind uint8

// Radiotap namespace kinds. The values are the presence bitmap bit indices.
const (
	KindTSFT            Kind = 0
	KindFlags           Kind = 1
	KindRate            Kind = 2
	KindChannel         Kind = 3
	KindFHSS            Kind = 4
	KindAntennaSignal   Kind = 5
	KindAntennaNoise    Kind = 6
	KindLockQuality     Kind = 7
	KindTxAttenuation   Kind = 8
	KindTxAttenuationDB Kind = 9
	KindTxPower         Kind = 10
	KindAntenna         Kind = 11
	KindAntennaSignalDB Kind = 12
	KindAntennaNoiseDB  Kind = 13
	KindRxFlags         Kind = 14
	KindTxFlags         Kind = 15
	KindRTSRetries      Kind = 16
	KindDataRetries     Kind = 17
	KindXChannel        Kind = 18
	KindMCS             Kind = 19
	KindAMPDUStatus     Kind = 20
	KindVHT             Kind = 21
	KindTimestamp       Kind = 22
	KindHE              Kind = 23
	KindHEMU            Kind = 24
	KindHEMUOtherUser   Kind = 25
	KindZeroLengthPSDU  Kind = 26
	KindLSIG            Kind = 27

	// KindVendorNamespace is the vendor escape. Its size covers only the
	// fixed descriptor; the payload length is read from the descriptor.
	KindVendorNamespace Kind = 30
)

// Control bits of a bitmap word. Only the vendor namespace bit owns data.
const (
	bitTLV               = 28 // variable-length TLV list, not supported
	bitRadiotapNamespace = 29 // next word restarts the radiotap namespace
	bitVendorNamespace   = 30 // next word belongs to a vendor namespace
	bitExtended          = 31 // another bitmap word follows
)

type kindInfo struct {
	name  string
	size  int
	align int
	typed bool // has a slot in the Radiotap aggregate
}

var catalog = [...]kindInfo{
	KindTSFT:            {"TSFT", 8, 8, true},
	KindFlags:           {"Flags", 1, 1, true},
	KindRate:            {"Rate", 1, 1, true},
	KindChannel:         {"Channel", 4, 2, true},
	KindFHSS:            {"FHSS", 2, 1, true},
	KindAntennaSignal:   {"AntennaSignal", 1, 1, true},
	KindAntennaNoise:    {"AntennaNoise", 1, 1, true},
	KindLockQuality:     {"LockQuality", 2, 2, true},
	KindTxAttenuation:   {"TxAttenuation", 2, 2, true},
	KindTxAttenuationDB: {"TxAttenuationDB", 2, 2, true},
	KindTxPower:         {"TxPower", 1, 1, true},
	KindAntenna:         {"Antenna", 1, 1, true},
	KindAntennaSignalDB: {"AntennaSignalDB", 1, 1, true},
	KindAntennaNoiseDB:  {"AntennaNoiseDB", 1, 1, true},
	KindRxFlags:         {"RxFlags", 2, 2, true},
	KindTxFlags:         {"TxFlags", 2, 2, true},
	KindRTSRetries:      {"RTSRetries", 1, 1, true},
	KindDataRetries:     {"DataRetries", 1, 1, true},
	KindXChannel:        {"XChannel", 8, 4, true},
	KindMCS:             {"MCS", 3, 1, true},
	KindAMPDUStatus:     {"AMPDUStatus", 8, 4, true},
	KindVHT:             {"VHT", 12, 2, true},
	KindTimestamp:       {"Timestamp", 12, 8, true},
	KindHE:              {"HE", 12, 2, false},
	KindHEMU:            {"HEMU", 12, 2, false},
	KindHEMUOtherUser:   {"HEMUOtherUser", 6, 2, false},
	KindZeroLengthPSDU:  {"ZeroLengthPSDU", 1, 1, false},
	KindLSIG:            {"LSIG", 4, 2, false},
	KindVendorNamespace: {"VendorNamespace", 6, 2, false},
}

func (k Kind) info() kindInfo {
	if int(k) < len(catalog) {
		return catalog[k]
	}
	return kindInfo{}
}

// KnownKind reports whether bit has a catalog entry with a fixed size.
func KnownKind(bit uint) bool {
	return bit < uint(len(catalog)) && catalog[bit].size > 0
}

// Kinds returns every kind that decodes into a typed value, in bit order.
func Kinds() []Kind {
	var kinds []Kind
	for bit, info := range catalog {
		if info.typed {
			kinds = append(kinds, Kind(bit))
		}
	}
	return kinds
}

// ParseKind looks a kind up by its String name, ignoring case.
func ParseKind(name string) (Kind, bool) {
	for bit, info := range catalog {
		if info.name != "" && strings.EqualFold(info.name, name) {
			return Kind(bit), true
		}
	}
	return 0, false
}

// Bit returns the presence bitmap index of the kind.
func (k Kind) Bit() uint { return uint(k) }

// Size returns the encoded size in bytes, excluding alignment padding.
func (k Kind) Size() int { return k.info().size }

// Align returns the byte boundary the field must start on.
func (k Kind) Align() int {
	if a := k.info().align; a > 0 {
		return a
	}
	return 1
}

// Typed reports whether the kind decodes into a typed value.
func (k Kind) Typed() bool { return k.info().typed }

func (k Kind) String() string {
	if name := k.info().name; name != "" {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
