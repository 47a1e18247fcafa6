package field

import (
	"encoding/binary"
	"fmt"
)

// VendorNamespace is the descriptor that opens a vendor namespace. The
// SkipLength bytes following it are vendor data the decoder does not interpret.
type VendorNamespace struct {
	OUI          [3]byte
	SubNamespace uint8
	SkipLength   uint16
}

func (VendorNamespace) Kind() Kind { return KindVendorNamespace }

func (v *VendorNamespace) UnmarshalBinary(data []byte) error {
	if err := checkSize(KindVendorNamespace, data); err != nil {
		return err
	}
	copy(v.OUI[:], data[0:3])
	v.SubNamespace = data[3]
	v.SkipLength = binary.LittleEndian.Uint16(data[4:6])
	return nil
}

func (v VendorNamespace) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, v.OUI[:]...)
	b = append(b, v.SubNamespace)
	return binary.LittleEndian.AppendUint16(b, v.SkipLength), nil
}

func (v VendorNamespace) String() string {
	return fmt.Sprintf("%02x:%02x:%02x/%d (%d bytes)", v.OUI[0], v.OUI[1], v.OUI[2], v.SubNamespace, v.SkipLength)
}
