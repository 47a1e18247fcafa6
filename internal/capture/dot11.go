package capture

import (
	"errors"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/banshee-data/radiotap"
	"github.com/banshee-data/radiotap/field"
)

// ErrNoPayload is returned when nothing follows the radiotap header.
var ErrNoPayload = errors.New("capture: no 802.11 payload")

const fcsLen = 4

// Dot11Summary is the part of an 802.11 MAC header worth printing.
type Dot11Summary struct {
	Type        layers.Dot11Type
	Receiver    string // address 1
	Transmitter string // address 2
	Address3    string
	Sequence    uint16
	Protected   bool
}

func (s Dot11Summary) String() string {
	return fmt.Sprintf("%v %s -> %s seq=%d", s.Type, s.Transmitter, s.Receiver, s.Sequence)
}

// DescribePayload decodes the 802.11 header in payload, the bytes that follow
// the radiotap header rt.
func DescribePayload(rt radiotap.Radiotap, payload []byte) (Dot11Summary, error) {
	if len(payload) == 0 {
		return Dot11Summary{}, ErrNoPayload
	}
	// layers.Dot11 always chops a trailing FCS.
	if rt.Flags == nil || !rt.Flags.Has(field.FlagFCS) {
		payload = append(payload[:len(payload):len(payload)], make([]byte, fcsLen)...)
	}

	packet := gopacket.NewPacket(payload, layers.LayerTypeDot11, gopacket.NoCopy)
	dot11, ok := packet.Layer(layers.LayerTypeDot11).(*layers.Dot11)
	if !ok {
		if errLayer := packet.ErrorLayer(); errLayer != nil {
			return Dot11Summary{}, fmt.Errorf("decode 802.11 header: %w", errLayer.Error())
		}
		return Dot11Summary{}, fmt.Errorf("decode 802.11 header: no Dot11 layer")
	}

	s := Dot11Summary{
		Type:        dot11.Type,
		Receiver:    dot11.Address1.String(),
		Transmitter: dot11.Address2.String(),
		Address3:    dot11.Address3.String(),
		Sequence:    dot11.SequenceNumber,
		Protected:   dot11.Flags.WEP(),
	}
	return s, nil
}
