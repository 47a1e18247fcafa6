package capture

import (
	"testing"

	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/radiotap"
	"github.com/banshee-data/radiotap/field"
)

// dataFrame is a protected 802.11 data frame header with sequence number 100.
func dataFrame() []byte {
	return []byte{
		0x08, 0x40, // data, protected
		0x00, 0x00, // duration
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // address 1
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, // address 2
		0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, // address 3
		0x40, 0x06, // sequence control
	}
}

func TestDescribePayload(t *testing.T) {
	want := Dot11Summary{
		Type:        layers.Dot11TypeData,
		Receiver:    "ff:ff:ff:ff:ff:ff",
		Transmitter: "00:11:22:33:44:55",
		Address3:    "66:77:88:99:aa:bb",
		Sequence:    100,
		Protected:   true,
	}

	t.Run("without fcs", func(t *testing.T) {
		got, err := DescribePayload(radiotap.Build().Done(), dataFrame())
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Contains(t, got.String(), "00:11:22:33:44:55 -> ff:ff:ff:ff:ff:ff seq=100")
	})

	t.Run("with fcs", func(t *testing.T) {
		rt := radiotap.Build().Flags(field.FlagFCS).Done()
		payload := append(dataFrame(), 0xde, 0xad, 0xbe, 0xef)
		got, err := DescribePayload(rt, payload)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("input not modified", func(t *testing.T) {
		payload := dataFrame()
		_, err := DescribePayload(radiotap.Build().Done(), payload[:24:24])
		require.NoError(t, err)
		assert.Equal(t, dataFrame(), payload)
	})
}

func TestDescribePayload_Errors(t *testing.T) {
	_, err := DescribePayload(radiotap.Build().Done(), nil)
	assert.ErrorIs(t, err, ErrNoPayload)

	_, err = DescribePayload(radiotap.Build().Done(), []byte{0x08, 0x00, 0x00})
	assert.ErrorContains(t, err, "decode 802.11 header")
}
