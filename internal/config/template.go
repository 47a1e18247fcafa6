package config

import (
	"encoding/hex"
	"fmt"
	"math"

	"github.com/banshee-data/radiotap"
	"github.com/banshee-data/radiotap/field"
)

// FrameTemplate describes the capture header rtbuild writes. Each set key
// becomes one present field.
type FrameTemplate struct {
	TSFT     *uint64 `json:"tsft,omitempty" toml:"tsft"`
	TSFTStep *uint64 `json:"tsft_step,omitempty" toml:"tsft_step"` // added per frame

	Flags        *uint8   `json:"flags,omitempty" toml:"flags"`
	RateMbps     *float64 `json:"rate_mbps,omitempty" toml:"rate_mbps"`
	ChannelMHz   *uint16  `json:"channel_mhz,omitempty" toml:"channel_mhz"`
	ChannelFlags *uint16  `json:"channel_flags,omitempty" toml:"channel_flags"`

	AntennaSignal *int8  `json:"antenna_signal_dbm,omitempty" toml:"antenna_signal_dbm"`
	AntennaNoise  *int8  `json:"antenna_noise_dbm,omitempty" toml:"antenna_noise_dbm"`
	Antenna       *uint8 `json:"antenna,omitempty" toml:"antenna"`
	TxPower       *int8  `json:"tx_power_dbm,omitempty" toml:"tx_power_dbm"`

	RxFlags     *uint16 `json:"rx_flags,omitempty" toml:"rx_flags"`
	TxFlags     *uint16 `json:"tx_flags,omitempty" toml:"tx_flags"`
	DataRetries *uint8  `json:"data_retries,omitempty" toml:"data_retries"`

	// HT; setting MCSIndex adds an MCS field with index, bandwidth and GI known.
	MCSIndex     *uint8 `json:"mcs_index,omitempty" toml:"mcs_index"`
	MCSBandwidth *uint8 `json:"mcs_bandwidth,omitempty" toml:"mcs_bandwidth"` // 0=20, 1=40, 2=20L, 3=20U
	MCSShortGI   *bool  `json:"mcs_short_gi,omitempty" toml:"mcs_short_gi"`

	// Payload is hex appended after the header of every frame.
	Payload *string `json:"payload,omitempty" toml:"payload"`
}

// LoadFrameTemplate loads a FrameTemplate from a .json or .toml file.
func LoadFrameTemplate(path string) (*FrameTemplate, error) {
	tpl := &FrameTemplate{}
	if err := load(path, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Validate checks that every set value can be encoded.
func (t *FrameTemplate) Validate() error {
	if t.RateMbps != nil {
		units := *t.RateMbps * 2
		if units < 0 || units > math.MaxUint8 || units != math.Trunc(units) {
			return fmt.Errorf("rate_mbps must be a multiple of 0.5 up to 127.5, got %v", *t.RateMbps)
		}
	}
	if t.ChannelFlags != nil && t.ChannelMHz == nil {
		return fmt.Errorf("channel_flags requires channel_mhz")
	}
	if t.MCSIndex != nil && *t.MCSIndex > 31 {
		return fmt.Errorf("mcs_index must be between 0 and 31, got %d", *t.MCSIndex)
	}
	if t.MCSBandwidth != nil && *t.MCSBandwidth > 3 {
		return fmt.Errorf("mcs_bandwidth must be between 0 and 3, got %d", *t.MCSBandwidth)
	}
	if (t.MCSBandwidth != nil || t.MCSShortGI != nil) && t.MCSIndex == nil {
		return fmt.Errorf("mcs_bandwidth and mcs_short_gi require mcs_index")
	}
	if _, err := t.GetPayload(); err != nil {
		return err
	}
	return nil
}

// GetTSFTStep returns the tsft_step value or the default.
func (t *FrameTemplate) GetTSFTStep() uint64 {
	if t.TSFTStep == nil {
		return 1000 // 1ms at microsecond resolution
	}
	return *t.TSFTStep
}

// GetPayload decodes the payload hex. An unset payload is empty.
func (t *FrameTemplate) GetPayload() ([]byte, error) {
	if t.Payload == nil {
		return nil, nil
	}
	b, err := hex.DecodeString(*t.Payload)
	if err != nil {
		return nil, fmt.Errorf("invalid payload hex: %w", err)
	}
	return b, nil
}

// Build returns the capture header for the n-th frame, counting from 0. Only
// TSFT changes between frames.
func (t *FrameTemplate) Build(n int) radiotap.Radiotap {
	b := radiotap.Build()
	if t.TSFT != nil {
		b.TSFT(field.TSFT(*t.TSFT + uint64(n)*t.GetTSFTStep()))
	}
	if t.Flags != nil {
		b.Flags(field.Flags(*t.Flags))
	}
	if t.RateMbps != nil {
		b.Rate(field.Rate(*t.RateMbps))
	}
	if t.ChannelMHz != nil {
		c := field.Channel{Freq: *t.ChannelMHz}
		if t.ChannelFlags != nil {
			c.Flags = field.ChannelFlags(*t.ChannelFlags)
		}
		b.Channel(c)
	}
	if t.AntennaSignal != nil {
		b.AntennaSignal(field.AntennaSignal(*t.AntennaSignal))
	}
	if t.AntennaNoise != nil {
		b.AntennaNoise(field.AntennaNoise(*t.AntennaNoise))
	}
	if t.Antenna != nil {
		b.Antenna(field.Antenna(*t.Antenna))
	}
	if t.TxPower != nil {
		b.TxPower(field.TxPower(*t.TxPower))
	}
	if t.RxFlags != nil {
		b.RxFlags(field.RxFlags(*t.RxFlags))
	}
	if t.TxFlags != nil {
		b.TxFlags(field.TxFlags(*t.TxFlags))
	}
	if t.DataRetries != nil {
		b.DataRetries(field.DataRetries(*t.DataRetries))
	}
	if t.MCSIndex != nil {
		m := field.MCS{Known: field.MCSKnownIndex, Index: *t.MCSIndex}
		if t.MCSBandwidth != nil {
			m.Known |= field.MCSKnownBandwidth
			m.Flags |= field.MCSFlags(*t.MCSBandwidth)
		}
		if t.MCSShortGI != nil {
			m.Known |= field.MCSKnownGI
			if *t.MCSShortGI {
				m.Flags |= field.MCSFlagShortGI
			}
		}
		b.MCS(m)
	}
	return b.Done()
}
