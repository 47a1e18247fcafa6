package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/radiotap"
	"github.com/banshee-data/radiotap/field"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultDumpConfig(t *testing.T) {
	cfg := DefaultDumpConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0, cfg.GetMaxFrames())
	assert.False(t, cfg.GetStopOnError())
	assert.Equal(t, "", cfg.GetBPFFilter())
	assert.Equal(t, 20, cfg.GetHistogramBins())
	assert.Equal(t, "Antenna signal", cfg.GetChartTitle())

	kinds, err := cfg.KindFilter()
	require.NoError(t, err)
	assert.Nil(t, kinds)
}

func TestDumpConfig_EmptyUsesDefaults(t *testing.T) {
	cfg := &DumpConfig{}
	assert.Equal(t, DefaultDumpConfig().GetHistogramBins(), cfg.GetHistogramBins())
	assert.Equal(t, DefaultDumpConfig().GetChartTitle(), cfg.GetChartTitle())
	assert.Equal(t, 0, cfg.GetMaxFrames())
}

func TestLoadDumpConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "dump.json",
			content: `{
  "max_frames": 100,
  "stop_on_error": true,
  "kinds": ["Rate", "antennasignal"],
  "bpf_filter": " type mgt ",
  "histogram_bins": 40
}`,
		},
		{
			name: "toml",
			file: "dump.toml",
			content: `max_frames = 100
stop_on_error = true
kinds = ["Rate", "antennasignal"]
bpf_filter = " type mgt "
histogram_bins = 40
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadDumpConfig(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, 100, cfg.GetMaxFrames())
			assert.True(t, cfg.GetStopOnError())
			assert.Equal(t, "type mgt", cfg.GetBPFFilter())
			assert.Equal(t, 40, cfg.GetHistogramBins())
			assert.Equal(t, "Antenna signal", cfg.GetChartTitle(), "omitted key keeps default")

			kinds, err := cfg.KindFilter()
			require.NoError(t, err)
			assert.Equal(t, []field.Kind{field.KindRate, field.KindAntennaSignal}, kinds)
		})
	}
}

func TestLoadDumpConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{"extension", "dump.yaml", "max_frames: 1", "extension"},
		{"bad json", "dump.json", "{", "parse config JSON"},
		{"bad toml", "dump.toml", "max_frames = [", "parse config TOML"},
		{"negative max", "dump.json", `{"max_frames": -1}`, "max_frames"},
		{"bins", "dump.toml", "histogram_bins = 0", "histogram_bins"},
		{"unknown kind", "dump.json", `{"kinds": ["Bogus"]}`, `unknown field kind "Bogus"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDumpConfig(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := LoadDumpConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "stat config file")
}

func TestLoad_FileTooLarge(t *testing.T) {
	content := `{"chart_title": "` + strings.Repeat("x", maxFileSize) + `"}`
	_, err := LoadDumpConfig(writeFile(t, "big.json", content))
	assert.ErrorContains(t, err, "too large")
}

func TestLoadFrameTemplate(t *testing.T) {
	const content = `tsft = 1000
tsft_step = 10
flags = 0x10
rate_mbps = 5.5
channel_mhz = 2437
channel_flags = 0xa0
antenna_signal_dbm = -42
antenna = 1
mcs_index = 9
mcs_bandwidth = 1
mcs_short_gi = true
payload = "80000000"
`
	tpl, err := LoadFrameTemplate(writeFile(t, "frame.toml", content))
	require.NoError(t, err)

	payload, err := tpl.GetPayload()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0, 0, 0}, payload)

	rt := tpl.Build(2)
	assert.Equal(t, []field.Kind{
		field.KindTSFT, field.KindFlags, field.KindRate, field.KindChannel,
		field.KindAntennaSignal, field.KindAntenna, field.KindMCS,
	}, rt.Header.Present)
	assert.Equal(t, field.TSFT(1020), *rt.TSFT)
	assert.Equal(t, field.FlagFCS, *rt.Flags)
	assert.Equal(t, field.Rate(5.5), *rt.Rate)
	assert.Equal(t, field.Channel{Freq: 2437, Flags: field.ChannelCCK | field.Channel2GHz}, *rt.Channel)
	assert.Equal(t, field.AntennaSignal(-42), *rt.AntennaSignal)

	rate, ok := rt.MCS.DataRate()
	require.True(t, ok)
	assert.InDelta(t, 27*2*10.0/9, rate, 1e-9)

	data, err := rt.Bytes()
	require.NoError(t, err)
	back, err := radiotap.FromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, rt, back)
}

func TestFrameTemplate_JSONAndDefaults(t *testing.T) {
	tpl, err := LoadFrameTemplate(writeFile(t, "frame.json", `{"tsft": 5, "tx_flags": 8, "data_retries": 2}`))
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), tpl.GetTSFTStep())

	payload, err := tpl.GetPayload()
	require.NoError(t, err)
	assert.Empty(t, payload)

	rt := tpl.Build(3)
	assert.Equal(t, field.TSFT(3005), *rt.TSFT)
	assert.True(t, rt.TxFlags.Has(field.TxFlagNoAck))
	assert.Equal(t, field.DataRetries(2), *rt.DataRetries)

	empty := (&FrameTemplate{}).Build(0)
	assert.Equal(t, radiotap.Build().Done(), empty)
}

func TestFrameTemplate_Validate(t *testing.T) {
	tests := []struct {
		name   string
		tpl    FrameTemplate
		errMsg string
	}{
		{"rate fraction", FrameTemplate{RateMbps: ptr(1.2)}, "rate_mbps"},
		{"rate range", FrameTemplate{RateMbps: ptr(200.0)}, "rate_mbps"},
		{"channel flags alone", FrameTemplate{ChannelFlags: ptr(uint16(0x80))}, "channel_mhz"},
		{"mcs index", FrameTemplate{MCSIndex: ptr(uint8(32))}, "mcs_index"},
		{"mcs bandwidth", FrameTemplate{MCSIndex: ptr(uint8(1)), MCSBandwidth: ptr(uint8(4))}, "mcs_bandwidth"},
		{"gi without index", FrameTemplate{MCSShortGI: ptr(true)}, "require mcs_index"},
		{"payload", FrameTemplate{Payload: ptr("zz")}, "payload hex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tpl.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, (&FrameTemplate{RateMbps: ptr(127.5)}).Validate())
}
