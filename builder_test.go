package radiotap

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/radiotap/field"
)

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	got := Build().Done()
	assert.Equal(t, field.DefaultHeader().Length, got.Header.Length)
	assert.Empty(t, got.Header.Present)

	data, err := got.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 8, 0, 0, 0, 0, 0}, data)
}

func TestBuild_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder *Builder
		want    int
	}{
		{
			name:    "tsft rate channel",
			builder: Build().TSFT(1).Rate(1).Channel(field.Channel{Freq: 2412}),
			want:    22,
		},
		{
			name:    "timestamp forces second alignment",
			builder: Build().TSFT(1).Timestamp(field.Timestamp{}).Rate(1).Flags(0).Channel(field.Channel{}),
			want:    36,
		},
		{
			name:    "single byte",
			builder: Build().Antenna(1),
			want:    9,
		},
		{
			name:    "xchannel after flags",
			builder: Build().Flags(0).XChannel(field.XChannel{}),
			want:    20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rt := tt.builder.Done()
			assert.Equal(t, tt.want, rt.Header.Length)

			data, err := rt.Bytes()
			require.NoError(t, err)
			assert.Len(t, data, tt.want)
		})
	}
}

func TestBuild_LastWriteWins(t *testing.T) {
	t.Parallel()

	rt := Build().Rate(1).Antenna(2).Rate(6).Antenna(3).Done()
	assert.Equal(t, []field.Kind{field.KindRate, field.KindAntenna}, rt.Header.Present)
	assert.Equal(t, field.Rate(6), *rt.Rate)
	assert.Equal(t, field.Antenna(3), *rt.Antenna)
	assert.Equal(t, 10, rt.Header.Length)
}

func TestBuild_OrderIndependent(t *testing.T) {
	t.Parallel()

	full := fullRadiotap()
	kinds := field.Kinds()

	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 10 {
		rng.Shuffle(len(kinds), func(a, b int) { kinds[a], kinds[b] = kinds[b], kinds[a] })
		b := Build()
		for _, k := range kinds {
			b.Set(full.Value(k))
		}
		if diff := cmp.Diff(full, b.Done()); diff != "" {
			t.Errorf("shuffle %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestBuild_IgnoresValuesWithoutSlot(t *testing.T) {
	t.Parallel()

	rt := Build().
		Set(field.VendorNamespace{OUI: [3]byte{1, 2, 3}, SkipLength: 4}).
		Set(nil).
		Done()
	assert.Equal(t, Build().Done(), rt)
}

func TestBuild_DoneDoesNotAlias(t *testing.T) {
	t.Parallel()

	b := Build().Rate(2).TSFT(1)
	first := b.Done()
	b.Flags(field.FlagFCS)
	second := b.Done()

	assert.Equal(t, []field.Kind{field.KindTSFT, field.KindRate}, first.Header.Present)
	assert.Equal(t, []field.Kind{field.KindTSFT, field.KindFlags, field.KindRate}, second.Header.Present)
	assert.Nil(t, first.Flags)
	assert.Equal(t, 17, first.Header.Length)
	assert.Equal(t, 18, second.Header.Length)
}
