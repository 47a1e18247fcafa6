package radiotap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/radiotap/field"
	"github.com/banshee-data/radiotap/internal/testutil"
)

func TestIterator_VendorFrame(t *testing.T) {
	t.Parallel()

	frame := testutil.VendorFrame()
	it, rest, err := NewIterator(frame)
	require.NoError(t, err)
	assert.Empty(t, rest)

	var got []Field
	c := it.Fields()
	for c.Next() {
		got = append(got, c.Field())
	}
	require.NoError(t, c.Err())
	require.Len(t, got, 8)

	offsets := []struct {
		kind  field.Kind
		start int
		size  int
	}{
		{field.KindFlags, 20, 1},
		{field.KindRate, 21, 1},
		{field.KindChannel, 22, 4},
		{field.KindAntennaSignal, 26, 1},
		{field.KindAntenna, 27, 1},
		{field.KindRxFlags, 28, 2},
		{field.KindVendorNamespace, 36, 2},
		{field.KindRate, 38, 1},
	}
	for i, want := range offsets {
		f := got[i]
		assert.Equal(t, want.kind, f.Kind, "field %d", i)
		assert.Equal(t, frame[want.start:want.start+want.size], f.Data, "field %d", i)
		assert.Equal(t, want.size, cap(f.Data), "field %d data must not reach the next field", i)
	}

	vendor := got[6]
	require.NotNil(t, vendor.Vendor)
	assert.Equal(t, [3]byte{0xff, 0xff, 0xff}, vendor.Vendor.OUI)
	assert.Equal(t, uint8(0xff), vendor.Vendor.SubNamespace)
	assert.Equal(t, uint16(2), vendor.Vendor.SkipLength)
	assert.Equal(t, []byte{222, 173}, vendor.Data)
	assert.Nil(t, got[0].Vendor)
}

func TestIterator_FieldsRestarts(t *testing.T) {
	t.Parallel()

	it, _, err := NewIterator(testutil.VendorFrame())
	require.NoError(t, err)

	count := func() int {
		n := 0
		for _, err := range it.All() {
			require.NoError(t, err)
			n++
		}
		return n
	}
	assert.Equal(t, 8, count())
	assert.Equal(t, 8, count())
}

func TestIterator_ErrorStopsWalk(t *testing.T) {
	t.Parallel()

	// TSFT added to the bitmap pushes Antenna past the declared length.
	it, _, err := NewIterator(testutil.WithByte(testutil.VendorFrame(), 4, 47))
	require.NoError(t, err)

	c := it.Fields()
	var kinds []field.Kind
	for c.Next() {
		kinds = append(kinds, c.Field().Kind)
	}
	require.ErrorIs(t, c.Err(), field.ErrIncomplete)
	assert.Equal(t, []field.Kind{
		field.KindTSFT, field.KindFlags, field.KindRate, field.KindChannel, field.KindAntennaSignal,
	}, kinds)

	assert.False(t, c.Next())
	assert.Equal(t, Field{}, c.Field())
	assert.ErrorIs(t, c.Err(), field.ErrIncomplete)
}

func TestIterator_AllYieldsErrorLast(t *testing.T) {
	t.Parallel()

	it, _, err := NewIterator(testutil.WithByte(testutil.VendorFrame(), 4, 47))
	require.NoError(t, err)

	var fields int
	var last error
	for f, err := range it.All() {
		if err != nil {
			last = err
			assert.Equal(t, Field{}, f)
			continue
		}
		fields++
	}
	assert.Equal(t, 5, fields)
	assert.True(t, IsTruncated(last))
}

func TestIterator_AllStopsOnBreak(t *testing.T) {
	t.Parallel()

	it, _, err := NewIterator(testutil.VendorFrame())
	require.NoError(t, err)

	var seen []field.Kind
	for f := range it.All() {
		seen = append(seen, f.Kind)
		if f.Kind == field.KindChannel {
			break
		}
	}
	assert.Equal(t, []field.Kind{field.KindFlags, field.KindRate, field.KindChannel}, seen)
}

func TestIterator_UntypedKindsAreWalked(t *testing.T) {
	t.Parallel()

	frame := make([]byte, 22)
	copy(frame, []byte{0, 0, 22, 0, 0x02, 0, 0x80, 0, 0x20, 0, 1, 2})
	it, _, err := NewIterator(frame)
	require.NoError(t, err)

	c := it.Fields()
	require.True(t, c.Next())
	require.True(t, c.Next())
	he := c.Field()
	assert.Equal(t, field.KindHE, he.Kind)
	assert.Equal(t, frame[10:22], he.Data)
	assert.False(t, c.Next())
	assert.NoError(t, c.Err())
}

func TestIterator_HeaderErrors(t *testing.T) {
	t.Parallel()

	it, rest, err := NewIterator([]byte{0, 0, 9, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, field.ErrInvalidLength)
	assert.Nil(t, it)
	assert.Nil(t, rest)
}
