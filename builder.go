package radiotap

import (
	"slices"

	"github.com/banshee-data/radiotap/field"
)

// Builder assembles a Radiotap value and fills in its header. Setters can be
// called in any order; setting a kind twice keeps the last value.
type Builder struct {
	inner Radiotap
}

// Build returns an empty Builder.
func Build() *Builder {
	return &Builder{inner: Radiotap{Header: field.DefaultHeader()}}
}

// Set stores v and marks its kind present. Values without a slot, such as a
// vendor namespace descriptor, are ignored.
func (b *Builder) Set(v field.Value) *Builder {
	if !b.inner.set(v) {
		return b
	}
	if !b.inner.Header.Has(v.Kind()) {
		b.inner.Header.Present = append(b.inner.Header.Present, v.Kind())
	}
	return b
}

// Done returns the assembled value. Present kinds are sorted into bitmap
// order, which is the order they are serialized in, and the header length
// is computed from their sizes and alignment.
func (b *Builder) Done() Radiotap {
	r := b.inner
	present := slices.Clone(r.Header.Present)
	slices.Sort(present) // kind values are their bit indices
	r.Header.Present = present
	r.Header.Length = fieldsLength(r.Header.Length, present)
	return r
}

func (b *Builder) TSFT(v field.TSFT) *Builder { return b.Set(v) }
func (b *Builder) Flags(v field.Flags) *Builder { return b.Set(v) }
func (b *Builder) Rate(v field.Rate) *Builder { return b.Set(v) }
func (b *Builder) Channel(v field.Channel) *Builder { return b.Set(v) }
func (b *Builder) FHSS(v field.FHSS) *Builder { return b.Set(v) }
func (b *Builder) AntennaSignal(v field.AntennaSignal) *Builder { return b.Set(v) }
func (b *Builder) AntennaNoise(v field.AntennaNoise) *Builder { return b.Set(v) }
func (b *Builder) LockQuality(v field.LockQuality) *Builder { return b.Set(v) }
func (b *Builder) TxAttenuation(v field.TxAttenuation) *Builder { return b.Set(v) }
func (b *Builder) TxAttenuationDB(v field.TxAttenuationDB) *Builder { return b.Set(v) }
func (b *Builder) TxPower(v field.TxPower) *Builder { return b.Set(v) }
func (b *Builder) Antenna(v field.Antenna) *Builder { return b.Set(v) }
func (b *Builder) AntennaSignalDB(v field.AntennaSignalDB) *Builder { return b.Set(v) }
func (b *Builder) AntennaNoiseDB(v field.AntennaNoiseDB) *Builder { return b.Set(v) }
func (b *Builder) RxFlags(v field.RxFlags) *Builder { return b.Set(v) }
func (b *Builder) TxFlags(v field.TxFlags) *Builder { return b.Set(v) }
func (b *Builder) RTSRetries(v field.RTSRetries) *Builder { return b.Set(v) }
func (b *Builder) DataRetries(v field.DataRetries) *Builder { return b.Set(v) }
func (b *Builder) XChannel(v field.XChannel) *Builder { return b.Set(v) }
func (b *Builder) MCS(v field.MCS) *Builder { return b.Set(v) }
func (b *Builder) AMPDUStatus(v field.AMPDUStatus) *Builder { return b.Set(v) }
func (b *Builder) VHT(v field.VHT) *Builder { return b.Set(v) }
func (b *Builder) Timestamp(v field.Timestamp) *Builder { return b.Set(v) }
