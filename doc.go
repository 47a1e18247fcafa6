// Package radiotap decodes and encodes the radiotap header that capture
// tools prepend to 802.11 frames to carry per-packet radio metadata.
//
// A radiotap header is a length-prefixed prefix followed by a presence bitmap
// and the fields it announces. Each field starts on its natural alignment,
// measured from the start of the header, and vendor namespaces carry an
// opaque payload whose length is given by a small descriptor.
//
// Parse decodes every supported field into a Radiotap value and returns the
// bytes after the header, which is usually the 802.11 frame:
//
//	rt, frame, err := radiotap.Parse(packet)
//	if err != nil {
//		return err
//	}
//	if rt.AntennaSignal != nil {
//		log.Printf("signal %d dBm", *rt.AntennaSignal)
//	}
//
// Callers that only need a few fields can walk them without decoding the rest:
//
//	it, _, err := radiotap.NewIterator(packet)
//	if err != nil {
//		return err
//	}
//	for f, err := range it.All() {
//		if err != nil {
//			return err
//		}
//		if f.Kind == field.KindVHT {
//			var vht field.VHT
//			if err := vht.UnmarshalBinary(f.Data); err != nil {
//				return err
//			}
//		}
//	}
//
// Build assembles a value for injection and Unparse writes it out:
//
//	rt := radiotap.Build().
//		TSFT(42).
//		Flags(field.FlagWEP | field.FlagDataPad).
//		Rate(4.5).
//		Channel(field.Channel{Freq: 2412, Flags: field.Channel2GHz | field.ChannelCCK}).
//		Done()
//	n, err := rt.Unparse(w)
//
// Slices handed out by the iterator alias the input buffer. Copy them if they
// must outlive it.
package radiotap
