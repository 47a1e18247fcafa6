package radiotap

import "github.com/banshee-data/radiotap/field"

// alignUp rounds off up to a multiple of align, which must be a power of two.
func alignUp(off, align int) int {
	return (off + align - 1) &^ (align - 1)
}

// padding returns the zero bytes needed before a field aligned to align.
func padding(off, align int) int {
	return alignUp(off, align) - off
}

// fieldsLength folds the aligned sizes of present onto start.
func fieldsLength(start int, present []field.Kind) int {
	length := start
	for _, k := range present {
		length = alignUp(length, k.Align()) + k.Size()
	}
	return length
}
