package radiotap

import (
	"fmt"
	"iter"

	"github.com/banshee-data/radiotap/field"
)

// Field is one present field of a capture.
type Field struct {
	Kind field.Kind

	// Vendor is the decoded descriptor when Kind is KindVendorNamespace.
	// Data then holds only the vendor payload, not the descriptor.
	Vendor *field.VendorNamespace

	// Data aliases the buffer passed to NewIterator.
	Data []byte
}

// Iterator holds a decoded header and the bytes it governs.
type Iterator struct {
	header field.Header
	data   []byte
}

// NewIterator decodes the header at the start of input and returns an
// iterator over its fields plus the bytes following the header.
func NewIterator(input []byte) (*Iterator, []byte, error) {
	h, err := field.DecodeHeader(input)
	if err != nil {
		return nil, nil, err
	}
	return &Iterator{header: h, data: input[:h.Length]}, input[h.Length:], nil
}

// Header returns the decoded header.
func (it *Iterator) Header() field.Header {
	return it.header
}

// Fields returns a cursor positioned before the first field. Each call starts
// a fresh walk.
func (it *Iterator) Fields() *FieldCursor {
	return &FieldCursor{
		present: it.header.Present,
		data:    it.data,
		pos:     it.header.Size,
	}
}

// All yields every field in header order. After an error nothing more is
// yielded.
func (it *Iterator) All() iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		c := it.Fields()
		for c.Next() {
			if !yield(c.Field(), nil) {
				return
			}
		}
		if err := c.Err(); err != nil {
			yield(Field{}, err)
		}
	}
}

// FieldCursor walks the fields of a header in order, in the manner of
// bufio.Scanner.
type FieldCursor struct {
	present []field.Kind
	data    []byte
	pos     int
	cur     Field
	err     error
}

// Next advances to the next field. It returns false when the fields are
// exhausted or an error occurred; Err tells the two apart.
func (c *FieldCursor) Next() bool {
	c.cur = Field{}
	if c.err != nil || len(c.present) == 0 {
		return false
	}
	kind := c.present[0]
	c.present = c.present[1:]

	start := alignUp(c.pos, kind.Align())
	end := start + kind.Size()
	if end > len(c.data) {
		c.err = fmt.Errorf("%s at offset %d needs %d bytes, header governs %d: %w",
			kind, start, kind.Size(), len(c.data), field.ErrIncomplete)
		return false
	}

	f := Field{Kind: kind}
	if kind == field.KindVendorNamespace {
		vns := new(field.VendorNamespace)
		if err := vns.UnmarshalBinary(c.data[start:end]); err != nil {
			c.err = fmt.Errorf("decode vendor namespace at offset %d: %w", start, err)
			return false
		}
		start = end
		end += int(vns.SkipLength)
		if end > len(c.data) {
			c.err = fmt.Errorf("vendor namespace at offset %d skips %d bytes, header governs %d: %w",
				start, vns.SkipLength, len(c.data), field.ErrIncomplete)
			return false
		}
		f.Vendor = vns
	}

	f.Data = c.data[start:end:end]
	c.pos = end
	c.cur = f
	return true
}

// Field returns the field found by the last call to Next.
func (c *FieldCursor) Field() Field {
	return c.cur
}

// Err returns the error that stopped the walk, if any.
func (c *FieldCursor) Err() error {
	return c.err
}
