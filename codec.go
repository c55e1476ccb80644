// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cdrcodec

import "fmt"

// Kind selects whether a Codec prefixes its stream with a DDS/RTPS
// encapsulation header or writes raw CORBA GIOP CDR.
type Kind int

const (
	// KindCORBA is raw CDR: no 4-byte DDS header (its encapsulation is the
	// single endianness/kind byte) and no parameter lists.
	KindCORBA Kind = iota
	// KindDDS prefixes the stream with a 4-byte encapsulation header and
	// allows the WITH_PL (parameter list) variant.
	KindDDS
)

// PlFlag records whether a DDS_CDR stream carries a parameter list.
type PlFlag int

const (
	// WithoutPL is a plain, packed-struct DDS_CDR payload.
	WithoutPL PlFlag = iota
	// WithPL is a DDS_CDR payload encoded as tagged parameter-list fields.
	WithPL
)

const (
	ddsCdrWithPLBit = 0x02
	littleEndianBit = 0x01
)

// Codec is a thin, non-owning controller over a Buffer that exposes typed
// CDR serialize/deserialize operations. It borrows its Buffer: the Buffer
// outlives every Codec constructed over it, and two Codecs may not safely
// share one concurrently.
type Codec struct {
	buf     *Buffer
	kind    Kind
	plFlag  PlFlag
	options uint16
}

// NewCodec wraps buf in a Codec of the given kind. The Buffer's own
// endianness (set at its construction) governs the stream; the Codec adds
// no endianness of its own.
func NewCodec(buf *Buffer, kind Kind) *Codec {
	return &Codec{buf: buf, kind: kind, plFlag: WithoutPL}
}

// Buffer returns the Codec's underlying Buffer.
func (c *Codec) Buffer() *Buffer { return c.buf }

// Kind returns the Codec's encapsulation kind.
func (c *Codec) Kind() Kind { return c.kind }

// PlFlag returns whether the stream carries a parameter list. Only
// meaningful when Kind() == KindDDS.
func (c *Codec) PlFlag() PlFlag { return c.plFlag }

// SetPlFlag sets the parameter-list flag for a subsequent WriteEncapsulation
// on a KindDDS Codec.
func (c *Codec) SetPlFlag(pl PlFlag) { c.plFlag = pl }

// Options returns the 16-bit options value carried by the last written or
// read encapsulation header.
func (c *Codec) Options() uint16 { return c.options }

// SetOptions sets the options value a subsequent WriteEncapsulation emits.
func (c *Codec) SetOptions(o uint16) { c.options = o }

// ResetAlignment resets the Buffer's alignment origin to the current
// cursor. Exposed on Codec so callers working purely in terms of the
// typed API never need to reach into the Buffer directly.
func (c *Codec) ResetAlignment() { c.buf.ResetAlignment() }

// CurrentPosition returns the Buffer's unread/unwritten remainder. See
// Buffer.CurrentPosition for the invalidation rules across growth.
func (c *Codec) CurrentPosition() []byte { return c.buf.CurrentPosition() }

// Jump advances the cursor by n bytes without reading or writing them.
// Unlike the source implementation this checks the true remaining space
// (remaining >= n), not remaining >= sizeof(n); it also never touches
// last_primitive_size, since a jump transfers no primitive.
func (c *Codec) Jump(n int) error {
	if n < 0 {
		return fmt.Errorf("cdrcodec: jump of negative length %d: %w", n, ErrBadParam)
	}
	if !c.buf.HasSpace(n) {
		return fmt.Errorf("cdrcodec: jump of %d bytes exceeds remaining %d: %w", n, c.buf.Remaining(), ErrNotEnoughMemory)
	}
	c.buf.cursor += n
	return nil
}

// codecSnapshot captures the Codec-level fields (buffer state is captured
// separately via Buffer.Snapshot) so that a failed multi-step operation,
// notably ReadEncapsulation, can restore the whole pre-call picture.
type codecSnapshot struct {
	plFlag  PlFlag
	options uint16
}

func (c *Codec) snapshot() codecSnapshot {
	return codecSnapshot{plFlag: c.plFlag, options: c.options}
}

func (c *Codec) restore(s codecSnapshot) {
	c.plFlag = s.plFlag
	c.options = s.options
}

// WriteEncapsulation emits the encapsulation header and resets alignment so
// the payload's first primitive aligns as if at offset 0. A KindDDS Codec
// writes the full 4-byte DDS/RTPS header ([0x00, kind, options_hi,
// options_lo]); a KindCORBA Codec writes only the single endianness/kind
// byte that a GIOP CDR encapsulation carries (no dummy byte, no options).
func (c *Codec) WriteEncapsulation() error {
	bufSnap := c.buf.Snapshot()

	var kindByte byte
	if c.buf.StreamEndian() == LittleEndian {
		kindByte |= littleEndianBit
	}
	if c.kind == KindDDS && c.plFlag == WithPL {
		kindByte |= ddsCdrWithPLBit
	}

	if c.kind == KindDDS {
		if err := c.serializeRaw1(0x00); err != nil {
			c.buf.Restore(bufSnap)
			return err
		}
	}
	if err := c.serializeRaw1(kindByte); err != nil {
		c.buf.Restore(bufSnap)
		return err
	}

	if c.kind == KindDDS {
		hi := byte(c.options >> 8)
		lo := byte(c.options)
		// Option bytes are written in stream-endian order, like any
		// other 16-bit primitive, not fixed big-endian.
		first, second := hi, lo
		if c.buf.StreamEndian() == LittleEndian {
			first, second = lo, hi
		}
		if err := c.serializeRaw1(first); err != nil {
			c.buf.Restore(bufSnap)
			return err
		}
		if err := c.serializeRaw1(second); err != nil {
			c.buf.Restore(bufSnap)
			return err
		}
	}

	c.buf.ResetAlignment()
	return nil
}

// ReadEncapsulation consumes the header written by WriteEncapsulation: the
// leading dummy byte (DDS only), the kind byte (always, since this is
// where a non-DDS Codec catches an illegal WITH_PL flag), and the two
// options bytes (DDS only). The wire's declared endianness always wins: if
// the kind byte's low bit disagrees with the Buffer's current
// stream_endian, swap is flipped and stream_endian adopts the wire's
// declaration. Any failure restores the pre-call Buffer and Codec state
// before returning.
func (c *Codec) ReadEncapsulation() error {
	bufSnap := c.buf.Snapshot()
	codecSnap := c.snapshot()
	fail := func(err error) error {
		c.buf.Restore(bufSnap)
		c.restore(codecSnap)
		return err
	}

	if c.kind == KindDDS {
		if _, err := c.deserializeRaw1(); err != nil {
			return fail(err)
		}
	}

	kindByte, err := c.deserializeRaw1()
	if err != nil {
		return fail(err)
	}

	wireLittle := kindByte&littleEndianBit != 0
	wireEndian := BigEndian
	if wireLittle {
		wireEndian = LittleEndian
	}
	if wireEndian != c.buf.streamEndian {
		c.buf.swap = !c.buf.swap
		c.buf.streamEndian = wireEndian
	}

	if kindByte&ddsCdrWithPLBit != 0 {
		if c.kind != KindDDS {
			return fail(fmt.Errorf("cdrcodec: WITH_PL encapsulation on non-DDS stream: %w", ErrBadParam))
		}
		c.plFlag = WithPL
	}

	if c.kind == KindDDS {
		byte1, err := c.deserializeRaw1()
		if err != nil {
			return fail(err)
		}
		byte2, err := c.deserializeRaw1()
		if err != nil {
			return fail(err)
		}
		if wireLittle {
			c.options = uint16(byte1) | uint16(byte2)<<8
		} else {
			c.options = uint16(byte1)<<8 | uint16(byte2)
		}
	}

	c.buf.ResetAlignment()
	return nil
}

// serializeRaw1/deserializeRaw1 write/read a single unaligned byte without
// going through the width-w primitive path: the encapsulation header is
// always unaligned and never swapped.
func (c *Codec) serializeRaw1(v byte) error {
	if !c.buf.ensureSpace(1) {
		return fmt.Errorf("cdrcodec: no space for encapsulation byte: %w", ErrNotEnoughMemory)
	}
	c.buf.data[c.buf.cursor] = v
	c.buf.cursor++
	return nil
}

func (c *Codec) deserializeRaw1() (byte, error) {
	if !c.buf.HasSpace(1) {
		return 0, fmt.Errorf("cdrcodec: no data for encapsulation byte: %w", ErrNotEnoughMemory)
	}
	v := c.buf.data[c.buf.cursor]
	c.buf.cursor++
	return v, nil
}
