// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cdrcodec

import (
	"fmt"
	"math"
)

// writeWidth is the single width-parameterized serialize path every
// primitive goes through (arrays.go has its own writeArrayWidth): it
// aligns, reserves space (growing an Internal Buffer if needed), copies
// raw's low w bytes in host order (or reversed, if the stream requires a
// swap), and advances the cursor and last_primitive_size.
func (c *Codec) writeWidth(w int, raw uint64) error {
	p := c.buf.AlignPadding(w)
	need := p + w
	if !c.buf.ensureSpace(need) {
		return fmt.Errorf("cdrcodec: not enough memory for %d-byte primitive: %w", w, ErrNotEnoughMemory)
	}
	c.buf.consumeAlign(p, true)

	var tmp [8]byte
	src := widthBytes(&tmp, w, raw)
	dst := c.buf.data[c.buf.cursor : c.buf.cursor+w]
	if w == 1 || !c.buf.swap {
		copy(dst, src)
	} else {
		for i := 0; i < w; i++ {
			dst[i] = src[w-1-i]
		}
	}

	c.buf.cursor += w
	c.buf.lastPrimitiveSize = w
	return nil
}

// readWidth is the symmetric deserialize path: no growth is attempted, so
// insufficient bytes fail atomically before anything is mutated.
func (c *Codec) readWidth(w int) (uint64, error) {
	p := c.buf.AlignPadding(w)
	need := p + w
	if !c.buf.HasSpace(need) {
		return 0, fmt.Errorf("cdrcodec: not enough memory for %d-byte primitive: %w", w, ErrNotEnoughMemory)
	}
	c.buf.consumeAlign(p, false)

	var tmp [8]byte
	copy(tmp[:w], c.buf.data[c.buf.cursor:c.buf.cursor+w])
	if w > 1 && c.buf.swap {
		reverseBytes(tmp[:w])
	}
	raw := rawFromWidth(w, tmp[:w])

	c.buf.cursor += w
	c.buf.lastPrimitiveSize = w
	return raw, nil
}

// withEndianOverride temporarily sets swap = swap XOR (e != stream_endian)
// for the duration of fn, then restores swap on both the success and
// failure path. stream_endian itself is never touched, so later calls
// observe the original setting exactly as before the override.
func (c *Codec) withEndianOverride(e Endian, fn func() error) error {
	orig := c.buf.swap
	c.buf.swap = orig != (e != c.buf.streamEndian)
	err := fn()
	c.buf.swap = orig
	return err
}

// Octet/char/bool (width 1) -------------------------------------------------

// SerializeOctet writes an unaligned single byte.
func (c *Codec) SerializeOctet(v uint8) error { return c.writeWidth(1, uint64(v)) }

// DeserializeOctet reads an unaligned single byte.
func (c *Codec) DeserializeOctet() (uint8, error) {
	raw, err := c.readWidth(1)
	return uint8(raw), err
}

// SerializeChar writes an unaligned single byte; char and octet share the
// same 1-byte wire path.
func (c *Codec) SerializeChar(v byte) error { return c.writeWidth(1, uint64(v)) }

// DeserializeChar reads an unaligned single byte.
func (c *Codec) DeserializeChar() (byte, error) {
	raw, err := c.readWidth(1)
	return byte(raw), err
}

// SerializeBool writes a bool as a single byte: 1 for true, 0 for false.
func (c *Codec) SerializeBool(v bool) error {
	var raw uint64
	if v {
		raw = 1
	}
	return c.writeWidth(1, raw)
}

// DeserializeBool reads a single byte and fails with ErrBadParam unless it
// is exactly 0 or 1.
func (c *Codec) DeserializeBool() (bool, error) {
	raw, err := c.readWidth(1)
	if err != nil {
		return false, err
	}
	switch raw {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("cdrcodec: bool byte 0x%02x is neither 0 nor 1: %w", raw, ErrBadParam)
	}
}

// Short/ushort (width 2) -----------------------------------------------------

// SerializeShort writes a 16-bit signed integer, aligned to 2 bytes.
func (c *Codec) SerializeShort(v int16) error { return c.writeWidth(2, uint64(uint16(v))) }

// DeserializeShort reads a 16-bit signed integer, aligned to 2 bytes.
func (c *Codec) DeserializeShort() (int16, error) {
	raw, err := c.readWidth(2)
	return int16(uint16(raw)), err
}

// SerializeUShort writes a 16-bit unsigned integer, aligned to 2 bytes.
func (c *Codec) SerializeUShort(v uint16) error { return c.writeWidth(2, uint64(v)) }

// DeserializeUShort reads a 16-bit unsigned integer, aligned to 2 bytes.
func (c *Codec) DeserializeUShort() (uint16, error) {
	raw, err := c.readWidth(2)
	return uint16(raw), err
}

// Long/ulong/float (width 4) -------------------------------------------------

// SerializeLong writes a 32-bit signed integer, aligned to 4 bytes.
func (c *Codec) SerializeLong(v int32) error { return c.writeWidth(4, uint64(uint32(v))) }

// DeserializeLong reads a 32-bit signed integer, aligned to 4 bytes.
func (c *Codec) DeserializeLong() (int32, error) {
	raw, err := c.readWidth(4)
	return int32(uint32(raw)), err
}

// SerializeULong writes a 32-bit unsigned integer, aligned to 4 bytes.
func (c *Codec) SerializeULong(v uint32) error { return c.writeWidth(4, uint64(v)) }

// DeserializeULong reads a 32-bit unsigned integer, aligned to 4 bytes.
func (c *Codec) DeserializeULong() (uint32, error) {
	raw, err := c.readWidth(4)
	return uint32(raw), err
}

// SerializeFloat writes an IEEE-754 single-precision float, aligned to 4
// bytes, via its raw bit pattern.
func (c *Codec) SerializeFloat(v float32) error {
	return c.writeWidth(4, uint64(math.Float32bits(v)))
}

// DeserializeFloat reads an IEEE-754 single-precision float, aligned to 4
// bytes, reinterpreting the wire bits.
func (c *Codec) DeserializeFloat() (float32, error) {
	raw, err := c.readWidth(4)
	return math.Float32frombits(uint32(raw)), err
}

// Longlong/ulonglong/double (width 8) ----------------------------------------

// SerializeLongLong writes a 64-bit signed integer, aligned to 8 bytes.
func (c *Codec) SerializeLongLong(v int64) error { return c.writeWidth(8, uint64(v)) }

// DeserializeLongLong reads a 64-bit signed integer, aligned to 8 bytes.
func (c *Codec) DeserializeLongLong() (int64, error) {
	raw, err := c.readWidth(8)
	return int64(raw), err
}

// SerializeULongLong writes a 64-bit unsigned integer, aligned to 8 bytes.
func (c *Codec) SerializeULongLong(v uint64) error { return c.writeWidth(8, v) }

// DeserializeULongLong reads a 64-bit unsigned integer, aligned to 8 bytes.
func (c *Codec) DeserializeULongLong() (uint64, error) {
	return c.readWidth(8)
}

// SerializeDouble writes an IEEE-754 double-precision float, aligned to 8
// bytes, via its raw bit pattern.
func (c *Codec) SerializeDouble(v float64) error {
	return c.writeWidth(8, math.Float64bits(v))
}

// DeserializeDouble reads an IEEE-754 double-precision float, aligned to 8
// bytes, reinterpreting the wire bits.
func (c *Codec) DeserializeDouble() (float64, error) {
	raw, err := c.readWidth(8)
	return math.Float64frombits(raw), err
}

// Per-call endianness overrides ----------------------------------------------
//
// Each *WithEndian form runs the corresponding primitive operation with a
// transient swap setting derived from e, restoring the Buffer's original
// swap on both the success and failure path. stream_endian is left
// untouched, so a subsequent call without an override observes the
// original behavior exactly as if the override had never been made.

func (c *Codec) SerializeShortWithEndian(v int16, e Endian) error {
	return c.withEndianOverride(e, func() error { return c.SerializeShort(v) })
}

func (c *Codec) SerializeUShortWithEndian(v uint16, e Endian) error {
	return c.withEndianOverride(e, func() error { return c.SerializeUShort(v) })
}

func (c *Codec) SerializeLongWithEndian(v int32, e Endian) error {
	return c.withEndianOverride(e, func() error { return c.SerializeLong(v) })
}

func (c *Codec) SerializeULongWithEndian(v uint32, e Endian) error {
	return c.withEndianOverride(e, func() error { return c.SerializeULong(v) })
}

func (c *Codec) SerializeFloatWithEndian(v float32, e Endian) error {
	return c.withEndianOverride(e, func() error { return c.SerializeFloat(v) })
}

func (c *Codec) SerializeLongLongWithEndian(v int64, e Endian) error {
	return c.withEndianOverride(e, func() error { return c.SerializeLongLong(v) })
}

func (c *Codec) SerializeULongLongWithEndian(v uint64, e Endian) error {
	return c.withEndianOverride(e, func() error { return c.SerializeULongLong(v) })
}

func (c *Codec) SerializeDoubleWithEndian(v float64, e Endian) error {
	return c.withEndianOverride(e, func() error { return c.SerializeDouble(v) })
}

func (c *Codec) DeserializeShortWithEndian(e Endian) (v int16, err error) {
	err = c.withEndianOverride(e, func() error { v, err = c.DeserializeShort(); return err })
	return
}

func (c *Codec) DeserializeUShortWithEndian(e Endian) (v uint16, err error) {
	err = c.withEndianOverride(e, func() error { v, err = c.DeserializeUShort(); return err })
	return
}

func (c *Codec) DeserializeLongWithEndian(e Endian) (v int32, err error) {
	err = c.withEndianOverride(e, func() error { v, err = c.DeserializeLong(); return err })
	return
}

func (c *Codec) DeserializeULongWithEndian(e Endian) (v uint32, err error) {
	err = c.withEndianOverride(e, func() error { v, err = c.DeserializeULong(); return err })
	return
}

func (c *Codec) DeserializeFloatWithEndian(e Endian) (v float32, err error) {
	err = c.withEndianOverride(e, func() error { v, err = c.DeserializeFloat(); return err })
	return
}

func (c *Codec) DeserializeLongLongWithEndian(e Endian) (v int64, err error) {
	err = c.withEndianOverride(e, func() error { v, err = c.DeserializeLongLong(); return err })
	return
}

func (c *Codec) DeserializeULongLongWithEndian(e Endian) (v uint64, err error) {
	err = c.withEndianOverride(e, func() error { v, err = c.DeserializeULongLong(); return err })
	return
}

func (c *Codec) DeserializeDoubleWithEndian(e Endian) (v float64, err error) {
	err = c.withEndianOverride(e, func() error { v, err = c.DeserializeDouble(); return err })
	return
}
