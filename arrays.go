// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cdrcodec

import (
	"fmt"
	"math"
)

// Arrays align once at their head for the element width, not per element:
// this matches OMG CDR's own rule rather than a CORBA-strict per-element
// re-alignment mode (out of scope here).

// writeArrayWidth reserves space for n elements of width w (aligned once at
// the head), then calls extract(i) for each element in turn, reversing its
// bytes when the stream requires a swap.
func (c *Codec) writeArrayWidth(w, n int, extract func(i int) uint64) error {
	total := n * w
	p := c.buf.AlignPadding(w)
	need := total + p
	if !c.buf.ensureSpace(need) {
		return fmt.Errorf("cdrcodec: not enough memory for %d-element width-%d array: %w", n, w, ErrNotEnoughMemory)
	}
	c.buf.consumeAlign(p, true)

	pos := c.buf.cursor
	var tmp [8]byte
	for i := 0; i < n; i++ {
		src := widthBytes(&tmp, w, extract(i))
		dst := c.buf.data[pos : pos+w]
		if c.buf.swap {
			for k := 0; k < w; k++ {
				dst[k] = src[w-1-k]
			}
		} else {
			copy(dst, src)
		}
		pos += w
	}

	c.buf.cursor = pos
	c.buf.lastPrimitiveSize = w
	return nil
}

// readArrayWidth is the symmetric deserialize path: no growth is ever
// attempted, so insufficient bytes fail before anything is mutated.
func (c *Codec) readArrayWidth(w, n int, store func(i int, raw uint64)) error {
	total := n * w
	p := c.buf.AlignPadding(w)
	need := total + p
	if !c.buf.HasSpace(need) {
		return fmt.Errorf("cdrcodec: not enough memory for %d-element width-%d array: %w", n, w, ErrNotEnoughMemory)
	}
	c.buf.consumeAlign(p, false)

	pos := c.buf.cursor
	var tmp [8]byte
	for i := 0; i < n; i++ {
		copy(tmp[:w], c.buf.data[pos:pos+w])
		if c.buf.swap {
			reverseBytes(tmp[:w])
		}
		store(i, rawFromWidth(w, tmp[:w]))
		pos += w
	}

	c.buf.cursor = pos
	c.buf.lastPrimitiveSize = w
	return nil
}

// Octet/char arrays (width 1) block-copy directly; there is no alignment
// or swap to apply.

// SerializeOctetArray block-copies v into the stream unaligned.
func (c *Codec) SerializeOctetArray(v []uint8) error {
	if !c.buf.ensureSpace(len(v)) {
		return fmt.Errorf("cdrcodec: not enough memory for %d-byte octet array: %w", len(v), ErrNotEnoughMemory)
	}
	copy(c.buf.data[c.buf.cursor:c.buf.cursor+len(v)], v)
	c.buf.cursor += len(v)
	c.buf.lastPrimitiveSize = 1
	return nil
}

// DeserializeOctetArray reads len(dst) bytes into dst unaligned.
func (c *Codec) DeserializeOctetArray(dst []uint8) error {
	if !c.buf.HasSpace(len(dst)) {
		return fmt.Errorf("cdrcodec: not enough memory for %d-byte octet array: %w", len(dst), ErrNotEnoughMemory)
	}
	copy(dst, c.buf.data[c.buf.cursor:c.buf.cursor+len(dst)])
	c.buf.cursor += len(dst)
	c.buf.lastPrimitiveSize = 1
	return nil
}

// SerializeCharArray block-copies v into the stream unaligned; char and
// octet arrays share the same 1-byte wire path.
func (c *Codec) SerializeCharArray(v []byte) error { return c.SerializeOctetArray(v) }

// DeserializeCharArray reads len(dst) bytes into dst unaligned.
func (c *Codec) DeserializeCharArray(dst []byte) error { return c.DeserializeOctetArray(dst) }

// SerializeBoolArray writes n one-byte booleans unaligned.
func (c *Codec) SerializeBoolArray(v []bool) error {
	raw := make([]byte, len(v))
	for i, b := range v {
		if b {
			raw[i] = 1
		}
	}
	return c.SerializeOctetArray(raw)
}

// DeserializeBoolArray reads len(dst) one-byte booleans unaligned, failing
// with ErrBadParam if any wire byte is neither 0 nor 1.
func (c *Codec) DeserializeBoolArray(dst []bool) error {
	raw := make([]byte, len(dst))
	if err := c.DeserializeOctetArray(raw); err != nil {
		return err
	}
	for i, b := range raw {
		switch b {
		case 0:
			dst[i] = false
		case 1:
			dst[i] = true
		default:
			return fmt.Errorf("cdrcodec: bool array byte 0x%02x is neither 0 nor 1: %w", b, ErrBadParam)
		}
	}
	return nil
}

// Short/ushort arrays (width 2) ----------------------------------------------

func (c *Codec) SerializeShortArray(v []int16) error {
	return c.writeArrayWidth(2, len(v), func(i int) uint64 { return uint64(uint16(v[i])) })
}

func (c *Codec) DeserializeShortArray(dst []int16) error {
	return c.readArrayWidth(2, len(dst), func(i int, raw uint64) { dst[i] = int16(uint16(raw)) })
}

func (c *Codec) SerializeUShortArray(v []uint16) error {
	return c.writeArrayWidth(2, len(v), func(i int) uint64 { return uint64(v[i]) })
}

func (c *Codec) DeserializeUShortArray(dst []uint16) error {
	return c.readArrayWidth(2, len(dst), func(i int, raw uint64) { dst[i] = uint16(raw) })
}

// Long/ulong/float arrays (width 4) -------------------------------------------

func (c *Codec) SerializeLongArray(v []int32) error {
	return c.writeArrayWidth(4, len(v), func(i int) uint64 { return uint64(uint32(v[i])) })
}

func (c *Codec) DeserializeLongArray(dst []int32) error {
	return c.readArrayWidth(4, len(dst), func(i int, raw uint64) { dst[i] = int32(uint32(raw)) })
}

func (c *Codec) SerializeULongArray(v []uint32) error {
	return c.writeArrayWidth(4, len(v), func(i int) uint64 { return uint64(v[i]) })
}

func (c *Codec) DeserializeULongArray(dst []uint32) error {
	return c.readArrayWidth(4, len(dst), func(i int, raw uint64) { dst[i] = uint32(raw) })
}

func (c *Codec) SerializeFloatArray(v []float32) error {
	return c.writeArrayWidth(4, len(v), func(i int) uint64 { return uint64(math.Float32bits(v[i])) })
}

func (c *Codec) DeserializeFloatArray(dst []float32) error {
	return c.readArrayWidth(4, len(dst), func(i int, raw uint64) { dst[i] = math.Float32frombits(uint32(raw)) })
}

// Longlong/ulonglong/double arrays (width 8) ----------------------------------

func (c *Codec) SerializeLongLongArray(v []int64) error {
	return c.writeArrayWidth(8, len(v), func(i int) uint64 { return uint64(v[i]) })
}

func (c *Codec) DeserializeLongLongArray(dst []int64) error {
	return c.readArrayWidth(8, len(dst), func(i int, raw uint64) { dst[i] = int64(raw) })
}

func (c *Codec) SerializeULongLongArray(v []uint64) error {
	return c.writeArrayWidth(8, len(v), func(i int) uint64 { return v[i] })
}

func (c *Codec) DeserializeULongLongArray(dst []uint64) error {
	return c.readArrayWidth(8, len(dst), func(i int, raw uint64) { dst[i] = raw })
}

func (c *Codec) SerializeDoubleArray(v []float64) error {
	return c.writeArrayWidth(8, len(v), func(i int) uint64 { return math.Float64bits(v[i]) })
}

func (c *Codec) DeserializeDoubleArray(dst []float64) error {
	return c.readArrayWidth(8, len(dst), func(i int, raw uint64) { dst[i] = math.Float64frombits(raw) })
}
