// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cdrcodec

import "fmt"

// seqElem is the set of primitive element types a Sequence* helper can
// dispatch to, collapsing what would otherwise be eight near-identical
// type×(serialize|deserialize) pairs into one generic pair per direction.
type seqElem interface {
	~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// writeSeqArray dispatches to the concrete *Array serializer for T's
// instantiation. T is always one of the types named by seqElem, so the
// default case is unreachable outside a caller who invents a new
// instantiation without adding the matching case here.
func writeSeqArray[T seqElem](c *Codec, v []T) error {
	switch vv := any(v).(type) {
	case []int16:
		return c.SerializeShortArray(vv)
	case []uint16:
		return c.SerializeUShortArray(vv)
	case []int32:
		return c.SerializeLongArray(vv)
	case []uint32:
		return c.SerializeULongArray(vv)
	case []int64:
		return c.SerializeLongLongArray(vv)
	case []uint64:
		return c.SerializeULongLongArray(vv)
	case []float32:
		return c.SerializeFloatArray(vv)
	case []float64:
		return c.SerializeDoubleArray(vv)
	default:
		panic(fmt.Sprintf("cdrcodec: unsupported sequence element type %T", v))
	}
}

func readSeqArray[T seqElem](c *Codec, dst []T) error {
	switch vv := any(dst).(type) {
	case []int16:
		return c.DeserializeShortArray(vv)
	case []uint16:
		return c.DeserializeUShortArray(vv)
	case []int32:
		return c.DeserializeLongArray(vv)
	case []uint32:
		return c.DeserializeULongArray(vv)
	case []int64:
		return c.DeserializeLongLongArray(vv)
	case []uint64:
		return c.DeserializeULongLongArray(vv)
	case []float32:
		return c.DeserializeFloatArray(vv)
	case []float64:
		return c.DeserializeDoubleArray(vv)
	default:
		panic(fmt.Sprintf("cdrcodec: unsupported sequence element type %T", dst))
	}
}

// SerializeSequence writes a uint32 element count followed by v encoded as
// an array (aligned once at its head). Any failure restores the pre-call
// Buffer state.
func SerializeSequence[T seqElem](c *Codec, v []T) error {
	snap := c.buf.Snapshot()
	if err := c.SerializeULong(uint32(len(v))); err != nil {
		c.buf.Restore(snap)
		return err
	}
	if err := writeSeqArray(c, v); err != nil {
		c.buf.Restore(snap)
		return err
	}
	return nil
}

// SequenceAllocator grows (or replaces) destination storage for a bounded
// sequence decode once the wire element count is known. It is called with
// the wire count and returns a slice of exactly that length to decode into.
type SequenceAllocator[T any] func(count int) []T

// DeserializeSequence reads a uint32 element count, then the element
// array. If alloc is non-nil it is used to obtain destination storage of
// the wire's length regardless of maxElements. If alloc is nil, a count
// exceeding maxElements restores the pre-call Buffer state and fails with
// ErrNotEnoughMemory without allocating; otherwise a slice of exactly that
// length is allocated automatically.
func DeserializeSequence[T seqElem](c *Codec, maxElements int, alloc SequenceAllocator[T]) ([]T, error) {
	snap := c.buf.Snapshot()
	count, err := c.DeserializeULong()
	if err != nil {
		c.buf.Restore(snap)
		return nil, err
	}
	n := int(count)

	var dst []T
	if alloc != nil {
		dst = alloc(n)
	} else {
		if n > maxElements {
			c.buf.Restore(snap)
			return nil, fmt.Errorf("cdrcodec: sequence count %d exceeds max %d: %w", n, maxElements, ErrNotEnoughMemory)
		}
		dst = make([]T, n)
	}

	if err := readSeqArray(c, dst); err != nil {
		c.buf.Restore(snap)
		return nil, err
	}
	return dst, nil
}

// Octet, char and bool sequences are not numeric in the seqElem sense
// (bool needs wire validation; octet/char share the unaligned byte path),
// so they get their own thin pair rather than an instantiation of the
// generic helpers above.

// SerializeOctetSequence writes a uint32 count followed by the raw bytes.
func (c *Codec) SerializeOctetSequence(v []uint8) error {
	snap := c.buf.Snapshot()
	if err := c.SerializeULong(uint32(len(v))); err != nil {
		c.buf.Restore(snap)
		return err
	}
	if err := c.SerializeOctetArray(v); err != nil {
		c.buf.Restore(snap)
		return err
	}
	return nil
}

// DeserializeOctetSequence reads a uint32 count then that many bytes, per
// the same bounded/allocator rule as DeserializeSequence.
func (c *Codec) DeserializeOctetSequence(maxElements int, alloc SequenceAllocator[uint8]) ([]uint8, error) {
	snap := c.buf.Snapshot()
	count, err := c.DeserializeULong()
	if err != nil {
		c.buf.Restore(snap)
		return nil, err
	}
	n := int(count)

	var dst []uint8
	if alloc != nil {
		dst = alloc(n)
	} else {
		if n > maxElements {
			c.buf.Restore(snap)
			return nil, fmt.Errorf("cdrcodec: sequence count %d exceeds max %d: %w", n, maxElements, ErrNotEnoughMemory)
		}
		dst = make([]uint8, n)
	}

	if err := c.DeserializeOctetArray(dst); err != nil {
		c.buf.Restore(snap)
		return nil, err
	}
	return dst, nil
}

// SerializeBoolSequence writes a uint32 count followed by one byte per
// element.
func (c *Codec) SerializeBoolSequence(v []bool) error {
	snap := c.buf.Snapshot()
	if err := c.SerializeULong(uint32(len(v))); err != nil {
		c.buf.Restore(snap)
		return err
	}
	if err := c.SerializeBoolArray(v); err != nil {
		c.buf.Restore(snap)
		return err
	}
	return nil
}

// DeserializeBoolSequence reads a uint32 count then that many bool bytes,
// per the same bounded/allocator rule as DeserializeSequence.
func (c *Codec) DeserializeBoolSequence(maxElements int, alloc SequenceAllocator[bool]) ([]bool, error) {
	snap := c.buf.Snapshot()
	count, err := c.DeserializeULong()
	if err != nil {
		c.buf.Restore(snap)
		return nil, err
	}
	n := int(count)

	var dst []bool
	if alloc != nil {
		dst = alloc(n)
	} else {
		if n > maxElements {
			c.buf.Restore(snap)
			return nil, fmt.Errorf("cdrcodec: sequence count %d exceeds max %d: %w", n, maxElements, ErrNotEnoughMemory)
		}
		dst = make([]bool, n)
	}

	if err := c.DeserializeBoolArray(dst); err != nil {
		c.buf.Restore(snap)
		return nil, err
	}
	return dst, nil
}
