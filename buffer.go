// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cdrcodec implements the OMG Common Data Representation (CDR) wire
// format, including the DDS/RTPS encapsulation header variant.
//
// Buffer structure:
//
//	     <------------------------------[len(data) == capacity]--------------------------->
//	     <-----------------[origin]----->
//	     |--------------------------------+---------------------------------------------|
//	     |**********[aligned away]********|============[cursor advances here]===========|
//	     |--------------------------------+---------------------------------------------|
//	     ^                                ^                                              ^
//	     0                             origin                                        capacity
//	                                  (cursor >= origin, alignment measured from origin)
//
// A Buffer owns a contiguous byte region (Internal, growable by
// reallocation) or borrows one (External, fixed capacity). A Codec is a
// thin, stateless-apart-from-header controller that reads and writes typed
// CDR values through a Buffer, maintaining the alignment and endianness
// discipline described in the package's design notes.
package cdrcodec

import "fmt"

// DefaultGrowChunk is the minimum number of bytes an Internal Buffer adds
// per reallocation: a conservative, additive growth policy that
// deliberately does not double.
var DefaultGrowChunk = 200

// ownership records whether a Buffer owns a growable allocation or borrows
// a fixed-capacity region from the caller.
type ownership int

const (
	ownershipInternal ownership = iota
	ownershipExternal
)

// Buffer is a cursor over a contiguous byte region that maintains the CDR
// alignment discipline, swaps byte order transparently, and grows its
// backing storage on demand when it owns it.
type Buffer struct {
	data              []byte
	cursor            int
	origin            int
	lastPrimitiveSize int
	streamEndian      Endian
	swap              bool
	owns              ownership
}

// NewBuffer creates an empty, growable (Internal) Buffer declared to hold a
// stream of the given endianness. Its backing storage is allocated lazily,
// on first write, via Grow.
func NewBuffer(endian Endian) *Buffer {
	return &Buffer{
		streamEndian: endian,
		swap:         endian != hostEndian,
		owns:         ownershipInternal,
	}
}

// NewBufferFrom wraps an existing byte slice as a fixed-capacity (External)
// Buffer. The slice's length is the Buffer's capacity; growth is never
// attempted and insufficient space is always a failure.
func NewBufferFrom(bytes []byte, endian Endian) *Buffer {
	return &Buffer{
		data:         bytes,
		streamEndian: endian,
		swap:         endian != hostEndian,
		owns:         ownershipExternal,
	}
}

// Reset rewinds the Buffer for reuse: cursor and origin return to zero,
// last_primitive_size clears, and swap is recomputed from the declared
// stream endianness against the host. The backing storage (owned or
// borrowed) is left untouched, so an Internal Buffer keeps its capacity.
func (b *Buffer) Reset() {
	b.cursor = 0
	b.origin = 0
	b.lastPrimitiveSize = 0
	b.swap = b.streamEndian != hostEndian
}

// Capacity returns the total size of the backing region.
func (b *Buffer) Capacity() int { return len(b.data) }

// Cursor returns the current read/write offset.
func (b *Buffer) Cursor() int { return b.cursor }

// Origin returns the byte offset alignment is measured from.
func (b *Buffer) Origin() int { return b.origin }

// StreamEndian returns the stream's declared byte order.
func (b *Buffer) StreamEndian() Endian { return b.streamEndian }

// Swap reports whether primitives are currently byte-swapped against the
// host's native order.
func (b *Buffer) Swap() bool { return b.swap }

// LastPrimitiveSize returns the width, in bytes, of the most recently
// completed primitive transfer (0 before any transfer).
func (b *Buffer) LastPrimitiveSize() int { return b.lastPrimitiveSize }

// Internal reports whether the Buffer owns a growable allocation, as
// opposed to borrowing a fixed External region.
func (b *Buffer) Internal() bool { return b.owns == ownershipInternal }

// Bytes returns the slice of bytes written or read so far, [0:cursor).
func (b *Buffer) Bytes() []byte { return b.data[:b.cursor] }

// Remaining returns the number of bytes available between the cursor and
// the end of the backing region.
func (b *Buffer) Remaining() int { return len(b.data) - b.cursor }

// HasSpace reports whether n more bytes fit before the end of the region.
func (b *Buffer) HasSpace(n int) bool { return n <= b.Remaining() }

// AlignPadding computes the number of padding bytes required before a
// primitive of width w, measured from origin: the smallest non-negative p
// such that (cursor - origin + p) is a multiple of w. Widths <= 1 never
// need padding.
func (b *Buffer) AlignPadding(w int) int {
	if w <= 1 {
		return 0
	}
	offset := b.cursor - b.origin
	rem := offset % w
	if rem == 0 {
		return 0
	}
	return w - rem
}

// consumeAlign advances the cursor by p padding bytes. On write paths the
// skipped region is zeroed; on read paths it is left untouched so that
// decoding never mutates bytes it has not consumed.
func (b *Buffer) consumeAlign(p int, zero bool) {
	if p == 0 {
		return
	}
	if zero {
		clear := b.data[b.cursor : b.cursor+p]
		for i := range clear {
			clear[i] = 0
		}
	}
	b.cursor += p
}

// ResetAlignment sets origin = cursor. Used after writing or reading the
// encapsulation header so that payload alignment restarts at the first
// payload byte, per the CDR specification.
func (b *Buffer) ResetAlignment() {
	b.origin = b.cursor
}

// Grow ensures Remaining() >= minInc. On an Internal Buffer it reallocates
// by max(minInc, DefaultGrowChunk) bytes beyond the current capacity,
// preserving every byte already written and the numeric values of cursor
// and origin. On an External Buffer it never reallocates and returns false
// whenever the existing capacity is insufficient.
func (b *Buffer) Grow(minInc int) bool {
	if b.Remaining() >= minInc {
		return true
	}
	if b.owns == ownershipExternal {
		return false
	}
	inc := minInc
	if inc < DefaultGrowChunk {
		inc = DefaultGrowChunk
	}
	grown := make([]byte, len(b.data)+inc)
	copy(grown, b.data)
	b.data = grown
	return true
}

// ensureSpace reserves need bytes at the cursor, growing an Internal Buffer
// if necessary, and reports whether the space is now available.
func (b *Buffer) ensureSpace(need int) bool {
	if b.HasSpace(need) {
		return true
	}
	return b.Grow(need)
}

// Snapshot is an opaque capture of the full observable Buffer state,
// sufficient to undo a failed multi-step Codec operation (encapsulation
// read, string/sequence decode) via Restore.
type Snapshot struct {
	cursor            int
	origin            int
	lastPrimitiveSize int
	remaining         int
	swap              bool
	streamEndian      Endian
}

// Snapshot captures the Buffer's current state.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{
		cursor:            b.cursor,
		origin:            b.origin,
		lastPrimitiveSize: b.lastPrimitiveSize,
		remaining:         b.Remaining(),
		swap:              b.swap,
		streamEndian:      b.streamEndian,
	}
}

// Restore reinstates a previously captured Snapshot. Only cursor, origin,
// swap, stream_endian and last_primitive_size are mutated: a snapshot is
// only ever valid against the Buffer it was taken from, and failed
// operations never leave partial growth in place, so the backing storage
// itself needs no repair. stream_endian is included because
// ReadEncapsulation may adopt the wire's declared endianness before later
// failing (e.g. on an illegal WITH_PL flag), and that adoption must unwind
// too.
func (b *Buffer) Restore(s Snapshot) {
	b.cursor = s.cursor
	b.origin = s.origin
	b.lastPrimitiveSize = s.lastPrimitiveSize
	b.swap = s.swap
	b.streamEndian = s.streamEndian
}

// CurrentPosition returns the backing bytes from the cursor onward. On an
// Internal Buffer this slice is invalidated by any later operation that
// triggers Grow (the backing array may have been reallocated); callers
// that retain it across such an operation must re-query. External Buffers
// never relocate, so the slice stays valid until the Buffer is discarded.
func (b *Buffer) CurrentPosition() []byte {
	return b.data[b.cursor:]
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer{cursor=%d origin=%d cap=%d endian=%s swap=%t}",
		b.cursor, b.origin, len(b.data), b.streamEndian, b.swap)
}
