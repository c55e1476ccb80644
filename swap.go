// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cdrcodec

import (
	"encoding/binary"
	"fmt"
)

// widthBytes renders raw's low w bytes in host-native order into tmp[:w],
// the single width-parameterized helper every primitive, array, string and
// sequence operation is built on (per the design note collapsing the
// source's one-function-per-type-per-width duplication).
func widthBytes(tmp *[8]byte, w int, raw uint64) []byte {
	switch w {
	case 1:
		tmp[0] = byte(raw)
	case 2:
		binary.NativeEndian.PutUint16(tmp[:2], uint16(raw))
	case 4:
		binary.NativeEndian.PutUint32(tmp[:4], uint32(raw))
	case 8:
		binary.NativeEndian.PutUint64(tmp[:8], raw)
	default:
		panic(fmt.Sprintf("cdrcodec: unsupported primitive width %d", w))
	}
	return tmp[:w]
}

// rawFromWidth is the inverse of widthBytes: it interprets src[:w] (host
// order) as an unsigned integer of width w, widened to uint64.
func rawFromWidth(w int, src []byte) uint64 {
	switch w {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(binary.NativeEndian.Uint16(src[:2]))
	case 4:
		return uint64(binary.NativeEndian.Uint32(src[:4]))
	case 8:
		return binary.NativeEndian.Uint64(src[:8])
	default:
		panic(fmt.Sprintf("cdrcodec: unsupported primitive width %d", w))
	}
}

// reverseBytes reverses b in place; w == 1 is a no-op since single bytes
// are never swapped.
func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
