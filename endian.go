// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cdrcodec

import "encoding/binary"

// Endian represents the declared byte order of a CDR stream.
type Endian bool

const (
	// BigEndian represents big-endian byte order (encapsulation kind bit 0).
	BigEndian Endian = false
	// LittleEndian represents little-endian byte order (encapsulation kind bit 1).
	LittleEndian Endian = true
)

// hostEndian is the running process's native byte order, probed once at
// package init by writing a known uint16 through binary.NativeEndian and
// inspecting the first byte. This avoids both compile-time platform macros
// and unsafe.Pointer tricks.
var hostEndian = detectHostEndian()

func detectHostEndian() Endian {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 0x0102)
	if buf[0] == 0x02 {
		return LittleEndian
	}
	return BigEndian
}

// String renders the endianness for diagnostics.
func (e Endian) String() string {
	if e == LittleEndian {
		return "LittleEndian"
	}
	return "BigEndian"
}
