// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cdrcodec

import "errors"

// ErrNotEnoughMemory is returned when an encode cannot reserve space (and,
// for an external/fixed buffer or after a failed grow, cannot recover) or a
// decode reaches the end of the available input before a primitive, array,
// string or sequence is fully read.
var ErrNotEnoughMemory = errors.New("cdrcodec: not enough memory")

// ErrBadParam is returned when a decoded value violates the wire format:
// a bool byte that is neither 0 nor 1, or a WITH_PL encapsulation flag on a
// non-DDS stream. Codec.Jump also returns it for a negative length.
var ErrBadParam = errors.New("cdrcodec: bad parameter")
