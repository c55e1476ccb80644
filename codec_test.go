// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cdrcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S4: DDS encapsulation header for a little-endian PL stream with
// options = 0x0000: 00 03 00 00.
func TestScenarioS4_DDSEncapsulationHeaderBytes(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindDDS)
	c.SetPlFlag(WithPL)

	require.NoError(t, c.WriteEncapsulation())
	assert.Equal(t, []byte{0x00, 0x03, 0x00, 0x00}, b.Bytes())
}

func TestWriteReadEncapsulationRoundTrips(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindDDS)
	c.SetPlFlag(WithPL)
	c.SetOptions(0x1234)
	require.NoError(t, c.WriteEncapsulation())

	readBuf := NewBufferFrom(b.Bytes(), BigEndian) // declared endian is irrelevant; wire wins.
	rc := NewCodec(readBuf, KindDDS)
	require.NoError(t, rc.ReadEncapsulation())

	assert.Equal(t, LittleEndian, readBuf.StreamEndian())
	assert.Equal(t, WithPL, rc.PlFlag())
	assert.Equal(t, uint16(0x1234), rc.Options())
}

// Encapsulation resets alignment: the next primitive aligns as if at
// offset 0, even though the header itself consumed 4 bytes.
func TestEncapsulationResetsAlignment(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindDDS)
	require.NoError(t, c.WriteEncapsulation())

	require.NoError(t, c.SerializeOctet(1))
	cursorBeforeLong := b.Cursor()
	require.NoError(t, c.SerializeLong(2))

	// One octet after the header means 3 padding bytes before the long,
	// exactly as if the header had never been written.
	assert.Equal(t, 3, b.Cursor()-cursorBeforeLong-4)
}

func TestReadEncapsulationAdoptsWireEndianness(t *testing.T) {
	// Wire says little-endian (kind byte 0x01) while the Buffer was told
	// it's big-endian: the reader must flip to match the wire.
	b := NewBufferFrom([]byte{0x00, 0x01, 0x00, 0x00}, BigEndian)
	c := NewCodec(b, KindDDS)

	require.NoError(t, c.ReadEncapsulation())
	assert.Equal(t, LittleEndian, b.StreamEndian())
}

func TestReadEncapsulationRejectsWithPLOnCORBA(t *testing.T) {
	// Kind byte 0x03: little-endian + WITH_PL, fed to a CORBA (non-DDS)
	// Codec, which has no dummy byte and no options.
	b := NewBufferFrom([]byte{0x03}, BigEndian)
	c := NewCodec(b, KindCORBA)

	before := b.Snapshot()
	err := c.ReadEncapsulation()
	assert.ErrorIs(t, err, ErrBadParam)
	assert.Equal(t, before, b.Snapshot())
}

func TestReadEncapsulationFailureRestoresState(t *testing.T) {
	// Truncated DDS header: dummy byte only, nothing else.
	b := NewBufferFrom([]byte{0x00}, LittleEndian)
	c := NewCodec(b, KindDDS)

	before := b.Snapshot()
	err := c.ReadEncapsulation()
	assert.ErrorIs(t, err, ErrNotEnoughMemory)
	assert.Equal(t, before, b.Snapshot())
	assert.Equal(t, 0, b.Cursor())
}

func TestJumpAdvancesWithoutTouchingLastPrimitiveSize(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)
	require.NoError(t, c.SerializeLong(1))
	sizeBefore := b.LastPrimitiveSize()

	require.NoError(t, c.Jump(10))
	assert.Equal(t, sizeBefore, b.LastPrimitiveSize())
	assert.Equal(t, 14, b.Cursor())
}

func TestJumpChecksTrueRemainingNotSizeofN(t *testing.T) {
	// The source bug checked remaining >= sizeof(numBytes) (4 bytes); a
	// jump of 3 into a 3-byte-remaining buffer must succeed here even
	// though sizeof(int)==4 would have failed the buggy check.
	b := NewBufferFrom(make([]byte, 3), LittleEndian)
	c := NewCodec(b, KindCORBA)

	require.NoError(t, c.Jump(3))
	assert.Equal(t, 3, b.Cursor())

	b2 := NewBufferFrom(make([]byte, 3), LittleEndian)
	c2 := NewCodec(b2, KindCORBA)
	err := c2.Jump(4)
	assert.ErrorIs(t, err, ErrNotEnoughMemory)
	assert.Equal(t, 0, b2.Cursor())
}

func TestCodecKindAndBufferAccessors(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindDDS)
	assert.Equal(t, KindDDS, c.Kind())
	assert.Same(t, b, c.Buffer())
}
