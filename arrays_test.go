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

func TestArrayAlignsOnceAtHeadNotPerElement(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)

	require.NoError(t, c.SerializeOctet(1))
	require.NoError(t, c.SerializeLongArray([]int32{10, 20, 30}))

	// One octet, then 3 pad bytes to reach a 4-byte boundary, then 3*4
	// bytes of payload with no further padding between elements.
	assert.Equal(t, 1+3+12, b.Cursor())
}

func TestOctetArrayRoundTrip(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)
	src := []byte{1, 2, 3, 4, 5}
	require.NoError(t, c.SerializeOctetArray(src))

	b.cursor = 0
	dst := make([]byte, len(src))
	require.NoError(t, c.DeserializeOctetArray(dst))
	assert.Equal(t, src, dst)
}

func TestShortArrayEndianSwap(t *testing.T) {
	little := NewBuffer(LittleEndian)
	c := NewCodec(little, KindCORBA)
	require.NoError(t, c.SerializeUShortArray([]uint16{0x0102, 0x0304}))

	big := NewBufferFrom(little.Bytes(), BigEndian)
	cBig := NewCodec(big, KindCORBA)
	dst := make([]uint16, 2)
	require.NoError(t, cBig.DeserializeUShortArray(dst))
	assert.Equal(t, []uint16{0x0201, 0x0403}, dst)
}

func TestFloatAndDoubleArrayRoundTrip(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)

	floats := []float32{1.5, -2.25, 3.125}
	doubles := []float64{1.0 / 3.0, -42.5}

	require.NoError(t, c.SerializeFloatArray(floats))
	require.NoError(t, c.SerializeDoubleArray(doubles))

	b.cursor = 0
	gotFloats := make([]float32, len(floats))
	require.NoError(t, c.DeserializeFloatArray(gotFloats))
	assert.Equal(t, floats, gotFloats)

	gotDoubles := make([]float64, len(doubles))
	require.NoError(t, c.DeserializeDoubleArray(gotDoubles))
	assert.Equal(t, doubles, gotDoubles)
}

func TestBoolArrayRejectsNonBooleanByte(t *testing.T) {
	b := NewBufferFrom([]byte{0, 1, 2}, LittleEndian)
	c := NewCodec(b, KindCORBA)

	dst := make([]bool, 3)
	err := c.DeserializeBoolArray(dst)
	assert.ErrorIs(t, err, ErrBadParam)
}

func TestArrayGrowsInternalBufferOnEncode(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)

	values := make([]int64, 100)
	for i := range values {
		values[i] = int64(i)
	}
	require.NoError(t, c.SerializeLongLongArray(values))
	assert.GreaterOrEqual(t, b.Capacity(), 800)

	b.cursor = 0
	got := make([]int64, 100)
	require.NoError(t, c.DeserializeLongLongArray(got))
	assert.Equal(t, values, got)
}

func TestArrayDecodeFailsOnExternalBufferWithoutGrowth(t *testing.T) {
	b := NewBufferFrom(make([]byte, 4), LittleEndian)
	c := NewCodec(b, KindCORBA)

	dst := make([]int32, 2)
	err := c.DeserializeLongArray(dst)
	assert.ErrorIs(t, err, ErrNotEnoughMemory)
}
