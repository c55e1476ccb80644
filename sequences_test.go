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

func TestSequenceRoundTrip(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)

	require.NoError(t, SerializeSequence(c, []int32{1, 2, 3, 4}))

	b.cursor = 0
	got, err := DeserializeSequence[int32](c, 16, nil)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4}, got)
}

func TestSequenceBoundedRejectsOversizeCount(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)
	require.NoError(t, SerializeSequence(c, []uint16{1, 2, 3}))

	b.cursor = 0
	before := b.Snapshot()
	_, err := DeserializeSequence[uint16](c, 2, nil)
	assert.ErrorIs(t, err, ErrNotEnoughMemory)
	assert.Equal(t, before, b.Snapshot())
}

func TestSequenceAllocatorOverridesMaxElements(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)
	require.NoError(t, SerializeSequence(c, []float64{1.5, 2.5, 3.5}))

	b.cursor = 0
	var allocatedFor int
	alloc := func(n int) []float64 {
		allocatedFor = n
		return make([]float64, n)
	}
	got, err := DeserializeSequence[float64](c, 1, alloc)
	require.NoError(t, err)
	assert.Equal(t, 3, allocatedFor)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, got)
}

func TestOctetSequenceRoundTrip(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)
	require.NoError(t, c.SerializeOctetSequence([]byte("payload")))

	b.cursor = 0
	got, err := c.DeserializeOctetSequence(32, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestBoolSequenceRoundTrip(t *testing.T) {
	b := NewBuffer(LittleEndian)
	c := NewCodec(b, KindCORBA)
	require.NoError(t, c.SerializeBoolSequence([]bool{true, false, true}))

	b.cursor = 0
	got, err := c.DeserializeBoolSequence(8, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, got)
}

func TestSequenceDecodeAtomicOnFailure(t *testing.T) {
	// Count says 10 elements but only 1 int32's worth of bytes follow.
	b := NewBufferFrom([]byte{0x0A, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}, LittleEndian)
	c := NewCodec(b, KindCORBA)

	before := b.Snapshot()
	alloc := func(n int) []int32 { return make([]int32, n) }
	_, err := DeserializeSequence[int32](c, 100, alloc)
	assert.ErrorIs(t, err, ErrNotEnoughMemory)
	assert.Equal(t, before, b.Snapshot())
	assert.Equal(t, 0, b.Cursor())
}
