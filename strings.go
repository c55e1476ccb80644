// Copyright 2025 The Gromb Authors. All rights reserved.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cdrcodec

// SerializeString writes a uint32 length followed by the string's bytes.
// The length counts only the string's own bytes: unlike a C string, no
// terminating NUL is appended or counted, matching the source's
// string.length() behavior. Any failure restores the pre-call Buffer
// state.
func (c *Codec) SerializeString(s string) error {
	snap := c.buf.Snapshot()
	if err := c.SerializeULong(uint32(len(s))); err != nil {
		c.buf.Restore(snap)
		return err
	}
	if err := c.SerializeOctetArray([]byte(s)); err != nil {
		c.buf.Restore(snap)
		return err
	}
	return nil
}

// DeserializeString reads a uint32 length, then that many bytes. A zero
// length yields the empty string without reading further. If the trailing
// byte is a NUL it is stripped, so the result tolerates either form the
// writer may have produced (length excluding or including a terminator):
// the returned string has length len or len-1. Any failure restores the
// pre-call Buffer state.
func (c *Codec) DeserializeString() (string, error) {
	snap := c.buf.Snapshot()
	length, err := c.DeserializeULong()
	if err != nil {
		c.buf.Restore(snap)
		return "", err
	}
	if length == 0 {
		return "", nil
	}

	raw := make([]byte, length)
	if err := c.DeserializeOctetArray(raw); err != nil {
		c.buf.Restore(snap)
		return "", err
	}

	if raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-1]
	}
	return string(raw), nil
}
