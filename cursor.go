// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import (
	"encoding/binary"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ByteCursor is a positional reader over a snapshot's bytes. It never
// allocates per read except where the caller explicitly asks for an owned
// string or byte slice, and every read is bounds-checked against the
// underlying buffer rather than trusting the file.
//
// A ByteCursor must not be shared across goroutines: it carries mutable
// position state and the snapshot core is single-threaded by design.
type ByteCursor struct {
	data []byte
	pos  uint32
}

// NewByteCursor wraps data (a whole snapshot file, memory-mapped or
// in-memory) for positional reading starting at offset 0.
func NewByteCursor(data []byte) *ByteCursor {
	return &ByteCursor{data: data}
}

// Len returns the total number of bytes in the underlying buffer.
func (c *ByteCursor) Len() uint32 {
	return uint32(len(c.data))
}

// Position returns the cursor's current offset.
func (c *ByteCursor) Position() uint32 {
	return c.pos
}

// Seek moves the cursor to an absolute offset. It does not validate the
// offset against the buffer length; the next read will fail with
// ErrTruncated if it doesn't fit.
func (c *ByteCursor) Seek(offset uint32) {
	c.pos = offset
}

// Skip advances the cursor by n bytes without reading them.
func (c *ByteCursor) Skip(n uint32) {
	c.pos += n
}

func (c *ByteCursor) remaining() uint32 {
	if c.pos > uint32(len(c.data)) {
		return 0
	}
	return uint32(len(c.data)) - c.pos
}

// ReadBytes returns a slice of n raw bytes at the cursor and advances past
// them. The returned slice aliases the cursor's backing buffer; callers
// that need to retain it past the next mutation should copy it.
func (c *ByteCursor) ReadBytes(n uint32) ([]byte, error) {
	if c.remaining() < n {
		return nil, ErrTruncated
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadU8 reads an unsigned 8-bit integer.
func (c *ByteCursor) ReadU8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a little-endian unsigned 16-bit integer.
func (c *ByteCursor) ReadU16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a little-endian unsigned 32-bit integer.
func (c *ByteCursor) ReadU32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads a little-endian unsigned 64-bit integer.
func (c *ByteCursor) ReadU64() (uint64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI32 reads a little-endian signed 32-bit integer.
func (c *ByteCursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// ReadI64 reads a little-endian signed 64-bit integer.
func (c *ByteCursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

// ReadCString reads a single-byte-per-character NUL-terminated string.
// The snapshot layout read by this package has no such field (header,
// schema and object strings are all UTF-16LE), so nothing here calls it.
func (c *ByteCursor) ReadCString() (string, error) {
	start := c.pos
	for {
		if c.remaining() == 0 {
			return "", ErrTruncated
		}
		if c.data[c.pos] == 0 {
			s := string(c.data[start:c.pos])
			c.pos++
			return s, nil
		}
		c.pos++
	}
}

// utf16leDecoder substitutes U+FFFD for invalid surrogate pairs instead of
// failing, per spec.md §4.2's UTF-16LE replacement strategy.
var utf16leDecoder = encoding.ReplaceUnsupported(
	unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)).NewDecoder()

// ReadUnicode reads a length-prefixed UTF-16LE string: a 32-bit
// little-endian character count followed by that many 16-bit code units,
// with no trailing NUL (per spec.md §6). Invalid surrogate pairs decode to
// U+FFFD rather than failing.
func (c *ByteCursor) ReadUnicode() (string, error) {
	count, err := c.ReadU32()
	if err != nil {
		return "", err
	}
	raw, err := c.ReadBytes(count * 2)
	if err != nil {
		return "", err
	}
	return decodeUTF16Blob(raw), nil
}

// decodeUTF16Blob decodes a raw UTF-16LE byte span with no inner length
// prefix of its own (the caller already knows its extent, e.g. from an
// object record's value-length field). Used for String-syntax attribute
// values, where the outer value length already bounds the blob.
func decodeUTF16Blob(raw []byte) string {
	out, err := utf16leDecoder.Bytes(raw)
	if err != nil {
		// Never treat a string value as fatal; fall back to a lossy view
		// of the raw bytes rather than aborting the object record.
		return string(raw)
	}
	return string(out)
}
