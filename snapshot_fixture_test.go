// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import "encoding/binary"

// fixtureAttrValue is one attribute id paired with its raw encoded values,
// used to build synthetic object records for tests.
type fixtureAttrValue struct {
	id     uint32
	values [][]byte
}

// fixtureObject describes one object record to bake into a test snapshot.
type fixtureObject struct {
	prefixID uint32
	suffix   string
	attrs    []fixtureAttrValue
}

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// encodeStringValue produces the raw blob a String-syntax attribute value
// is stored as: plain UTF-16LE bytes, no inner length prefix (the value's
// own blobLen field in the object record carries that).
func encodeStringValue(s string) []byte {
	full := encodeUnicodeString(s)
	return full[4:] // strip ReadUnicode's own length prefix
}

func encodeIntegerValue(v int64) []byte {
	return u64le(uint64(v))
}

func encodeBooleanValue(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

func buildObjectRecord(obj fixtureObject) []byte {
	var body []byte
	body = append(body, u32le(obj.prefixID)...)
	body = append(body, encodeUnicodeString(obj.suffix)...)
	body = append(body, u32le(uint32(len(obj.attrs)))...)
	for _, a := range obj.attrs {
		body = append(body, u32le(a.id)...)
		body = append(body, u32le(uint32(len(a.values)))...)
		for _, v := range a.values {
			body = append(body, u32le(uint32(len(v)))...)
			body = append(body, v...)
		}
	}
	var rec []byte
	rec = append(rec, u32le(uint32(len(body)))...)
	rec = append(rec, body...)
	return rec
}

// buildSnapshotBytes assembles a complete, self-consistent snapshot file
// from an attribute catalog, a DN prefix table, and a set of objects.
func buildSnapshotBytes(attrs []AttributeDef, prefixes []string, objects []fixtureObject) []byte {
	var schemaSection []byte
	for _, a := range attrs {
		schemaSection = append(schemaSection, encodeUnicodeString(a.Name)...)
		schemaSection = append(schemaSection, u32le(uint32(a.Syntax))...)
		if a.SingleValued {
			schemaSection = append(schemaSection, 1)
		} else {
			schemaSection = append(schemaSection, 0)
		}
	}

	var classSection []byte // no classes in these fixtures

	var prefixSection []byte
	for _, p := range prefixes {
		prefixSection = append(prefixSection, encodeUnicodeString(p)...)
	}

	var objectSection []byte
	for _, o := range objects {
		objectSection = append(objectSection, buildObjectRecord(o)...)
	}

	const headerFixedLen = 4 + 4 + 8 + 4 + 4*2*4 // signature+version+filetime+empty sourceDN+4 pairs
	schemaOffset := uint32(headerFixedLen)
	classOffset := schemaOffset + uint32(len(schemaSection))
	prefixOffset := classOffset + uint32(len(classSection))
	objectOffset := prefixOffset + uint32(len(prefixSection))

	var h []byte
	h = append(h, []byte(snapshotSignature)...)
	h = append(h, u32le(1)...)       // version
	h = append(h, u64le(0)...)       // created = "never" sentinel
	h = append(h, encodeUnicodeString("")...) // empty source DN

	h = append(h, u32le(schemaOffset)...)
	h = append(h, u32le(uint32(len(attrs)))...)
	h = append(h, u32le(classOffset)...)
	h = append(h, u32le(0)...)
	h = append(h, u32le(prefixOffset)...)
	h = append(h, u32le(uint32(len(prefixes)))...)
	h = append(h, u32le(objectOffset)...)
	h = append(h, u32le(uint32(len(objects)))...)

	var out []byte
	out = append(out, h...)
	out = append(out, schemaSection...)
	out = append(out, classSection...)
	out = append(out, prefixSection...)
	out = append(out, objectSection...)
	return out
}
