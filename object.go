// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

// Object is one directory object decoded from the snapshot's object
// section: a distinguished name and an ordered mapping from attribute id
// to a non-empty sequence of values. An attribute absent from the mapping
// is absent, not present-with-zero-values (spec.md §3).
//
// Object is produced by value from ObjectIterator.Next and is not retained
// across iteration steps by the reader; the caller owns it for as long as
// it needs it.
type Object struct {
	DN string

	attrs map[uint32][]Value
	ids   []uint32 // attribute ids in record order, for stable projection
}

// Values returns the value sequence for an attribute id, and whether the
// attribute is present at all.
func (o *Object) Values(id uint32) ([]Value, bool) {
	v, ok := o.attrs[id]
	return v, ok
}

// AttributeIDs returns the attribute ids present on this object, in the
// order they appeared in the record.
func (o *Object) AttributeIDs() []uint32 {
	return o.ids
}

func (o *Object) setValues(id uint32, values []Value) {
	if o.attrs == nil {
		o.attrs = make(map[uint32][]Value)
	}
	if _, exists := o.attrs[id]; !exists {
		o.ids = append(o.ids, id)
	}
	o.attrs[id] = values
}

// ObjectIterator yields Objects from a snapshot's object section in file
// order. A malformed record length or out-of-bounds offset is fatal: it
// is surfaced via Err and iteration stops. A per-value decode failure is
// not fatal; the offending value is demoted to Unknown and a warning is
// recorded, and iteration continues (spec.md §4.4, §7).
type ObjectIterator struct {
	snap     *Snapshot
	cursor   *ByteCursor
	remain   uint32
	err      error
	decoded  int
	warnings []DecodeWarning
}

// Next advances the iterator and returns the next Object. It returns
// (nil, false) when iteration is exhausted, whether cleanly or due to a
// fatal error; callers must check Err() to distinguish the two.
func (it *ObjectIterator) Next() (*Object, bool) {
	if it.err != nil || it.remain == 0 {
		return nil, false
	}

	startOffset := it.cursor.Position()
	recLen, err := it.cursor.ReadU32()
	if err != nil {
		it.err = &CorruptSnapshotError{Offset: startOffset, Reason: "truncated object record length"}
		return nil, false
	}

	recEnd := it.cursor.Position() + recLen
	if recEnd > it.cursor.Len() || recEnd < it.cursor.Position() {
		it.err = &CorruptSnapshotError{Offset: startOffset, Reason: "object record length out of bounds"}
		return nil, false
	}

	obj, err := it.snap.decodeObjectRecord(it.cursor, &it.warnings)
	if err != nil {
		it.err = err
		return nil, false
	}

	// The record is self-delimiting via its own field widths; recEnd is a
	// redundant but cheap corruption check against a truncated tail.
	if it.cursor.Position() > recEnd {
		it.err = &CorruptSnapshotError{Offset: startOffset, Reason: "object record overran its declared length"}
		return nil, false
	}
	it.cursor.Seek(recEnd)

	it.remain--
	it.decoded++
	return obj, true
}

// Err returns the sticky fatal error that stopped iteration, or nil if
// iteration completed cleanly (or hasn't stopped yet).
func (it *ObjectIterator) Err() error { return it.err }

// DecodeWarnings returns the non-fatal per-value decode warnings
// accumulated so far.
func (it *ObjectIterator) DecodeWarnings() []DecodeWarning { return it.warnings }

// Decoded returns the number of objects successfully yielded so far.
func (it *ObjectIterator) Decoded() int { return it.decoded }
