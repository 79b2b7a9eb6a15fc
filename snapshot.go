// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/takito1812/adx-query/log"
)

// Options configures how a Snapshot is opened and logged. It deliberately
// carries no query-shaping knobs (projection, limit, case folding): those
// are per-query parameters on Snapshot.Query, not open-time state
// (spec.md §9: "REPL state... lives in the driver, not in the core").
type Options struct {
	// Logger receives non-fatal decode warnings and schema build notices.
	// If nil, warnings are written to standard error.
	Logger log.Logger
}

// Snapshot is an opened, parsed ADExplorer snapshot: immutable header
// metadata, Schema, and PrefixTable, plus the byte region containing the
// object stream. It is safe to share across read-only consumers but must
// not be used from more than one goroutine concurrently (spec.md §5).
type Snapshot struct {
	header   Header
	schema   *Schema
	prefixes *PrefixTable

	data []byte
	m    mmap.MMap // non-nil only when opened from a path
	f    *os.File  // non-nil only when opened from a path

	logger *log.Helper
}

// Open memory-maps the file at path and parses its header, schema, and
// prefix tables eagerly. Object parsing remains lazy: use Objects() to
// stream them.
func Open(path string, opts *Options) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	s, err := buildSnapshot(m, opts)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}
	s.m = m
	s.f = f
	return s, nil
}

// OpenBytes parses an already-loaded in-memory snapshot buffer. Used by
// callers (and tests) that don't want file-backed memory mapping.
func OpenBytes(data []byte, opts *Options) (*Snapshot, error) {
	return buildSnapshot(data, opts)
}

func buildSnapshot(data []byte, opts *Options) (*Snapshot, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewStdLogger(os.Stderr)
	}
	helper := log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelWarn)))

	if uint32(len(data)) < minHeaderSize {
		return nil, ErrInvalidSnapshotSize
	}

	c := NewByteCursor(data)
	header, err := parseHeader(c)
	if err != nil {
		return nil, err
	}

	attrs, err := parseAttributeSection(c, header)
	if err != nil {
		return nil, err
	}
	classes, err := parseClassSection(c, header)
	if err != nil {
		return nil, err
	}
	prefixes, err := parsePrefixSection(c, header)
	if err != nil {
		return nil, err
	}

	schema := newSchema(attrs, classes)
	for _, w := range schema.Warnings {
		helper.Warnf("schema: %s", w)
	}

	return &Snapshot{
		header:   header,
		schema:   schema,
		prefixes: prefixes,
		data:     data,
		logger:   helper,
	}, nil
}

// minHeaderSize is the smallest possible header: signature + version +
// FILETIME + an empty source DN + the four (offset,count) pairs.
const minHeaderSize = 4 + 4 + 8 + 4 + 4*2*4

// Close releases the memory mapping (if any) and the underlying file
// handle. A partially-consumed ObjectIterator referring to this Snapshot
// must not be used after Close.
func (s *Snapshot) Close() error {
	if s.m != nil {
		_ = s.m.Unmap()
	}
	if s.f != nil {
		return s.f.Close()
	}
	return nil
}

// HeaderMetadata returns a structured snapshot-metadata record, used by
// the CLI's dump-header action (spec.md §4.4, §6).
func (s *Snapshot) HeaderMetadata() HeaderRecord {
	return s.header.record(s.schema, s.prefixes)
}

// Schema exposes the immutable attribute/class catalog.
func (s *Snapshot) Schema() *Schema { return s.schema }

// Objects returns a lazy iterator over the object section, in file order.
func (s *Snapshot) Objects() *ObjectIterator {
	c := NewByteCursor(s.data)
	c.Seek(s.header.ObjectOffset)
	return &ObjectIterator{snap: s, cursor: c, remain: s.header.ObjectCount}
}

func parseAttributeSection(c *ByteCursor, h Header) ([]AttributeDef, error) {
	c.Seek(h.SchemaOffset)
	out := make([]AttributeDef, 0, h.SchemaCount)
	for i := uint32(0); i < h.SchemaCount; i++ {
		name, err := c.ReadUnicode()
		if err != nil {
			return nil, wrapSectionErr("schema", c.Position(), err)
		}
		syntax, err := c.ReadU32()
		if err != nil {
			return nil, wrapSectionErr("schema", c.Position(), err)
		}
		singleByte, err := c.ReadU8()
		if err != nil {
			return nil, wrapSectionErr("schema", c.Position(), err)
		}
		out = append(out, AttributeDef{
			ID:           i,
			Name:         name,
			Syntax:       SyntaxCode(syntax),
			SingleValued: singleByte != 0,
		})
	}
	return out, nil
}

func parseClassSection(c *ByteCursor, h Header) ([]ClassDef, error) {
	c.Seek(h.ClassOffset)
	out := make([]ClassDef, 0, h.ClassCount)
	for i := uint32(0); i < h.ClassCount; i++ {
		name, err := c.ReadUnicode()
		if err != nil {
			return nil, wrapSectionErr("class", c.Position(), err)
		}
		out = append(out, ClassDef{ID: i, Name: name})
	}
	return out, nil
}

func parsePrefixSection(c *ByteCursor, h Header) (*PrefixTable, error) {
	c.Seek(h.PrefixOffset)
	entries := make([]string, 0, h.PrefixCount)
	for i := uint32(0); i < h.PrefixCount; i++ {
		s, err := c.ReadUnicode()
		if err != nil {
			return nil, wrapSectionErr("prefix", c.Position(), err)
		}
		entries = append(entries, s)
	}
	return &PrefixTable{entries: entries}, nil
}

func wrapSectionErr(name string, offset uint32, err error) error {
	return &CorruptSnapshotError{Offset: offset, Reason: name + " section: " + err.Error()}
}

// decodeObjectRecord decodes one object record at the cursor's current
// position (just past the record-length prefix, which ObjectIterator.Next
// has already consumed).
func (s *Snapshot) decodeObjectRecord(c *ByteCursor, warnings *[]DecodeWarning) (*Object, error) {
	prefixID, err := c.ReadU32()
	if err != nil {
		return nil, &CorruptSnapshotError{Offset: c.Position(), Reason: "truncated object DN prefix id"}
	}
	suffix, err := c.ReadUnicode()
	if err != nil {
		return nil, &CorruptSnapshotError{Offset: c.Position(), Reason: "truncated object DN suffix"}
	}
	dn, err := s.prefixes.Resolve(prefixID, suffix)
	if err != nil {
		return nil, err
	}

	attrCount, err := c.ReadU32()
	if err != nil {
		return nil, &CorruptSnapshotError{Offset: c.Position(), Reason: "truncated object attribute count"}
	}

	obj := &Object{DN: dn}
	for i := uint32(0); i < attrCount; i++ {
		attrID, err := c.ReadU32()
		if err != nil {
			return nil, &CorruptSnapshotError{Offset: c.Position(), Reason: "truncated attribute id"}
		}
		valueCount, err := c.ReadU32()
		if err != nil {
			return nil, &CorruptSnapshotError{Offset: c.Position(), Reason: "truncated attribute value count"}
		}

		def, known := s.schema.AttributeByID(attrID)
		values := make([]Value, 0, valueCount)
		for j := uint32(0); j < valueCount; j++ {
			blobLen, err := c.ReadU32()
			if err != nil {
				return nil, &CorruptSnapshotError{Offset: c.Position(), Reason: "truncated value length"}
			}
			blob, err := c.ReadBytes(blobLen)
			if err != nil {
				return nil, &CorruptSnapshotError{Offset: c.Position(), Reason: "truncated value payload"}
			}

			var v Value
			if !known {
				v = UnknownValue(blob)
			} else {
				v, err = s.decodeValue(def, blob)
				if err != nil {
					name := def.Name
					*warnings = append(*warnings, DecodeWarning{Attribute: name, Reason: err.Error()})
					s.logger.Warnf("decode %s: %v", name, err)
					v = UnknownValue(blob)
				}
			}
			values = append(values, v)
		}
		if len(values) > 0 {
			obj.setValues(attrID, values)
		}
	}
	return obj, nil
}

// decodeValue dispatches on the attribute's declared syntax, per
// spec.md §4.4.
func (s *Snapshot) decodeValue(def AttributeDef, blob []byte) (Value, error) {
	switch def.Syntax {
	case SyntaxString:
		return StringValue(decodeUTF16Blob(blob)), nil
	case SyntaxInteger:
		i, err := DecodeInteger(blob)
		if err != nil {
			return Value{}, err
		}
		return IntegerValue(i), nil
	case SyntaxBoolean:
		b, err := DecodeBoolean(blob)
		if err != nil {
			return Value{}, err
		}
		return BooleanValue(b), nil
	case SyntaxGUID:
		g, err := DecodeGUID(blob)
		if err != nil {
			return Value{}, err
		}
		return GUIDValue(g), nil
	case SyntaxSID:
		sid, err := DecodeSID(blob)
		if err != nil {
			return Value{}, err
		}
		return SIDValue(sid), nil
	case SyntaxFILETIME:
		i, err := DecodeInteger(blob)
		if err != nil {
			return Value{}, err
		}
		t, ok := DecodeFILETIME(uint64(i))
		return TimestampValue(t, ok), nil
	case SyntaxDN:
		// A DN-valued attribute's blob is itself (prefix_id, suffix),
		// exactly like the object's own distinguished name (spec.md §4.4).
		vc := NewByteCursor(blob)
		prefixID, err := vc.ReadU32()
		if err != nil {
			return Value{}, err
		}
		suffix, err := vc.ReadUnicode()
		if err != nil {
			return Value{}, err
		}
		dn, err := s.prefixes.Resolve(prefixID, suffix)
		if err != nil {
			return Value{}, err
		}
		return DNValue(dn), nil
	case SyntaxSecurityDescriptor:
		return SecurityDescriptorValue(blob), nil
	case SyntaxOctetString, SyntaxOtherBinary:
		return BinaryValue(blob), nil
	default:
		return UnknownValue(blob), nil
	}
}
