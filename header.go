// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import "time"

// snapshotSignature is the fixed ASCII tag every supported snapshot begins
// with. No public specification of the ADExplorer file format exists
// (spec.md §6); this reader commits to one concrete, internally consistent
// layout (see SPEC_FULL.md §3) and rejects anything that doesn't match it.
const snapshotSignature = "SNAP"

// supportedVersions lists the format versions this reader accepts.
// Unrecognized versions are rejected with UnsupportedVersionError rather
// than parsed speculatively.
var supportedVersions = []uint32{1}

func isSupportedVersion(v uint32) bool {
	for _, sv := range supportedVersions {
		if sv == v {
			return true
		}
	}
	return false
}

// Header carries the positional metadata every snapshot file begins with:
// signature, format version, creation time, source server DN, and the
// absolute byte offsets/counts of the schema, class, prefix, and object
// sections. Every offset is validated to lie within file bounds; the
// sections' extents are not checked for overlap.
type Header struct {
	Signature   string
	Version     uint32
	Created     time.Time
	CreatedOK   bool // false if Created is the FILETIME "never" sentinel
	SourceDN    string

	SchemaOffset uint32
	SchemaCount  uint32
	ClassOffset  uint32
	ClassCount   uint32
	PrefixOffset uint32
	PrefixCount  uint32
	ObjectOffset uint32
	ObjectCount  uint32
}

// section describes one of the four header-addressed sections, used only
// to validate non-overlap.
type section struct {
	name   string
	offset uint32
	count  uint32
}

// parseHeader reads and validates the fixed-layout header at the start of
// the cursor. It rejects a bad signature, an unsupported version, and any
// section offset beyond the end of the file; failures inside the sections
// themselves are reported later by the section and object-record parsers.
func parseHeader(c *ByteCursor) (Header, error) {
	var h Header

	sigBytes, err := c.ReadBytes(4)
	if err != nil {
		return h, err
	}
	h.Signature = string(sigBytes)
	if h.Signature != snapshotSignature {
		return h, ErrSignatureNotFound
	}

	h.Version, err = c.ReadU32()
	if err != nil {
		return h, err
	}
	if !isSupportedVersion(h.Version) {
		return h, &UnsupportedVersionError{Found: h.Version, Supported: supportedVersions}
	}

	createdRaw, err := c.ReadU64()
	if err != nil {
		return h, err
	}
	h.Created, h.CreatedOK = DecodeFILETIME(createdRaw)

	h.SourceDN, err = c.ReadUnicode()
	if err != nil {
		return h, err
	}

	offsets := []*uint32{&h.SchemaOffset, &h.ClassOffset, &h.PrefixOffset, &h.ObjectOffset}
	counts := []*uint32{&h.SchemaCount, &h.ClassCount, &h.PrefixCount, &h.ObjectCount}
	for i := range offsets {
		*offsets[i], err = c.ReadU32()
		if err != nil {
			return h, err
		}
		*counts[i], err = c.ReadU32()
		if err != nil {
			return h, err
		}
	}

	if err := validateSections(c.Len(), []section{
		{"schema", h.SchemaOffset, h.SchemaCount},
		{"class", h.ClassOffset, h.ClassCount},
		{"prefix", h.PrefixOffset, h.PrefixCount},
		{"object", h.ObjectOffset, h.ObjectCount},
	}); err != nil {
		return h, err
	}

	return h, nil
}

// validateSections checks that every section offset lies within file
// bounds. Exact byte extents aren't known up front (sections are
// variable-length, count-prefixed arrays of variable-length records), so
// this validates offsets only. Overlap between sections is not detected
// here or elsewhere: each section is parsed starting at its declared
// offset, whatever the other sections' extents are.
func validateSections(fileLen uint32, secs []section) error {
	for _, s := range secs {
		if s.offset > fileLen {
			return &CorruptSnapshotError{
				Offset: s.offset,
				Reason: s.name + " section offset beyond end of file",
			}
		}
	}
	return nil
}

// HeaderRecord is the structured, public rendering of a Header, returned
// by Snapshot.HeaderMetadata() for the CLI's dump-header action
// (spec.md §4.4, §6).
type HeaderRecord struct {
	Version        uint32
	Created        string // RFC 3339, or "never"
	SourceDN       string
	AttributeCount int
	ClassCount     int
	PrefixCount    int
	ObjectCount    int
}

func (h Header) record(schema *Schema, prefixes *PrefixTable) HeaderRecord {
	created := "never"
	if h.CreatedOK {
		created = h.Created.Format(time.RFC3339)
	}
	return HeaderRecord{
		Version:        h.Version,
		Created:        created,
		SourceDN:       h.SourceDN,
		AttributeCount: schema.NumAttributes(),
		ClassCount:     schema.NumClasses(),
		PrefixCount:    prefixes.Len(),
		ObjectCount:    int(h.ObjectCount),
	}
}
