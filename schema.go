// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

// SyntaxCode identifies how an attribute's raw value bytes must be
// decoded. It is a small integer in the schema section, not an enum
// declared in the snapshot itself.
type SyntaxCode uint32

// Syntax codes supported by the decoder. Unknown carries any syntax code
// not in this set: its values are captured verbatim rather than rejected.
const (
	SyntaxString SyntaxCode = iota
	SyntaxInteger
	SyntaxBoolean
	SyntaxGUID
	SyntaxSID
	SyntaxFILETIME
	SyntaxOctetString
	SyntaxDN
	SyntaxSecurityDescriptor
	SyntaxOtherBinary
	SyntaxUnknown
)

func (s SyntaxCode) String() string {
	switch s {
	case SyntaxString:
		return "String"
	case SyntaxInteger:
		return "Integer"
	case SyntaxBoolean:
		return "Boolean"
	case SyntaxGUID:
		return "GUID"
	case SyntaxSID:
		return "SID"
	case SyntaxFILETIME:
		return "FILETIME"
	case SyntaxOctetString:
		return "OctetString"
	case SyntaxDN:
		return "DN"
	case SyntaxSecurityDescriptor:
		return "SecurityDescriptor"
	case SyntaxOtherBinary:
		return "OtherBinary"
	default:
		return "Unknown"
	}
}

// AttributeDef describes one entry in the snapshot's attribute catalog.
type AttributeDef struct {
	ID           uint32
	Name         string
	Syntax       SyntaxCode
	SingleValued bool
}

// ClassDef describes one entry in the snapshot's class catalog, used only
// to resolve objectClass value references and surface class names.
type ClassDef struct {
	ID   uint32
	Name string
}

// PrefixTable is the ordered, immutable table of interned DN prefixes. A
// DN in the snapshot is stored as (prefix_id, suffix); the full DN is
// prefix_table[prefix_id] + suffix. It must never be mutated after load.
type PrefixTable struct {
	entries []string
}

// Resolve returns the full DN for a (prefix_id, suffix) pair.
func (t *PrefixTable) Resolve(prefixID uint32, suffix string) (string, error) {
	if int(prefixID) >= len(t.entries) {
		return "", &CorruptSnapshotError{Reason: "DN prefix id out of range"}
	}
	return t.entries[prefixID] + suffix, nil
}

// Len returns the number of entries in the prefix table.
func (t *PrefixTable) Len() int { return len(t.entries) }

// Schema is the in-memory representation of a snapshot's attribute and
// class catalogs, built once by SnapshotReader and shared read-only by
// every consumer of the Objects it yields.
type Schema struct {
	attrsByID   []AttributeDef
	attrsByName map[string]*AttributeDef // keyed by ASCII-lowercased name
	classesByID []ClassDef

	// Warnings accumulates non-fatal duplicate-name notices raised while
	// the catalog was built; it is a side channel, never returned as an
	// error.
	Warnings []string
}

// AttributeByID returns the attribute definition at the given dense id.
func (s *Schema) AttributeByID(id uint32) (AttributeDef, bool) {
	if int(id) >= len(s.attrsByID) {
		return AttributeDef{}, false
	}
	return s.attrsByID[id], true
}

// AttributeByName looks up an attribute by name. LDAP attribute
// descriptions are ASCII-only (RFC 4512), so folding is a plain ASCII
// lower-case, never full Unicode case folding.
func (s *Schema) AttributeByName(name string) (AttributeDef, bool) {
	def, ok := s.attrsByName[asciiLower(name)]
	if !ok {
		return AttributeDef{}, false
	}
	return *def, true
}

// ClassByID returns the class definition at the given dense id.
func (s *Schema) ClassByID(id uint32) (ClassDef, bool) {
	if int(id) >= len(s.classesByID) {
		return ClassDef{}, false
	}
	return s.classesByID[id], true
}

// NumAttributes reports the size of the attribute catalog.
func (s *Schema) NumAttributes() int { return len(s.attrsByID) }

// NumClasses reports the size of the class catalog.
func (s *Schema) NumClasses() int { return len(s.classesByID) }

// asciiLower lower-cases only the ASCII letters in s, leaving any other
// byte untouched. LDAP attribute descriptions are specified as ASCII
// (RFC 4512 §1.4), so this avoids the locale-sensitive behavior of
// strings.ToLower for names that happen to contain non-ASCII bytes.
func asciiLower(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// newSchema builds a Schema from the decoded attribute and class tables.
// On a duplicate attribute name the first-seen definition wins and a
// warning is appended to s.Warnings; this is never fatal (spec.md §4.3).
func newSchema(attrs []AttributeDef, classes []ClassDef) *Schema {
	s := &Schema{
		attrsByID:   attrs,
		attrsByName: make(map[string]*AttributeDef, len(attrs)),
		classesByID: classes,
	}
	for i := range attrs {
		key := asciiLower(attrs[i].Name)
		if _, dup := s.attrsByName[key]; dup {
			s.Warnings = append(s.Warnings,
				"duplicate attribute name \""+attrs[i].Name+"\", first definition wins")
			continue
		}
		s.attrsByName[key] = &attrs[i]
	}
	return s
}

// stringsEqualFold is a small ASCII-only case-insensitive compare, used by
// the evaluator for string assertions (spec.md §4.6's "ASCII-folded case"
// rule). It folds through asciiLower rather than strings.EqualFold, which
// performs full-Unicode case folding.
func stringsEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return asciiLower(a) == asciiLower(b)
}
