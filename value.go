// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import (
	"fmt"
	"time"

	"github.com/cloudsoda/sddl"
)

// ValueKind discriminates the tagged union Value represents.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInteger
	KindBoolean
	KindGUID
	KindSID
	KindTimestamp
	KindDN
	KindBinary
	KindUnknown
)

// Value is a tagged union over syntax codes. The tag matches the
// attribute's declared syntax, except for KindUnknown, which is produced
// when decoding fails non-fatally (spec.md §3).
type Value struct {
	Kind ValueKind

	str  string
	i64  int64
	b    bool
	t    time.Time
	tOK  bool // false for the "never" FILETIME sentinel
	raw  []byte
	isSD bool // raw holds a SECURITY_DESCRIPTOR blob, render via SDDL
}

// StringValue builds a String-kind Value.
func StringValue(s string) Value { return Value{Kind: KindString, str: s} }

// IntegerValue builds an Integer-kind Value.
func IntegerValue(i int64) Value { return Value{Kind: KindInteger, i64: i} }

// BooleanValue builds a Boolean-kind Value.
func BooleanValue(b bool) Value { return Value{Kind: KindBoolean, b: b} }

// GUIDValue builds a GUID-kind Value from its canonical textual form.
func GUIDValue(canonical string) Value { return Value{Kind: KindGUID, str: canonical} }

// SIDValue builds a SID-kind Value from its textual S-1-... form.
func SIDValue(textual string) Value { return Value{Kind: KindSID, str: textual} }

// TimestampValue builds a Timestamp-kind Value. ok=false represents the
// FILETIME "never" sentinel.
func TimestampValue(t time.Time, ok bool) Value {
	return Value{Kind: KindTimestamp, t: t, tOK: ok}
}

// DNValue builds a DN-kind Value from an already-resolved full DN string.
func DNValue(resolved string) Value { return Value{Kind: KindDN, str: resolved} }

// BinaryValue builds a Binary-kind Value for opaque binary payloads.
func BinaryValue(raw []byte) Value { return Value{Kind: KindBinary, raw: raw} }

// SecurityDescriptorValue builds a Binary-kind Value holding a raw
// SECURITY_DESCRIPTOR blob; Render gives it a best-effort SDDL rendering
// instead of plain hex.
func SecurityDescriptorValue(raw []byte) Value {
	return Value{Kind: KindBinary, raw: raw, isSD: true}
}

// UnknownValue builds an Unknown-kind Value: raw bytes kept verbatim after
// a non-fatal decode failure.
func UnknownValue(raw []byte) Value { return Value{Kind: KindUnknown, raw: raw} }

// AsString returns the value's string payload for String/GUID/SID/DN kinds.
func (v Value) AsString() (string, bool) {
	switch v.Kind {
	case KindString, KindGUID, KindSID, KindDN:
		return v.str, true
	default:
		return "", false
	}
}

// AsInteger returns the value's integer payload.
func (v Value) AsInteger() (int64, bool) {
	if v.Kind != KindInteger {
		return 0, false
	}
	return v.i64, true
}

// AsBoolean returns the value's boolean payload.
func (v Value) AsBoolean() (bool, bool) {
	if v.Kind != KindBoolean {
		return false, false
	}
	return v.b, true
}

// AsTimestamp returns the value's UTC instant and whether it is the
// "never" sentinel.
func (v Value) AsTimestamp() (time.Time, bool, bool) {
	if v.Kind != KindTimestamp {
		return time.Time{}, false, false
	}
	return v.t, v.tOK, true
}

// AsBytes returns the value's raw payload for Binary/Unknown kinds.
func (v Value) AsBytes() ([]byte, bool) {
	switch v.Kind {
	case KindBinary, KindUnknown:
		return v.raw, true
	default:
		return nil, false
	}
}

// Render produces the textual form a ProjectedObject surfaces to callers:
// GUID and SID already carry their canonical text, timestamps render
// ISO-8601 UTC (or the literal "never"), and unknown/binary values render
// as lowercase hex (spec.md §6), except security descriptors, which are
// given a best-effort SDDL rendering (spec.md §9 Open Question 2). A SID
// that matches a well-known RID gets its friendly label appended in
// parentheses; this is purely additive and never changes filter-match
// semantics, which always compare Value.AsString's raw textual SID.
func (v Value) Render() string {
	switch v.Kind {
	case KindSID:
		if label := AnnotateSID(v.str); label != "" {
			return v.str + " (" + label + ")"
		}
		return v.str
	case KindString, KindGUID, KindDN:
		return v.str
	case KindInteger:
		return fmt.Sprintf("%d", v.i64)
	case KindBoolean:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindTimestamp:
		if !v.tOK {
			return "never"
		}
		return v.t.Format(time.RFC3339)
	case KindBinary:
		if v.isSD {
			return renderSecurityDescriptor(v.raw)
		}
		return HexString(v.raw)
	case KindUnknown:
		return HexString(v.raw)
	default:
		return ""
	}
}

// renderSecurityDescriptor attempts a best-effort SDDL rendering of a raw
// SECURITY_DESCRIPTOR blob using cloudsoda/sddl. On any failure it falls
// back to the standard opaque hex rendering, matching spec.md §4.2's
// "Unknown binary: returned verbatim; surfaces as lowercase hex" fallback.
func renderSecurityDescriptor(raw []byte) string {
	sd, err := sddl.ParseSecurityDescriptorBinary(raw)
	if err != nil {
		return HexString(raw)
	}
	text, err := sd.String()
	if err != nil {
		return HexString(raw)
	}
	return text
}
