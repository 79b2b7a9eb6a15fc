// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// fileTimeEpochDelta100ns is the number of 100-nanosecond intervals between
// the FILETIME epoch (1601-01-01 UTC) and the Unix epoch (1970-01-01 UTC).
const fileTimeEpochDelta100ns = 116444736000000000

// fileTimeNever and fileTimeMax are the sentinel FILETIME values that
// render as the literal string "never" rather than a timestamp, per
// spec.md §4.2.
const (
	fileTimeNever = 0
	fileTimeMax   = 0x7FFFFFFFFFFFFFFF
)

// DecodeGUID interprets 16 raw bytes as a Windows GUID and renders it in
// canonical textual form. The first three fields are little-endian within
// the input and the last two are big-endian, the standard Windows
// mixed-endian GUID convention; google/uuid's FromBytesLE implements
// exactly this convention.
func DecodeGUID(b []byte) (string, error) {
	if len(b) != 16 {
		return "", fmt.Errorf("adx: GUID requires 16 bytes, got %d", len(b))
	}
	id, err := uuid.FromBytesLE(b)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// DecodeSID interprets a Windows binary SID: a revision byte, a
// sub-authority count byte, a 6-byte big-endian identifier authority, then
// count little-endian 32-bit sub-authorities. It renders the textual form
// S-<rev>-<authority>-<sub1>-...-<subN>.
func DecodeSID(b []byte) (string, error) {
	if len(b) < 8 {
		return "", fmt.Errorf("adx: SID too short to decode (%d bytes)", len(b))
	}
	revision := b[0]
	subCount := int(b[1])

	var authority uint64
	for i := 2; i <= 7; i++ {
		authority = authority<<8 | uint64(b[i])
	}

	want := 8 + subCount*4
	if len(b) < want {
		return "", fmt.Errorf("adx: SID declares %d sub-authorities but only %d bytes remain", subCount, len(b)-8)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "S-%d-%d", revision, authority)
	for i := 0; i < subCount; i++ {
		off := 8 + i*4
		sub := binary.LittleEndian.Uint32(b[off : off+4])
		fmt.Fprintf(&sb, "-%d", sub)
	}
	return sb.String(), nil
}

// DecodeFILETIME interprets an 8-byte little-endian count of 100-ns
// intervals since 1601-01-01 UTC. The sentinel values 0 and
// 0x7FFFFFFFFFFFFFFF have no defined calendar date in AD (they mean "never
// expires"/"not set") and are reported via the ok=false return so callers
// can render the literal string "never" instead of a timestamp.
func DecodeFILETIME(v uint64) (t time.Time, ok bool) {
	if v == fileTimeNever || v == fileTimeMax {
		return time.Time{}, false
	}
	unix100ns := int64(v) - fileTimeEpochDelta100ns
	sec := unix100ns / 10000000
	nsec := (unix100ns % 10000000) * 100
	return time.Unix(sec, nsec).UTC(), true
}

// DecodeInteger reinterprets 8 raw little-endian bytes as a signed 64-bit
// integer.
func DecodeInteger(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("adx: integer requires 8 bytes, got %d", len(b))
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// DecodeBoolean reinterprets a single raw byte as a boolean (non-zero is
// true).
func DecodeBoolean(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, fmt.Errorf("adx: boolean requires 1 byte, got %d", len(b))
	}
	return b[0] != 0, nil
}

// HexString renders raw bytes as lowercase hex, the fallback rendering for
// Unknown and other-binary values per spec.md §4.2.
func HexString(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexdigits[c>>4]
		out[i*2+1] = hexdigits[c&0xf]
	}
	return string(out)
}
