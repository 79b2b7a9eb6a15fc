// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import "fmt"

// Sentinel errors for conditions that carry no extra positional context.
var (
	// ErrInvalidSnapshotSize is returned when the file is smaller than the
	// smallest possible header.
	ErrInvalidSnapshotSize = fmt.Errorf("not an ADExplorer snapshot, smaller than the minimum header size")

	// ErrSignatureNotFound is returned when the leading magic bytes don't
	// match the expected ADExplorer signature.
	ErrSignatureNotFound = fmt.Errorf("snapshot signature not found")

	// ErrOutsideBoundary is returned when a read would cross the bounds of
	// the underlying buffer.
	ErrOutsideBoundary = fmt.Errorf("reading data outside snapshot boundary")

	// ErrTruncated is returned by ByteCursor reads when fewer bytes remain
	// than requested.
	ErrTruncated = fmt.Errorf("truncated read past end of snapshot")
)

// CorruptSnapshotError reports a structural violation of the snapshot
// format: a bad offset, a truncated section or record, or a malformed
// record length. It always aborts the current parse or iteration.
type CorruptSnapshotError struct {
	Offset uint32
	Reason string
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt snapshot at offset %d: %s", e.Offset, e.Reason)
}

// UnsupportedVersionError is returned at open time when the snapshot
// declares a format version this reader doesn't know how to decode.
type UnsupportedVersionError struct {
	Found     uint32
	Supported []uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported snapshot version %d (supported: %v)", e.Found, e.Supported)
}

// ParseError is returned by FilterParser.Parse on a malformed RFC 4515
// filter string. It is non-fatal to the process: a REPL driving the core
// is expected to catch it and keep running.
type ParseError struct {
	Position int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("filter parse error at position %d: %s", e.Position, e.Message)
}

// DecodeWarning describes a single attribute value that failed to decode
// under its declared syntax. It is never fatal: the offending value is
// demoted to Unknown and the warning is counted, not raised.
type DecodeWarning struct {
	Attribute string
	Reason    string
}

func (w DecodeWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Attribute, w.Reason)
}
