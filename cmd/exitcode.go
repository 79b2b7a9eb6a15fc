// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io/fs"

	adx "github.com/takito1812/adx-query"
)

// errNoMatch is returned by runQuery when the query completed cleanly but
// matched nothing, so main can select exit code 1 without treating the run
// as a failure worth printing to stderr.
var errNoMatch = errors.New("no match")

// exitCodeForError classifies a command's returned error into spec.md §6's
// exit code scheme: 0 match, 1 no-match, 2 usage/parse error, 3 snapshot
// I/O or corruption.
func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, errNoMatch) {
		return 1
	}

	var parseErr *adx.ParseError
	if errors.As(err, &parseErr) {
		return 2
	}

	var corrupt *adx.CorruptSnapshotError
	if errors.As(err, &corrupt) {
		return 3
	}
	var unsupported *adx.UnsupportedVersionError
	if errors.As(err, &unsupported) {
		return 3
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return 3
	}
	if errors.Is(err, adx.ErrInvalidSnapshotSize) ||
		errors.Is(err, adx.ErrSignatureNotFound) ||
		errors.Is(err, adx.ErrOutsideBoundary) ||
		errors.Is(err, adx.ErrTruncated) {
		return 3
	}

	return 2
}
