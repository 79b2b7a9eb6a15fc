// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log is a thin adapter over github.com/go-kratos/kratos/v2/log,
// giving the rest of adx-query a small Logger/Helper/Filter surface backed
// by a real upstream implementation instead of a hand-rolled one.
package log

import (
	"io"

	kratoslog "github.com/go-kratos/kratos/v2/log"
)

// Logger is the minimal structured-logging sink the core writes to.
type Logger = kratoslog.Logger

// Level is a log severity.
type Level = kratoslog.Level

// Helper wraps a Logger with leveled convenience methods (Debugf, Infof,
// Warnf, Errorf) and is the only logging type the core holds a reference
// to.
type Helper = kratoslog.Helper

// FilterOption configures NewFilter.
type FilterOption = kratoslog.FilterOption

// Severity levels, re-exported for callers that don't want to import the
// upstream package directly.
const (
	LevelDebug = kratoslog.LevelDebug
	LevelInfo  = kratoslog.LevelInfo
	LevelWarn  = kratoslog.LevelWarn
	LevelError = kratoslog.LevelError
	LevelFatal = kratoslog.LevelFatal
)

// NewStdLogger builds a Logger writing to w, one line per call.
func NewStdLogger(w io.Writer) Logger {
	return kratoslog.NewStdLogger(w)
}

// NewHelper wraps logger with leveled convenience methods.
func NewHelper(logger Logger) *Helper {
	return kratoslog.NewHelper(logger)
}

// NewFilter wraps logger with a minimum-severity gate; calls below the
// configured level are dropped before ever reaching logger.
func NewFilter(logger Logger, opts ...FilterOption) Logger {
	return kratoslog.NewFilter(logger, opts...)
}

// FilterLevel sets a Filter's minimum severity.
func FilterLevel(level Level) FilterOption {
	return kratoslog.FilterLevel(level)
}
