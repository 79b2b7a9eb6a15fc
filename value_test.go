// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import (
	"testing"
	"time"
)

func TestValueRenderString(t *testing.T) {
	v := StringValue("hello")
	if got := v.Render(); got != "hello" {
		t.Errorf("Render() = %q, want hello", got)
	}
}

func TestValueRenderSIDAnnotatesWellKnown(t *testing.T) {
	v := SIDValue("S-1-5-18")
	if got := v.Render(); got != "S-1-5-18 (Local System)" {
		t.Errorf("Render() = %q, want annotated Local System", got)
	}
}

func TestValueRenderSIDUnannotatedWhenUnrecognized(t *testing.T) {
	v := SIDValue("S-1-5-21-1-2-3-99999")
	if got := v.Render(); got != "S-1-5-21-1-2-3-99999" {
		t.Errorf("Render() = %q, want bare SID with no annotation", got)
	}
}

func TestValueRenderBoolean(t *testing.T) {
	if got := BooleanValue(true).Render(); got != "TRUE" {
		t.Errorf("Render() = %q, want TRUE", got)
	}
	if got := BooleanValue(false).Render(); got != "FALSE" {
		t.Errorf("Render() = %q, want FALSE", got)
	}
}

func TestValueRenderTimestampNever(t *testing.T) {
	v := TimestampValue(time.Time{}, false)
	if got := v.Render(); got != "never" {
		t.Errorf("Render() = %q, want never", got)
	}
}

func TestValueRenderTimestampRFC3339(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	v := TimestampValue(ts, true)
	if got := v.Render(); got != "2024-01-02T03:04:05Z" {
		t.Errorf("Render() = %q, want 2024-01-02T03:04:05Z", got)
	}
}

func TestValueRenderBinaryFallsBackToHex(t *testing.T) {
	v := BinaryValue([]byte{0xde, 0xad})
	if got := v.Render(); got != "dead" {
		t.Errorf("Render() = %q, want dead", got)
	}
}

func TestValueRenderUnknownIsHex(t *testing.T) {
	v := UnknownValue([]byte{0x01, 0xff})
	if got := v.Render(); got != "01ff" {
		t.Errorf("Render() = %q, want 01ff", got)
	}
}

func TestValueAsAccessorsMismatchedKind(t *testing.T) {
	v := StringValue("x")
	if _, ok := v.AsInteger(); ok {
		t.Error("AsInteger on a String value: want ok=false")
	}
	if _, ok := v.AsBoolean(); ok {
		t.Error("AsBoolean on a String value: want ok=false")
	}
}
