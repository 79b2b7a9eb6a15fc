// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import (
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// canonicalDN puts a distinguished name into the canonical form
// spec.md §4.6 requires for DN equality comparisons: whitespace around
// each comma is trimmed and RDN attribute type names are ASCII-folded,
// while attribute values are left exactly as given. Malformed DNs (which
// do happen in the wild — AD is not always strict about escaping) fall
// back to a best-effort whitespace trim rather than failing the
// comparison outright.
//
// Structural parsing is delegated to ldap.ParseDN (github.com/go-ldap/ldap/v3),
// the same library sharehound uses for AD distinguished names, rather than
// hand-rolling RDN/comma splitting that has to track escaping rules
// ldap.ParseDN already gets right.
func canonicalDN(dn string) string {
	parsed, err := ldap.ParseDN(dn)
	if err != nil {
		return fallbackCanonicalDN(dn)
	}

	rdns := make([]string, len(parsed.RDNs))
	for i, rdn := range parsed.RDNs {
		parts := make([]string, len(rdn.Attributes))
		for j, attr := range rdn.Attributes {
			parts[j] = asciiLower(attr.Type) + "=" + attr.Value
		}
		rdns[i] = strings.Join(parts, "+")
	}
	return strings.Join(rdns, ",")
}

// fallbackCanonicalDN handles DN strings ldap.ParseDN rejects: it trims
// whitespace around unescaped commas without attempting full RDN-aware
// parsing.
func fallbackCanonicalDN(dn string) string {
	var segments []string
	start := 0
	for i := 0; i < len(dn); i++ {
		switch dn[i] {
		case '\\':
			i++ // the escaped byte never splits a segment
		case ',':
			segments = append(segments, strings.TrimSpace(dn[start:i]))
			start = i + 1
		}
	}
	segments = append(segments, strings.TrimSpace(dn[start:]))
	return strings.Join(segments, ",")
}
