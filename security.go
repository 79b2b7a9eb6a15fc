// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import (
	"regexp"
	"strings"
)

// wellKnownSIDs maps common, domain-independent Windows SIDs to a
// friendly label. Adapted from the table in
// other_examples/.../audibleblink-go-winacl__sid.go.go.
var wellKnownSIDs = map[string]string{
	"S-1-0-0":      "Nobody",
	"S-1-1-0":      "Everyone",
	"S-1-5-18":     "Local System",
	"S-1-5-19":     "Local Service",
	"S-1-5-20":     "Network Service",
	"S-1-5-32-544": "Administrators",
	"S-1-5-32-545": "Users",
	"S-1-5-32-546": "Guests",
}

// wellKnownSIDPatterns maps domain-relative RID suffixes to a friendly
// label, same source as wellKnownSIDs.
var wellKnownSIDPatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`-500$`), "Administrator"},
	{regexp.MustCompile(`-501$`), "Guest"},
	{regexp.MustCompile(`-502$`), "KRBTGT"},
	{regexp.MustCompile(`-512$`), "Domain Admins"},
	{regexp.MustCompile(`-513$`), "Domain Users"},
	{regexp.MustCompile(`-514$`), "Domain Guests"},
	{regexp.MustCompile(`-515$`), "Domain Computers"},
	{regexp.MustCompile(`-516$`), "Domain Controllers"},
	{regexp.MustCompile(`-518$`), "Schema Admins"},
	{regexp.MustCompile(`-519$`), "Enterprise Admins"},
	{regexp.MustCompile(`-520$`), "Group Policy Creator Owners"},
}

// AnnotateSID returns a friendly label for a well-known SID, or "" if the
// SID isn't recognized. This is purely an additive rendering aid: it never
// changes filter-match semantics, which always compare the raw textual
// SID (spec.md §4.6).
func AnnotateSID(sid string) string {
	if label, ok := wellKnownSIDs[sid]; ok {
		return label
	}
	if !strings.HasPrefix(sid, "S-1-5-21-") {
		return ""
	}
	for _, p := range wellKnownSIDPatterns {
		if p.re.MatchString(sid) {
			return p.label
		}
	}
	return ""
}
