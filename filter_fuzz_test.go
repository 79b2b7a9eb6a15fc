// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import "testing"

// FuzzParseFilter checks that ParseFilter never panics on arbitrary input
// and that any filter it does accept can be rendered back to text and
// re-parsed without error (spec.md §8's round-trip property).
func FuzzParseFilter(f *testing.F) {
	seeds := []string{
		"(cn=Alice)",
		"(mail=*)",
		"(cn=Al*ce*)",
		"(&(cn=Alice)(mail=*))",
		"(|(cn=Alice)(cn=Bob))",
		"(!(cn=Alice))",
		"(cn:caseExactMatch:=Alice)",
		`(cn=Smith\2a Co)`,
		"(&)",
		"(|)",
		"()",
		"(cn=",
		"cn=Alice)",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		node, err := ParseFilter(input)
		if err != nil {
			return
		}
		rendered := node.String()
		if _, err := ParseFilter(rendered); err != nil {
			t.Errorf("re-parsing rendered filter %q failed: %v", rendered, err)
		}
	})
}
