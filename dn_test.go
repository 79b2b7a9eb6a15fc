// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import "testing"

func TestCanonicalDNFoldsAttributeType(t *testing.T) {
	a := canonicalDN("CN=Alice,OU=Users,DC=example,DC=com")
	b := canonicalDN("cn=Alice, ou=Users, dc=example, dc=com")
	if a != b {
		t.Errorf("canonicalDN mismatch:\n  %q\n  %q", a, b)
	}
}

func TestCanonicalDNPreservesAttributeValueCase(t *testing.T) {
	a := canonicalDN("cn=Alice,dc=example,dc=com")
	b := canonicalDN("cn=alice,dc=example,dc=com")
	if a == b {
		t.Error("canonicalDN folded an attribute value; only attribute type names should fold")
	}
}

func TestCanonicalDNFallbackOnMalformedInput(t *testing.T) {
	got := fallbackCanonicalDN("CN=Weird\\,Name, DC=example")
	want := "CN=Weird\\,Name,DC=example"
	if got != want {
		t.Errorf("fallbackCanonicalDN = %q, want %q", got, want)
	}
}
