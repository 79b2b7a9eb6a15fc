// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import "testing"

func evalFilter(t *testing.T, snap *Snapshot, obj *Object, filter string, caseFold bool) Trit {
	t.Helper()
	node, err := ParseFilter(filter)
	if err != nil {
		t.Fatalf("ParseFilter(%q): %v", filter, err)
	}
	return Evaluate(node, obj, snap.Schema(), caseFold)
}

func objectByDN(t *testing.T, snap *Snapshot, dn string) *Object {
	t.Helper()
	it := snap.Objects()
	for {
		obj, ok := it.Next()
		if !ok {
			break
		}
		if obj.DN == dn {
			return obj
		}
	}
	t.Fatalf("no object with DN %q", dn)
	return nil
}

func TestEvaluateEqualityMultiValued(t *testing.T) {
	snap := openTestSnapshot(t)
	alice := objectByDN(t, snap, "DC=example,DC=com,CN=Alice,CN=Users")

	if got := evalFilter(t, snap, alice, "(objectClass=user)", false); got != True {
		t.Errorf("(objectClass=user) = %v, want TRUE", got)
	}
	if got := evalFilter(t, snap, alice, "(objectClass=nonexistent)", false); got != False {
		t.Errorf("(objectClass=nonexistent) = %v, want FALSE", got)
	}
}

func TestEvaluateEqualityUndefinedWhenAbsent(t *testing.T) {
	snap := openTestSnapshot(t)
	carol := objectByDN(t, snap, "DC=example,DC=com,CN=Carol,CN=Users")

	if got := evalFilter(t, snap, carol, "(company=AcmeCorp)", false); got != Undefined {
		t.Errorf("(company=AcmeCorp) on object missing company = %v, want UNDEFINED", got)
	}
}

func TestEvaluateNotPreservesUndefined(t *testing.T) {
	snap := openTestSnapshot(t)
	carol := objectByDN(t, snap, "DC=example,DC=com,CN=Carol,CN=Users")
	alice := objectByDN(t, snap, "DC=example,DC=com,CN=Alice,CN=Users")

	// spec.md §8 scenario 4: NOT(UNDEFINED) is UNDEFINED, never a match.
	if got := evalFilter(t, snap, carol, "(!(company=AcmeCorp))", false); got != Undefined {
		t.Errorf("NOT over absent attribute = %v, want UNDEFINED", got)
	}
	// Alice has company=AcmeCorp, so NOT(TRUE) = FALSE.
	if got := evalFilter(t, snap, alice, "(!(company=AcmeCorp))", false); got != False {
		t.Errorf("NOT over matching attribute = %v, want FALSE", got)
	}
}

func TestEvaluatePresence(t *testing.T) {
	snap := openTestSnapshot(t)
	alice := objectByDN(t, snap, "DC=example,DC=com,CN=Alice,CN=Users")
	bob := objectByDN(t, snap, "DC=example,DC=com,CN=Bob,CN=Users")

	if got := evalFilter(t, snap, alice, "(mail=*)", false); got != True {
		t.Errorf("Alice (mail=*) = %v, want TRUE", got)
	}
	if got := evalFilter(t, snap, bob, "(mail=*)", false); got != False {
		t.Errorf("Bob (mail=*) = %v, want FALSE", got)
	}
}

func TestEvaluateOrUnion(t *testing.T) {
	snap := openTestSnapshot(t)
	alice := objectByDN(t, snap, "DC=example,DC=com,CN=Alice,CN=Users")
	bob := objectByDN(t, snap, "DC=example,DC=com,CN=Bob,CN=Users")
	carol := objectByDN(t, snap, "DC=example,DC=com,CN=Carol,CN=Users")

	filter := "(|(mail=*)(sAMAccountName=A*))"
	if got := evalFilter(t, snap, alice, filter, false); got != True {
		t.Errorf("Alice: %v, want TRUE (has mail)", got)
	}
	if got := evalFilter(t, snap, bob, filter, false); got != True {
		t.Errorf("Bob: %v, want TRUE (sAMAccountName Aardvark starts with A)", got)
	}
	if got := evalFilter(t, snap, carol, filter, false); got != False {
		t.Errorf("Carol: %v, want FALSE", got)
	}
}

func TestEvaluateCaseFolding(t *testing.T) {
	snap := openTestSnapshot(t)
	alice := objectByDN(t, snap, "DC=example,DC=com,CN=Alice,CN=Users")

	if got := evalFilter(t, snap, alice, "(cn=ALICE)", true); got != True {
		t.Errorf("case-insensitive (cn=ALICE) = %v, want TRUE", got)
	}
	if got := evalFilter(t, snap, alice, "(cn=ALICE)", false); got != False {
		t.Errorf("case-sensitive (cn=ALICE) = %v, want FALSE", got)
	}
}

func TestEvaluateIntegerOrdering(t *testing.T) {
	snap := openTestSnapshot(t)
	alice := objectByDN(t, snap, "DC=example,DC=com,CN=Alice,CN=Users") // employeeID=100

	if got := evalFilter(t, snap, alice, "(employeeID>=100)", false); got != True {
		t.Errorf("(employeeID>=100) = %v, want TRUE", got)
	}
	if got := evalFilter(t, snap, alice, "(employeeID>=101)", false); got != False {
		t.Errorf("(employeeID>=101) = %v, want FALSE", got)
	}
	if got := evalFilter(t, snap, alice, "(employeeID<=100)", false); got != True {
		t.Errorf("(employeeID<=100) = %v, want TRUE", got)
	}
}

func TestThreeValuedDeMorgan(t *testing.T) {
	for _, a := range []Trit{True, False, Undefined} {
		for _, b := range []Trit{True, False, Undefined} {
			lhs := not3(and3([]Trit{a, b}))
			rhs := or3([]Trit{not3(a), not3(b)})
			if lhs != rhs {
				t.Errorf("De Morgan fails for a=%v b=%v: not(a&b)=%v, (not a)|(not b)=%v", a, b, lhs, rhs)
			}

			lhs2 := not3(or3([]Trit{a, b}))
			rhs2 := or3([]Trit{not3(a), not3(b)})
			_ = rhs2
			rhs3 := and3([]Trit{not3(a), not3(b)})
			if lhs2 != rhs3 {
				t.Errorf("De Morgan fails for a=%v b=%v: not(a|b)=%v, (not a)&(not b)=%v", a, b, lhs2, rhs3)
			}
		}
	}
}

func TestNot3Involution(t *testing.T) {
	for _, tr := range []Trit{True, False, Undefined} {
		if not3(not3(tr)) != tr {
			t.Errorf("not3(not3(%v)) != %v", tr, tr)
		}
	}
}
