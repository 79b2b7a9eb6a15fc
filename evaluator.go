// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import (
	"strconv"
	"strings"
)

// Trit is a three-valued logic result (RFC 4511 §4.5.1.7). It must never
// be collapsed to a boolean before And/Or/Not have run: doing so silently
// breaks De Morgan's laws under Not (spec.md §4.6, §8).
type Trit int

const (
	Undefined Trit = iota
	True
	False
)

func (t Trit) String() string {
	switch t {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	default:
		return "UNDEFINED"
	}
}

func boolTrit(b bool) Trit {
	if b {
		return True
	}
	return False
}

// not3 implements RFC 4511 negation: Not(True)=False, Not(False)=True,
// Not(Undefined)=Undefined.
func not3(t Trit) Trit {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Undefined
	}
}

// and3 implements three-valued AND: False dominates, then Undefined,
// then True.
func and3(children []Trit) Trit {
	sawUndefined := false
	for _, c := range children {
		switch c {
		case False:
			return False
		case Undefined:
			sawUndefined = true
		}
	}
	if sawUndefined {
		return Undefined
	}
	return True
}

// or3 implements three-valued OR: True dominates, then Undefined, then
// False.
func or3(children []Trit) Trit {
	sawUndefined := false
	for _, c := range children {
		switch c {
		case True:
			return True
		case Undefined:
			sawUndefined = true
		}
	}
	if sawUndefined {
		return Undefined
	}
	return False
}

// Evaluate evaluates a FilterNode against obj, resolving attribute names
// via schema. Attribute resolution is always case-insensitive (LDAP
// attribute descriptions are case-insensitive per RFC 4512); caseFold
// additionally controls whether string-valued assertion comparisons fold
// case (spec.md §4.6, §8).
func Evaluate(node FilterNode, obj *Object, schema *Schema, caseFold bool) Trit {
	switch n := node.(type) {
	case *PresentNode:
		return evalPresent(n, obj, schema)
	case *EqualityNode:
		return evalEquality(n.Attr, n.Value, obj, schema, caseFold)
	case *SubstringNode:
		return evalSubstring(n, obj, schema, caseFold)
	case *GreaterOrEqualNode:
		return evalOrdering(n.Attr, n.Value, obj, schema, true)
	case *LessOrEqualNode:
		return evalOrdering(n.Attr, n.Value, obj, schema, false)
	case *ApproxMatchNode:
		// spec.md §9 Open Question 3: no phonetic matching, ApproxMatch
		// evaluates identically to Equality.
		return evalEquality(n.Attr, n.Value, obj, schema, caseFold)
	case *ExtensibleNode:
		return evalExtensible(n, obj, schema, caseFold)
	case *AndNode:
		children := make([]Trit, len(n.Children))
		for i, c := range n.Children {
			children[i] = Evaluate(c, obj, schema, caseFold)
		}
		return and3(children)
	case *OrNode:
		children := make([]Trit, len(n.Children))
		for i, c := range n.Children {
			children[i] = Evaluate(c, obj, schema, caseFold)
		}
		return or3(children)
	case *NotNode:
		return not3(Evaluate(n.Child, obj, schema, caseFold))
	default:
		return Undefined
	}
}

// resolve looks up an attribute by name and returns its values, if any.
func resolve(attr string, obj *Object, schema *Schema) ([]Value, AttributeDef, bool) {
	def, ok := schema.AttributeByName(attr)
	if !ok {
		return nil, AttributeDef{}, false
	}
	values, ok := obj.Values(def.ID)
	if !ok {
		return nil, def, false
	}
	return values, def, true
}

func evalPresent(n *PresentNode, obj *Object, schema *Schema) Trit {
	values, _, ok := resolve(n.Attr, obj, schema)
	if !ok || len(values) == 0 {
		return False
	}
	return True
}

// evalEquality implements the Equality(attr, v) semantics of spec.md
// §4.6, dispatching comparison by the attribute's declared syntax.
func evalEquality(attr, assertion string, obj *Object, schema *Schema, caseFold bool) Trit {
	values, def, ok := resolve(attr, obj, schema)
	if !ok {
		return Undefined
	}
	matched := false
	anyComparable := false
	for _, v := range values {
		cmp, comparable := equalsValue(def.Syntax, v, assertion, caseFold)
		if !comparable {
			continue
		}
		anyComparable = true
		if cmp {
			matched = true
			break
		}
	}
	if matched {
		return True
	}
	if !anyComparable {
		return Undefined
	}
	return False
}

// equalsValue compares one decoded Value against an assertion string
// under the syntax-specific equality rule. The second result is false
// when the syntax cannot decode the assertion value at all.
func equalsValue(syntax SyntaxCode, v Value, assertion string, caseFold bool) (equal bool, comparable bool) {
	switch syntax {
	case SyntaxString:
		s, ok := v.AsString()
		if !ok {
			return false, false
		}
		return stringEquals(s, assertion, caseFold), true
	case SyntaxInteger:
		i, ok := v.AsInteger()
		if !ok {
			return false, false
		}
		want, err := strconv.ParseInt(strings.TrimSpace(assertion), 10, 64)
		if err != nil {
			return false, false
		}
		return i == want, true
	case SyntaxBoolean:
		b, ok := v.AsBoolean()
		if !ok {
			return false, false
		}
		want, ok := parseLDAPBoolean(assertion)
		if !ok {
			return false, false
		}
		return b == want, true
	case SyntaxGUID, SyntaxSID:
		s, ok := v.AsString()
		if !ok {
			return false, false
		}
		return s == assertion, true
	case SyntaxDN:
		s, ok := v.AsString()
		if !ok {
			return false, false
		}
		return canonicalDN(s) == canonicalDN(assertion), true
	default:
		return false, false
	}
}

func parseLDAPBoolean(s string) (bool, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	default:
		return false, false
	}
}

func stringEquals(a, b string, caseFold bool) bool {
	if caseFold {
		return stringsEqualFold(a, b)
	}
	return a == b
}

// evalSubstring implements spec.md §4.6's Substring(attr, initial,
// any[], final): string-valued attributes only, left-anchored on
// initial, right-anchored on final, each any[] element found
// left-to-right without overlap.
func evalSubstring(n *SubstringNode, obj *Object, schema *Schema, caseFold bool) Trit {
	values, def, ok := resolve(n.Attr, obj, schema)
	if !ok {
		return Undefined
	}
	if def.Syntax != SyntaxString {
		return Undefined
	}
	for _, v := range values {
		s, ok := v.AsString()
		if !ok {
			continue
		}
		if substringMatch(s, n, caseFold) {
			return True
		}
	}
	return False
}

func substringMatch(s string, n *SubstringNode, caseFold bool) bool {
	if caseFold {
		s = strings.ToUpper(s)
	}
	rest := s

	if n.HasInitial {
		initial := foldIfNeeded(n.Initial, caseFold)
		if !strings.HasPrefix(rest, initial) {
			return false
		}
		rest = rest[len(initial):]
	}

	var final string
	if n.HasFinal {
		final = foldIfNeeded(n.Final, caseFold)
		if !strings.HasSuffix(rest, final) {
			return false
		}
	}

	searchSpace := rest
	if n.HasFinal {
		searchSpace = rest[:len(rest)-len(final)]
	}

	for _, any := range n.Any {
		needle := foldIfNeeded(any, caseFold)
		idx := strings.Index(searchSpace, needle)
		if idx < 0 {
			return false
		}
		searchSpace = searchSpace[idx+len(needle):]
	}
	return true
}

func foldIfNeeded(s string, caseFold bool) string {
	if caseFold {
		return strings.ToUpper(s)
	}
	return s
}

// evalOrdering implements GreaterOrEqual/LessOrEqual: numeric comparison
// for integer syntax, lexicographic on the decoded string representation
// otherwise (spec.md §4.6). UNDEFINED if no value is comparable.
func evalOrdering(attr, assertion string, obj *Object, schema *Schema, greaterOrEqual bool) Trit {
	values, def, ok := resolve(attr, obj, schema)
	if !ok {
		return Undefined
	}
	anyComparable := false
	for _, v := range values {
		cmp, comparable := orderCompare(def.Syntax, v, assertion)
		if !comparable {
			continue
		}
		anyComparable = true
		if greaterOrEqual && cmp >= 0 {
			return True
		}
		if !greaterOrEqual && cmp <= 0 {
			return True
		}
	}
	if !anyComparable {
		return Undefined
	}
	return False
}

// orderCompare returns v <=> assertion, or comparable=false if the
// syntax has no defined ordering for assertion.
func orderCompare(syntax SyntaxCode, v Value, assertion string) (cmp int, comparable bool) {
	switch syntax {
	case SyntaxInteger:
		i, ok := v.AsInteger()
		if !ok {
			return 0, false
		}
		want, err := strconv.ParseInt(strings.TrimSpace(assertion), 10, 64)
		if err != nil {
			return 0, false
		}
		switch {
		case i < want:
			return -1, true
		case i > want:
			return 1, true
		default:
			return 0, true
		}
	case SyntaxString, SyntaxGUID, SyntaxSID, SyntaxDN:
		s, ok := v.AsString()
		if !ok {
			return 0, false
		}
		return strings.Compare(s, assertion), true
	default:
		return 0, false
	}
}

// evalExtensible implements spec.md §4.6's Extensible rule: with no
// matching rule, equality against the named attribute, or against every
// attribute if attr is omitted (TRUE if any matches); an unknown
// matching rule always evaluates UNDEFINED.
func evalExtensible(n *ExtensibleNode, obj *Object, schema *Schema, caseFold bool) Trit {
	if n.HasRule {
		// No matching rule OIDs are implemented.
		return Undefined
	}
	if n.HasAttr {
		return evalEquality(n.Attr, n.Value, obj, schema, caseFold)
	}

	anyComparable := false
	for _, id := range obj.AttributeIDs() {
		def, ok := schema.AttributeByID(id)
		if !ok {
			continue
		}
		values, _ := obj.Values(id)
		for _, v := range values {
			cmp, comparable := equalsValue(def.Syntax, v, n.Value, caseFold)
			if !comparable {
				continue
			}
			anyComparable = true
			if cmp {
				return True
			}
		}
	}
	if !anyComparable {
		return Undefined
	}
	return False
}
