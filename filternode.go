// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import (
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// FilterNode is the tagged union spec.md §3 describes for a parsed RFC
// 4515 filter tree. Assertion values are always stored raw (unescaped);
// type coercion and escaping both happen later, at evaluation or
// rendering time, never at parse time.
type FilterNode interface {
	// String renders the node back to RFC 4515 text, fully parenthesized.
	// Used by the parser round-trip property in spec.md §8.
	String() string

	filterNode()
}

// PresentNode matches (attr=*): TRUE iff attr has at least one value.
type PresentNode struct {
	Attr string
}

func (n *PresentNode) filterNode() {}
func (n *PresentNode) String() string {
	return "(" + n.Attr + "=*)"
}

// EqualityNode matches (attr=value).
type EqualityNode struct {
	Attr  string
	Value string
}

func (n *EqualityNode) filterNode() {}
func (n *EqualityNode) String() string {
	return "(" + n.Attr + "=" + ldap.EscapeFilter(n.Value) + ")"
}

// SubstringNode matches (attr=initial*any1*any2*final). HasInitial/HasFinal
// distinguish "no anchor" from "anchor on the empty string" — both are
// possible and distinct per RFC 4515.
type SubstringNode struct {
	Attr       string
	Initial    string
	Any        []string
	Final      string
	HasInitial bool
	HasFinal   bool
}

func (n *SubstringNode) filterNode() {}
func (n *SubstringNode) String() string {
	var parts []string
	if n.HasInitial {
		parts = append(parts, ldap.EscapeFilter(n.Initial))
	} else {
		parts = append(parts, "")
	}
	for _, a := range n.Any {
		parts = append(parts, ldap.EscapeFilter(a))
	}
	if n.HasFinal {
		parts = append(parts, ldap.EscapeFilter(n.Final))
	} else {
		parts = append(parts, "")
	}
	return "(" + n.Attr + "=" + strings.Join(parts, "*") + ")"
}

// GreaterOrEqualNode matches (attr>=value).
type GreaterOrEqualNode struct {
	Attr  string
	Value string
}

func (n *GreaterOrEqualNode) filterNode() {}
func (n *GreaterOrEqualNode) String() string {
	return "(" + n.Attr + ">=" + ldap.EscapeFilter(n.Value) + ")"
}

// LessOrEqualNode matches (attr<=value).
type LessOrEqualNode struct {
	Attr  string
	Value string
}

func (n *LessOrEqualNode) filterNode() {}
func (n *LessOrEqualNode) String() string {
	return "(" + n.Attr + "<=" + ldap.EscapeFilter(n.Value) + ")"
}

// ApproxMatchNode matches (attr~=value); evaluated as Equality
// (spec.md §4.6, §9 Open Question 3: no phonetic matching).
type ApproxMatchNode struct {
	Attr  string
	Value string
}

func (n *ApproxMatchNode) filterNode() {}
func (n *ApproxMatchNode) String() string {
	return "(" + n.Attr + "~=" + ldap.EscapeFilter(n.Value) + ")"
}

// ExtensibleNode matches attr[:dn][:rule]:=value. Attr and MatchingRule
// are optional; HasAttr/HasRule distinguish omission from an empty
// string.
type ExtensibleNode struct {
	Attr         string
	HasAttr      bool
	MatchingRule string
	HasRule      bool
	DNAttributes bool
	Value        string
}

func (n *ExtensibleNode) filterNode() {}
func (n *ExtensibleNode) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	if n.HasAttr {
		sb.WriteString(n.Attr)
	}
	if n.DNAttributes {
		sb.WriteString(":dn")
	}
	if n.HasRule {
		sb.WriteByte(':')
		sb.WriteString(n.MatchingRule)
	}
	sb.WriteString(":=")
	sb.WriteString(ldap.EscapeFilter(n.Value))
	sb.WriteByte(')')
	return sb.String()
}

// AndNode matches (&c1c2...). An empty And matches TRUE (RFC 4526).
type AndNode struct {
	Children []FilterNode
}

func (n *AndNode) filterNode() {}
func (n *AndNode) String() string {
	return "(&" + joinChildren(n.Children) + ")"
}

// OrNode matches (|c1c2...). An empty Or matches FALSE (RFC 4526).
type OrNode struct {
	Children []FilterNode
}

func (n *OrNode) filterNode() {}
func (n *OrNode) String() string {
	return "(|" + joinChildren(n.Children) + ")"
}

// NotNode matches (!c). UNDEFINED stays UNDEFINED (spec.md §4.6, §9).
type NotNode struct {
	Child FilterNode
}

func (n *NotNode) filterNode() {}
func (n *NotNode) String() string {
	return "(!" + n.Child.String() + ")"
}

func joinChildren(children []FilterNode) string {
	var sb strings.Builder
	for _, c := range children {
		sb.WriteString(c.String())
	}
	return sb.String()
}
