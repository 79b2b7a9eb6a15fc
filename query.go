// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adx

import "time"

// ProjectedObject is one matched directory object, already reduced to the
// requested attribute projection and rendered to display strings
// (spec.md §6).
type ProjectedObject struct {
	DN         string
	Attributes []ProjectedAttribute
}

// ProjectedAttribute is one attribute's rendered value sequence, in the
// order the object's record declared them.
type ProjectedAttribute struct {
	Name   string
	Values []string
}

// QueryOptions configures a single Query call.
type QueryOptions struct {
	// Projection, if non-empty, restricts output to these attribute
	// names (case-insensitive lookup). A nil/empty slice passes every
	// attribute through.
	Projection []string

	// Limit caps the number of matched objects returned. Zero means no
	// limit. Limit is applied after match, not before (spec.md §4.7).
	Limit int

	// CaseFold controls case folding for string-valued assertion
	// comparisons (attribute name resolution is always case-insensitive
	// regardless of this flag).
	CaseFold bool

	// Stats, if true, causes Query to return populated Stats; otherwise
	// Stats is the zero value.
	Stats bool
}

// Stats accumulates QueryEngine counters over one Query call (spec.md
// §4.7).
type Stats struct {
	ObjectsScanned int
	ObjectsMatched int
	DecodeErrors   int
	Elapsed        time.Duration
	Warnings       []DecodeWarning
}

// QueryResult is the outcome of one Query call: the matched, projected
// objects in snapshot order, optional counters, and any fatal error that
// terminated iteration early (spec.md §4.7, §4.8 propagation: fatal
// errors are returned after flushing already-matched results).
type QueryResult struct {
	Objects []ProjectedObject
	Stats   Stats
	Err     error
}

// Query parses filterText once, then streams every object out of the
// snapshot through the filter evaluator, in file order, yielding
// projected results for every match. Limit is a post-match cutoff:
// iteration stops as soon as enough matches are found, it does not
// bound how many objects are scanned before the first match.
func (s *Snapshot) Query(filterText string, opts QueryOptions) QueryResult {
	start := time.Now()

	node, err := ParseFilter(filterText)
	if err != nil {
		return QueryResult{Err: err}
	}

	var projection map[string]bool
	if len(opts.Projection) > 0 {
		projection = make(map[string]bool, len(opts.Projection))
		for _, name := range opts.Projection {
			projection[asciiLower(name)] = true
		}
	}

	var result QueryResult
	it := s.Objects()
	for {
		obj, ok := it.Next()
		if !ok {
			break
		}
		result.Stats.ObjectsScanned++

		if Evaluate(node, obj, s.schema, opts.CaseFold) != True {
			continue
		}
		result.Stats.ObjectsMatched++
		result.Objects = append(result.Objects, projectObject(obj, s.schema, projection))

		if opts.Limit > 0 && len(result.Objects) >= opts.Limit {
			break
		}
	}

	result.Stats.DecodeErrors = len(it.DecodeWarnings())
	result.Stats.Warnings = it.DecodeWarnings()
	result.Err = it.Err()

	if !opts.Stats {
		result.Stats = Stats{}
	} else {
		result.Stats.Elapsed = time.Since(start)
	}
	return result
}

// projectObject reduces obj to the requested attribute subset (or every
// attribute, if projection is nil) and renders its values to display
// strings, preserving record order.
func projectObject(obj *Object, schema *Schema, projection map[string]bool) ProjectedObject {
	po := ProjectedObject{DN: obj.DN}
	for _, id := range obj.AttributeIDs() {
		def, ok := schema.AttributeByID(id)
		name := def.Name
		if !ok {
			name = "?"
		}
		if projection != nil && !projection[asciiLower(name)] {
			continue
		}
		values, _ := obj.Values(id)
		rendered := make([]string, len(values))
		for i, v := range values {
			rendered[i] = v.Render()
		}
		po.Attributes = append(po.Attributes, ProjectedAttribute{Name: name, Values: rendered})
	}
	return po
}
