// Package snapshot stores named reference values between runs and diffs fresh
// captures against them.
package snapshot

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffKind classifies one snapshot entry.
type DiffKind int

const (
	NoChange DiffKind = iota
	Added
	Removed
	Different
)

var diffKindNames = [...]string{
	NoChange:  "no change",
	Added:     "added",
	Removed:   "removed",
	Different: "different",
}

func (k DiffKind) String() string {
	if k < 0 || int(k) >= len(diffKindNames) {
		return "unknown"
	}
	return diffKindNames[k]
}

// Change is a run of lines that were added, removed or kept.
type Change struct {
	Value   string `json:"value"`
	Added   bool   `json:"added,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// Result is the diff of one named snapshot.
type Result struct {
	Kind    DiffKind `json:"kind"`
	Changes []Change `json:"changes"`
}

// ResultSet maps snapshot names to their diff results.
type ResultSet struct {
	Results map[string]Result
}

// Names returns the snapshot names in sorted order.
func (rs *ResultSet) Names() []string {
	names := make([]string, 0, len(rs.Results))
	for name := range rs.Results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of results of the given kind.
func (rs *ResultSet) Count(kind DiffKind) int {
	n := 0
	for _, r := range rs.Results {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// Changed reports whether any entry is not NoChange.
func (rs *ResultSet) Changed() bool {
	return rs.Count(NoChange) != len(rs.Results)
}

// Diff classifies every name in baseline and current.
func Diff(baseline, current Snapshots) *ResultSet {
	rs := &ResultSet{Results: make(map[string]Result, len(current))}

	for name, fresh := range current {
		old, ok := baseline[name]
		switch {
		case !ok:
			rs.Results[name] = Result{Kind: Added, Changes: []Change{{Value: fresh, Added: true}}}
		case old == fresh:
			rs.Results[name] = Result{Kind: NoChange, Changes: []Change{{Value: fresh}}}
		default:
			rs.Results[name] = Result{Kind: Different, Changes: DiffLines(old, fresh)}
		}
	}
	for name, old := range baseline {
		if _, ok := current[name]; !ok {
			rs.Results[name] = Result{Kind: Removed, Changes: []Change{{Value: old, Removed: true}}}
		}
	}
	return rs
}

// DiffLines computes a line-level diff between a and b. Consecutive lines with
// the same tag are merged into one Change.
func DiffLines(a, b string) []Change {
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	matcher := difflib.NewMatcherWithJunk(al, bl, false, nil)

	var changes []Change
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			changes = append(changes, Change{Value: strings.Join(al[op.I1:op.I2], "\n")})
		case 'd':
			changes = append(changes, Change{Value: strings.Join(al[op.I1:op.I2], "\n"), Removed: true})
		case 'i':
			changes = append(changes, Change{Value: strings.Join(bl[op.J1:op.J2], "\n"), Added: true})
		case 'r':
			changes = append(changes,
				Change{Value: strings.Join(al[op.I1:op.I2], "\n"), Removed: true},
				Change{Value: strings.Join(bl[op.J1:op.J2], "\n"), Added: true},
			)
		}
	}
	return changes
}
