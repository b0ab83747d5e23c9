/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelreconciler

import "strings"

// Canonicalizer maps lower-cased label names to the repository's spelling.
type Canonicalizer map[string]string

// NewCanonicalizer indexes existing. If two repository labels differ only
// by case, the first one listed wins.
func NewCanonicalizer(existing []string) Canonicalizer {
	c := make(Canonicalizer, len(existing))
	for _, name := range existing {
		key := strings.ToLower(name)
		if _, ok := c[key]; !ok {
			c[key] = name
		}
	}
	return c
}

// Canonical returns the repository spelling of label, if it exists.
func (c Canonicalizer) Canonical(label string) (string, bool) {
	name, ok := c[strings.ToLower(label)]
	return name, ok
}

// Filter keeps the suggestions that name a repository label, in suggestion
// order, replacing each with its canonical spelling. Only misses are
// removed; each is passed to onMiss.
func (c Canonicalizer) Filter(suggested []string, onMiss func(string)) []string {
	out := make([]string, 0, len(suggested))
	for _, label := range suggested {
		name, ok := c.Canonical(label)
		if !ok {
			if onMiss != nil {
				onMiss(label)
			}
			continue
		}
		out = append(out, name)
	}
	return out
}

// Reconcile is shorthand for NewCanonicalizer(existing).Filter(suggested, nil).
func Reconcile(existing, suggested []string) []string {
	return NewCanonicalizer(existing).Filter(suggested, nil)
}

// Union returns the distinct labels of current and added. Matching is
// exact. The result lists current labels first, then new ones.
func Union(current, added []string) []string {
	out := make([]string, 0, len(current)+len(added))
	seen := make(map[string]struct{}, len(current)+len(added))
	for _, list := range [][]string{current, added} {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
