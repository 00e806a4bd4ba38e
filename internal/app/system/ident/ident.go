// Package ident resolves record references supplied in admin routes.
//
// A reference is resolved once at the HTTP boundary into a typed Ref instead
// of scattering lenient string/number comparisons across the collection
// editors. Collections created before identifier fields existed hold records
// addressable only by position; education is the one collection that still
// honors that legacy form.
package ident

import "strconv"

// Ref is a resolved record reference: always an id candidate, and a position
// candidate when the raw value parses as a non-negative integer.
type Ref struct {
	ID       string
	Position int
	HasPos   bool
}

// Resolve parses a raw route parameter into a Ref.
func Resolve(raw string) Ref {
	ref := Ref{ID: raw, Position: -1}
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		ref.Position = n
		ref.HasPos = true
	}
	return ref
}

// Matches reports whether a stored id equals the reference id.
// Stored ids are normalized to strings at decode time (models.FlexID), so a
// legacy numeric id "3" matches the route parameter "3" here.
func (r Ref) Matches(storedID string) bool {
	return storedID != "" && storedID == r.ID
}

// FindByID returns the index of the record whose id matches, or -1.
func FindByID(ids []string, ref Ref) int {
	for i, id := range ids {
		if ref.Matches(id) {
			return i
		}
	}
	return -1
}

// FindWithPositionFallback resolves a reference against a collection that may
// contain legacy records. An exact id match always wins — even when the id
// happens to look numeric. Only when no id matches and the reference parses
// as an in-bounds index is it treated as a position.
//
// Positions are evaluated against the collection as it exists now; deletions
// shift later records down, so a stale legacy reference lands on whatever
// record currently occupies that index.
func FindWithPositionFallback(ids []string, ref Ref) int {
	if i := FindByID(ids, ref); i >= 0 {
		return i
	}
	if ref.HasPos && ref.Position < len(ids) {
		return ref.Position
	}
	return -1
}
