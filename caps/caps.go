// caps.go defines Caps: an ordered list of capability alternatives.

// Package caps implements capability descriptions exchanged during format
// negotiation: ordered lists of structures whose fields are fixed values,
// lists or ranges.
package caps

import (
	"strings"
)

const MediaTypeRawVideo = "video/x-raw"

// Caps is an ordered list of alternatives; earlier alternatives are preferred.
// An empty Caps accepts nothing.
type Caps []Structure

func (c Caps) Copy() Caps {
	if c == nil {
		return nil
	}
	result := make(Caps, len(c))
	for idx, s := range c {
		result[idx] = s.Copy()
	}
	return result
}

func (c Caps) IsEmpty() bool {
	return len(c) == 0
}

// IsFixed is true when the caps describe exactly one concrete format.
func (c Caps) IsFixed() bool {
	return len(c) == 1 && c[0].IsFixed()
}

func (c Caps) merge(s Structure) Caps {
	for _, existing := range c {
		if existing.Equal(s) {
			return c
		}
	}
	return append(c, s)
}

// Intersect returns caps accepting what both c and other accept, ordered by c:
// every alternative of c is intersected with every alternative of other in
// turn, and the non-empty results are kept in that order.
func (c Caps) Intersect(other Caps) Caps {
	var result Caps
	for _, s1 := range c {
		for _, s2 := range other {
			s, ok := s1.Intersect(s2)
			if !ok {
				continue
			}
			result = result.merge(s)
		}
	}
	return result
}

func (c Caps) CanIntersect(other Caps) bool {
	for _, s1 := range c {
		for _, s2 := range other {
			if _, ok := s1.Intersect(s2); ok {
				return true
			}
		}
	}
	return false
}

// Fixate reduces the caps to their first alternative with every field fixed.
func (c Caps) Fixate() Caps {
	if len(c) == 0 {
		return nil
	}
	return Caps{c[0].Fixate()}
}

func (c Caps) Equal(other Caps) bool {
	if len(c) != len(other) {
		return false
	}
	for idx := range c {
		if !c[idx].Equal(other[idx]) {
			return false
		}
	}
	return true
}

func (c Caps) String() string {
	if len(c) == 0 {
		return "EMPTY"
	}
	parts := make([]string, 0, len(c))
	for _, s := range c {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "; ")
}
