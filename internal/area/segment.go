// Package area implements the Segment geometry primitive used to assemble
// way boundaries: a canonicalized pair of node references plus the
// ray-crossing and line-intersection predicates a sweep-line algorithm
// needs.
package area

import (
	"github.com/osmium-go/osmcore/internal/location"
)

// WayHandle is an opaque back-reference to the way a segment was taken
// from. It is deliberately not a pointer: callers resolve it against
// whatever way storage they hold (an entity.Buffer index, typically),
// which keeps Segment itself free of any lifetime dependency.
type WayHandle int

// Role distinguishes outer and inner ring membership for a segment cut out
// of a multipolygon relation; RoleUnknown is used for plain ways.
type Role int

const (
	RoleUnknown Role = iota
	RoleOuter
	RoleInner
)

// Segment is a canonicalized pair of node references: First is always the
// endpoint whose Location sorts first under location.Location.Less.
type Segment struct {
	First, Second location.NodeRef
	Way           WayHandle
	Role          Role
}

// NewSegment builds a Segment from two node references, swapping them if
// necessary so First.Loc <= Second.Loc.
func NewSegment(a, b location.NodeRef, way WayHandle, role Role) Segment {
	s := Segment{First: a, Second: b, Way: way, Role: role}
	if s.Second.Loc.Less(s.First.Loc) {
		s.First, s.Second = s.Second, s.First
	}
	return s
}

// Equal compares the two segments by endpoint location only, ignoring Way
// and Role — two segments cut from different ways can still coincide.
func (s Segment) Equal(other Segment) bool {
	return s.First.Loc == other.First.Loc && s.Second.Loc == other.Second.Loc
}

// Less orders segments by First then Second location, the order a
// sweep-line algorithm processes them in.
func (s Segment) Less(other Segment) bool {
	if s.First.Loc != other.First.Loc {
		return s.First.Loc.Less(other.First.Loc)
	}
	return s.Second.Loc.Less(other.Second.Loc)
}

// OutsideXRange reports whether other starts to the right of this
// segment's x-extent (other.First.X > s.Second.X), letting a sweep-line
// skip a to_left_of/intersection test entirely. An other lying wholly to
// the left of this segment is not detected.
func (s Segment) OutsideXRange(other Segment) bool {
	return other.First.Loc.X > s.Second.Loc.X
}

// YRangeOverlap reports whether the two segments' y-extents overlap.
func (s Segment) YRangeOverlap(other Segment) bool {
	minY, maxY := s.First.Loc.Y, s.Second.Loc.Y
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	oMinY, oMaxY := other.First.Loc.Y, other.Second.Loc.Y
	if oMaxY < oMinY {
		oMinY, oMaxY = oMaxY, oMinY
	}
	return minY <= oMaxY && oMinY <= maxY
}

// ToLeftOf reports whether the segment lies to the left of p, that is,
// whether it crosses the horizontal ray going left from p. A p that
// coincides with either endpoint yields false. It implements the
// ray-crossing test libosmium uses to decide ring orientation and
// point-in-polygon membership, operating on exact int64 arithmetic of the
// fixed-point coordinates.
func (s Segment) ToLeftOf(p location.Location) bool {
	a, b := s.First.Loc, s.Second.Loc
	if a == p || b == p {
		return false
	}
	lo, hi := a, b
	if hi.Y < lo.Y {
		lo, hi = hi, lo
	}
	if lo.Y >= p.Y {
		return false
	}
	if hi.Y < p.Y {
		return false
	}
	if a.X > p.X {
		return false
	}
	ax, ay := int64(lo.X), int64(lo.Y)
	bx, by := int64(hi.X), int64(hi.Y)
	lx, ly := int64(p.X), int64(p.Y)
	return (bx-ax)*(ly-ay)-(by-ay)*(lx-ax) <= 0
}

// CalculateIntersection returns the point at which s1 and s2 cross, or
// location.Undefined if they are parallel, do not cross within both
// segments' extents, or share an endpoint (a shared endpoint is not
// treated as a crossing). The line-intersection arithmetic runs in
// floating point degrees, matching the original double-precision
// implementation it is ported from.
func CalculateIntersection(s1, s2 Segment) location.Location {
	if s1.First.Loc == s2.First.Loc || s1.First.Loc == s2.Second.Loc ||
		s1.Second.Loc == s2.First.Loc || s1.Second.Loc == s2.Second.Loc {
		return location.Undefined
	}

	x1, y1 := s1.First.Loc.Lon(), s1.First.Loc.Lat()
	x2, y2 := s1.Second.Loc.Lon(), s1.Second.Loc.Lat()
	x3, y3 := s2.First.Loc.Lon(), s2.First.Loc.Lat()
	x4, y4 := s2.Second.Loc.Lon(), s2.Second.Loc.Lat()

	denom := (y4-y3)*(x2-x1) - (x4-x3)*(y2-y1)
	if denom == 0 {
		return location.Undefined
	}
	numeA := (y1-y3)*(x4-x3) - (x1-x3)*(y4-y3)
	numeB := (y1-y3)*(x2-x1) - (x1-x3)*(y2-y1)

	ua := numeA / denom
	ub := numeB / denom
	if denom > 0 {
		if numeA < 0 || numeA > denom || numeB < 0 || numeB > denom {
			return location.Undefined
		}
	} else {
		if numeA > 0 || numeA < denom || numeB > 0 || numeB < denom {
			return location.Undefined
		}
	}

	ix := x1 + ua*(x2-x1)
	iy := y1 + ua*(y2-y1)
	_ = ub
	loc, err := location.FromLonLat(ix, iy)
	if err != nil {
		return location.Undefined
	}
	return loc
}
