package area

import (
	"testing"

	"github.com/osmium-go/osmcore/internal/location"
)

func nr(id int64, x, y int32) location.NodeRef {
	return location.NodeRef{Ref: id, Loc: location.Location{X: x, Y: y}}
}

func TestNewSegmentCanonicalizes(t *testing.T) {
	a := nr(1, 10, 10)
	b := nr(2, 5, 5)
	s := NewSegment(a, b, 0, RoleUnknown)
	if s.First.Ref != 2 || s.Second.Ref != 1 {
		t.Errorf("expected endpoints swapped so First has the smaller location, got First=%d Second=%d", s.First.Ref, s.Second.Ref)
	}

	// already-ordered pair stays as-is
	s2 := NewSegment(b, a, 0, RoleUnknown)
	if s2.First.Ref != 2 || s2.Second.Ref != 1 {
		t.Errorf("expected stable ordering, got First=%d Second=%d", s2.First.Ref, s2.Second.Ref)
	}
}

func TestSegmentEqualIgnoresWayAndRole(t *testing.T) {
	a := nr(1, 0, 0)
	b := nr(2, 10, 10)
	s1 := NewSegment(a, b, WayHandle(1), RoleOuter)
	s2 := NewSegment(a, b, WayHandle(2), RoleInner)
	if !s1.Equal(s2) {
		t.Errorf("segments with identical endpoints should be equal regardless of way/role")
	}
}

func TestToLeftOf(t *testing.T) {
	// vertical segment from (0,0) to (0,10)
	s := NewSegment(nr(1, 0, 0), nr(2, 0, 10), 0, RoleUnknown)

	// ToLeftOf reports whether the segment lies to the left of p, i.e.
	// crosses the horizontal ray going left from p.
	tests := []struct {
		name string
		p    location.Location
		want bool
	}{
		{"point to the left", location.Location{X: -5, Y: 5}, false},
		{"point to the right", location.Location{X: 5, Y: 5}, true},
		{"point below segment y-range", location.Location{X: -5, Y: -5}, false},
		{"point above segment y-range", location.Location{X: -5, Y: 15}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ToLeftOf(tt.p); got != tt.want {
				t.Errorf("ToLeftOf(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCalculateIntersectionCrossing(t *testing.T) {
	s1 := NewSegment(nr(1, 0, 0), nr(2, 100000000, 100000000), 0, RoleUnknown)
	s2 := NewSegment(nr(3, 0, 100000000), nr(4, 100000000, 0), 0, RoleUnknown)
	got := CalculateIntersection(s1, s2)
	if !got.Valid() {
		t.Fatalf("expected a valid intersection point")
	}
	const eps = 1e-4
	if diff := got.Lon() - 5.0; diff > eps || diff < -eps {
		t.Errorf("got lon %v want ~5.0", got.Lon())
	}
	if diff := got.Lat() - 5.0; diff > eps || diff < -eps {
		t.Errorf("got lat %v want ~5.0", got.Lat())
	}
}

func TestCalculateIntersectionParallel(t *testing.T) {
	s1 := NewSegment(nr(1, 0, 0), nr(2, 100000000, 0), 0, RoleUnknown)
	s2 := NewSegment(nr(3, 0, 10000000), nr(4, 100000000, 10000000), 0, RoleUnknown)
	if got := CalculateIntersection(s1, s2); got.Valid() {
		t.Errorf("parallel segments should not intersect, got %v", got)
	}
}

func TestCalculateIntersectionSharedEndpoint(t *testing.T) {
	shared := nr(1, 0, 0)
	s1 := NewSegment(shared, nr(2, 100000000, 0), 0, RoleUnknown)
	s2 := NewSegment(shared, nr(3, 0, 100000000), 0, RoleUnknown)
	if got := CalculateIntersection(s1, s2); got.Valid() {
		t.Errorf("segments sharing an endpoint should not report an intersection, got %v", got)
	}
}
