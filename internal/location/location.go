// Package location implements the fixed-point geocoordinate used
// throughout the OSM data model: a pair of int32 values holding
// longitude and latitude scaled by 1e7.
package location

import (
	"math"

	"github.com/osmium-go/osmcore/internal/oerr"
)

const (
	precision     = 10000000 // 1e7
	coordMin      = math.MinInt32
	maxValidDeg   = 180.0
	maxValidLat   = 90.0
)

// Location is a lon/lat pair scaled by 1e7 and stored as int32. The value
// with both fields at coordMin is the undefined location; the zero value
// is the real coordinate (0,0).
type Location struct {
	X int32 // longitude * 1e7
	Y int32 // latitude * 1e7
}

// Undefined is the sentinel returned for coordinates that have never been
// set.
var Undefined = Location{X: coordMin, Y: coordMin}

// Valid reports whether the location is anything other than Undefined.
func (l Location) Valid() bool {
	return l != Undefined
}

// Lon returns the floating point longitude.
func (l Location) Lon() float64 {
	return float64(l.X) / precision
}

// Lat returns the floating point latitude.
func (l Location) Lat() float64 {
	return float64(l.Y) / precision
}

// Less implements the lexicographic (x, y) total order used to canonicalize
// segments and to sort sparse-array index backends.
func (l Location) Less(other Location) bool {
	if l.X != other.X {
		return l.X < other.X
	}
	return l.Y < other.Y
}

// FromLonLat builds a Location from floating point degrees, truncating
// toward zero at the 7th decimal digit. It returns an error if the
// resulting fixed-point value would not fit in an int32 or if the
// coordinates are outside the valid lon/lat range.
func FromLonLat(lon, lat float64) (Location, error) {
	if lon < -maxValidDeg || lon > maxValidDeg || lat < -maxValidLat || lat > maxValidLat {
		return Undefined, &oerr.InvalidLocationError{Msg: "coordinate out of range"}
	}
	x := math.Trunc(lon * precision)
	y := math.Trunc(lat * precision)
	if x < math.MinInt32 || x > math.MaxInt32 || y < math.MinInt32 || y > math.MaxInt32 {
		return Undefined, &oerr.InvalidLocationError{Msg: "coordinate overflows fixed-point representation"}
	}
	loc := Location{X: int32(x), Y: int32(y)}
	if loc == Undefined {
		return Undefined, &oerr.InvalidLocationError{Msg: "coordinate collides with undefined sentinel"}
	}
	return loc, nil
}

// FromScaled builds a Location directly from already-scaled (×1e7)
// integers, as used when reading PBF dense-node deltas.
func FromScaled(x, y int32) Location {
	return Location{X: x, Y: y}
}

// parsePartialFixed decodes a textual fixed-point number of the form
// [-]digits[.digits] starting at data[*pos], advancing *pos past every
// character it consumes (including fractional digits beyond the 7th,
// which are consumed but truncated from the value). It mirrors libosmium's
// set_lon_partial/set_lat_partial cursor-advancing parse.
func parsePartialFixed(data []byte, pos *int) (int32, error) {
	start := *pos
	neg := false
	i := *pos
	if i < len(data) && data[i] == '-' {
		neg = true
		i++
	}
	digitsStart := i
	var intPart int64
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		intPart = intPart*10 + int64(data[i]-'0')
		i++
	}
	if i == digitsStart {
		return 0, &oerr.InvalidLocationError{Msg: "expected digits"}
	}
	var fracPart int64
	fracDigits := 0
	if i < len(data) && data[i] == '.' {
		i++
		for i < len(data) && data[i] >= '0' && data[i] <= '9' {
			if fracDigits < 7 {
				fracPart = fracPart*10 + int64(data[i]-'0')
				fracDigits++
			}
			i++
		}
	}
	for fracDigits < 7 {
		fracPart *= 10
		fracDigits++
	}
	value := intPart*precision + fracPart
	if neg {
		value = -value
	}
	if value < math.MinInt32 || value > math.MaxInt32 {
		*pos = start
		return 0, &oerr.InvalidLocationError{Msg: "coordinate overflows fixed-point representation"}
	}
	*pos = i
	return int32(value), nil
}

// SetLonPartial decodes a textual longitude starting at data[*pos] and
// stores it in l.X, advancing *pos past the consumed bytes.
func (l *Location) SetLonPartial(data []byte, pos *int) error {
	v, err := parsePartialFixed(data, pos)
	if err != nil {
		return err
	}
	l.X = v
	return nil
}

// SetLatPartial decodes a textual latitude starting at data[*pos] and
// stores it in l.Y, advancing *pos past the consumed bytes.
func (l *Location) SetLatPartial(data []byte, pos *int) error {
	v, err := parsePartialFixed(data, pos)
	if err != nil {
		return err
	}
	l.Y = v
	return nil
}

// NodeRef pairs a node id with its resolved location. The location may be
// Undefined if it has not yet been looked up.
type NodeRef struct {
	Ref int64
	Loc Location
}

// Less orders NodeRefs by location, matching the ordering Segment relies
// on to canonicalize its endpoints.
func (n NodeRef) Less(other NodeRef) bool {
	return n.Loc.Less(other.Loc)
}
