package location

import "testing"

func TestFromLonLatRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
	}{
		{"origin", 0, 0},
		{"positive", 1.0, 2.0},
		{"negative", -122.4194, 37.7749},
		{"max bounds", 180, 90},
		{"min bounds", -180, -90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := FromLonLat(tt.lon, tt.lat)
			if err != nil {
				t.Fatalf("FromLonLat(%v, %v) error: %v", tt.lon, tt.lat, err)
			}
			if !loc.Valid() {
				t.Fatalf("expected valid location")
			}
			gotLon, gotLat := loc.Lon(), loc.Lat()
			const eps = 1e-6
			if diff := gotLon - tt.lon; diff > eps || diff < -eps {
				t.Errorf("lon round trip: got %v want %v", gotLon, tt.lon)
			}
			if diff := gotLat - tt.lat; diff > eps || diff < -eps {
				t.Errorf("lat round trip: got %v want %v", gotLat, tt.lat)
			}
		})
	}
}

func TestFromLonLatOutOfRange(t *testing.T) {
	if _, err := FromLonLat(200, 0); err == nil {
		t.Errorf("expected error for out-of-range longitude")
	}
	if _, err := FromLonLat(0, 95); err == nil {
		t.Errorf("expected error for out-of-range latitude")
	}
}

func TestUndefinedIsInvalid(t *testing.T) {
	if Undefined.Valid() {
		t.Errorf("Undefined.Valid() should be false")
	}
	var zero Location
	if !zero.Valid() {
		t.Errorf("zero value is the real coordinate (0,0), not the undefined sentinel, and should be valid")
	}
}

func TestLess(t *testing.T) {
	a := Location{X: 1, Y: 5}
	b := Location{X: 1, Y: 6}
	c := Location{X: 2, Y: 0}
	if !a.Less(b) {
		t.Errorf("a should be less than b")
	}
	if !b.Less(c) {
		t.Errorf("b should be less than c")
	}
	if c.Less(a) {
		t.Errorf("c should not be less than a")
	}
}

func TestSetLonLatPartial(t *testing.T) {
	data := []byte("1.234567 ")
	pos := 0
	var loc Location
	if err := loc.SetLonPartial(data, &pos); err != nil {
		t.Fatalf("SetLonPartial error: %v", err)
	}
	if loc.X != 12345670 {
		t.Errorf("got X=%d want 12345670", loc.X)
	}
	if data[pos] != ' ' {
		t.Errorf("cursor did not stop at terminator, left at byte %q", data[pos])
	}
}

func TestSetLonPartialTruncatesExtraDigits(t *testing.T) {
	data := []byte("2.123456789")
	pos := 0
	var loc Location
	if err := loc.SetLonPartial(data, &pos); err != nil {
		t.Fatalf("SetLonPartial error: %v", err)
	}
	if loc.X != 21234567 {
		t.Errorf("got X=%d want 21234567 (trailing digits truncated)", loc.X)
	}
	if pos != len(data) {
		t.Errorf("expected cursor to advance past all digits, got pos=%d", pos)
	}
}

func TestSetLatPartialNegative(t *testing.T) {
	data := []byte("-37.5")
	pos := 0
	var loc Location
	if err := loc.SetLatPartial(data, &pos); err != nil {
		t.Fatalf("SetLatPartial error: %v", err)
	}
	if loc.Y != -375000000 {
		t.Errorf("got Y=%d want -375000000", loc.Y)
	}
}
