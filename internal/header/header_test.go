package header

import (
	"testing"

	"github.com/osmium-go/osmcore/internal/location"
	"github.com/osmium-go/osmcore/internal/pbfwire"
)

func TestFromPBFWithBBox(t *testing.T) {
	hb := pbfwire.HeaderBlock{
		BBox:             &pbfwire.HeaderBBox{Left: -1000000000, Right: 1000000000, Top: 2000000000, Bottom: -2000000000},
		RequiredFeatures: []string{"OsmSchema-V0.6", "DenseNodes"},
		WritingProgram:   "osmcore-test",
	}
	h := FromPBF(hb)
	if !h.BBox.Set {
		t.Fatalf("expected BBox.Set = true")
	}
	if h.BBox.MinLon != -1 || h.BBox.MaxLon != 1 {
		t.Errorf("lon bounds = [%v,%v], want [-1,1]", h.BBox.MinLon, h.BBox.MaxLon)
	}
	if h.BBox.MinLat != -2 || h.BBox.MaxLat != 2 {
		t.Errorf("lat bounds = [%v,%v], want [-2,2]", h.BBox.MinLat, h.BBox.MaxLat)
	}
	if h.HasMultipleObjectVersions() {
		t.Errorf("expected HasMultipleObjectVersions = false")
	}
}

func TestFromPBFWithoutBBox(t *testing.T) {
	h := FromPBF(pbfwire.HeaderBlock{})
	if h.BBox.Set {
		t.Errorf("expected BBox.Set = false when no HeaderBBox present")
	}
}

func TestHasMultipleObjectVersions(t *testing.T) {
	h := FromPBF(pbfwire.HeaderBlock{RequiredFeatures: []string{"HistoricalInformation"}})
	if !h.HasMultipleObjectVersions() {
		t.Errorf("expected HasMultipleObjectVersions = true")
	}
}

func TestContainsWithUnsetBBoxAlwaysTrue(t *testing.T) {
	h := Header{}
	loc, err := location.FromLonLat(100, 80)
	if err != nil {
		t.Fatalf("FromLonLat error: %v", err)
	}
	if !h.Contains(loc) {
		t.Errorf("unset bbox should contain every location")
	}
}

func TestContainsRespectsBBox(t *testing.T) {
	h := Header{BBox: Box{MinLon: -1, MaxLon: 1, MinLat: -1, MaxLat: 1, Set: true}}
	inside, err := location.FromLonLat(0, 0)
	if err != nil {
		t.Fatalf("FromLonLat error: %v", err)
	}
	outside, err := location.FromLonLat(5, 5)
	if err != nil {
		t.Fatalf("FromLonLat error: %v", err)
	}
	if !h.Contains(inside) {
		t.Errorf("expected (0,0) to be inside the bbox")
	}
	if h.Contains(outside) {
		t.Errorf("expected (5,5) to be outside the bbox")
	}
}
