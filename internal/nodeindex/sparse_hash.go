package nodeindex

import "github.com/osmium-go/osmcore/internal/location"

// SparseHash stores id/location pairs in a Go map. It is the right choice
// when ids are sparse relative to the id space (an extract covering a
// small region of a planet file, say) since it only pays for the ids
// actually seen.
type SparseHash struct {
	m map[int64]location.Location
}

// NewSparseHash returns an empty SparseHash.
func NewSparseHash() *SparseHash {
	return &SparseHash{m: make(map[int64]location.Location)}
}

func (s *SparseHash) Set(id int64, loc location.Location) {
	s.m[id] = loc
}

func (s *SparseHash) GetNoexcept(id int64) location.Location {
	loc, ok := s.m[id]
	if !ok {
		return location.Undefined
	}
	return loc
}

func (s *SparseHash) Get(id int64) (location.Location, error) {
	return getFromNoexcept(id, s.GetNoexcept(id))
}

func (s *SparseHash) Sort() {}

func (s *SparseHash) Clear() {
	s.m = make(map[int64]location.Location)
}

func (s *SparseHash) Size() int {
	return len(s.m)
}

func (s *SparseHash) UsedMemory() int64 {
	return int64(len(s.m)) * 24 // rough per-entry map overhead estimate
}
