package nodeindex

import (
	"sort"

	"github.com/osmium-go/osmcore/internal/location"
)

type idLoc struct {
	ID  int64
	Loc location.Location
}

// SparseArray stores id/location pairs in an append-only slice. Set is
// O(1) (just an append); Sort compacts duplicate ids (last write wins)
// and orders the slice by id so Get can binary search. Calling Get before
// ever calling Sort still works, just at O(n) instead of O(log n) — a
// correctness fallback, not the intended usage.
type SparseArray struct {
	data   []idLoc
	sorted bool
}

// NewSparseArray returns an empty SparseArray.
func NewSparseArray() *SparseArray {
	return &SparseArray{}
}

func (s *SparseArray) Set(id int64, loc location.Location) {
	s.data = append(s.data, idLoc{ID: id, Loc: loc})
	s.sorted = false
}

func (s *SparseArray) GetNoexcept(id int64) location.Location {
	if s.sorted {
		i := sort.Search(len(s.data), func(i int) bool { return s.data[i].ID >= id })
		if i < len(s.data) && s.data[i].ID == id {
			return s.data[i].Loc
		}
		return location.Undefined
	}
	for i := len(s.data) - 1; i >= 0; i-- {
		if s.data[i].ID == id {
			return s.data[i].Loc
		}
	}
	return location.Undefined
}

func (s *SparseArray) Get(id int64) (location.Location, error) {
	return getFromNoexcept(id, s.GetNoexcept(id))
}

// Sort orders the entries by id and drops all but the last value written
// for each duplicate id.
func (s *SparseArray) Sort() {
	sort.SliceStable(s.data, func(i, j int) bool { return s.data[i].ID < s.data[j].ID })
	deduped := s.data[:0]
	for i, e := range s.data {
		if i+1 < len(s.data) && s.data[i+1].ID == e.ID {
			continue // a later entry with the same id wins
		}
		deduped = append(deduped, e)
	}
	s.data = deduped
	s.sorted = true
}

func (s *SparseArray) Clear() {
	s.data = nil
	s.sorted = false
}

func (s *SparseArray) Size() int {
	return len(s.data)
}

func (s *SparseArray) UsedMemory() int64 {
	return int64(len(s.data)) * 16
}
