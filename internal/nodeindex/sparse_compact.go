package nodeindex

import (
	"sort"

	"github.com/osmium-go/osmcore/internal/location"
)

// SparseCompact stores the same sparse id/location pairs as SparseArray
// but in two parallel slices instead of a slice of structs, trading a
// little code complexity for better cache behavior on the binary-search
// id lookup (the id slice alone fits more ids per cache line).
type SparseCompact struct {
	ids    []int64
	locs   []location.Location
	sorted bool
}

// NewSparseCompact returns an empty SparseCompact.
func NewSparseCompact() *SparseCompact {
	return &SparseCompact{}
}

func (s *SparseCompact) Set(id int64, loc location.Location) {
	s.ids = append(s.ids, id)
	s.locs = append(s.locs, loc)
	s.sorted = false
}

func (s *SparseCompact) GetNoexcept(id int64) location.Location {
	if s.sorted {
		i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
		if i < len(s.ids) && s.ids[i] == id {
			return s.locs[i]
		}
		return location.Undefined
	}
	for i := len(s.ids) - 1; i >= 0; i-- {
		if s.ids[i] == id {
			return s.locs[i]
		}
	}
	return location.Undefined
}

func (s *SparseCompact) Get(id int64) (location.Location, error) {
	return getFromNoexcept(id, s.GetNoexcept(id))
}

func (s *SparseCompact) Sort() {
	idx := make([]int, len(s.ids))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return s.ids[idx[a]] < s.ids[idx[b]] })

	newIDs := make([]int64, 0, len(idx))
	newLocs := make([]location.Location, 0, len(idx))
	for i, pos := range idx {
		if i+1 < len(idx) && s.ids[idx[i+1]] == s.ids[pos] {
			continue
		}
		newIDs = append(newIDs, s.ids[pos])
		newLocs = append(newLocs, s.locs[pos])
	}
	s.ids = newIDs
	s.locs = newLocs
	s.sorted = true
}

func (s *SparseCompact) Clear() {
	s.ids = nil
	s.locs = nil
	s.sorted = false
}

func (s *SparseCompact) Size() int {
	return len(s.ids)
}

func (s *SparseCompact) UsedMemory() int64 {
	return int64(len(s.ids)) * 12
}
