package nodeindex

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/edsrzf/mmap-go"

	"github.com/osmium-go/osmcore/internal/location"
)

const sparseRecordSize = 16 // int64 id, int32 x, int32 y

// SparseMmap stores sparse id/location pairs in an append-only,
// memory-mapped file. Each instance creates a new temporary file; Close
// leaves the file on disk, but the record count lives only in memory and
// there is no constructor that reopens an existing file, so the index is
// not reused across runs. Lookups before Sort fall back to an O(n) scan
// exactly like SparseArray.
type SparseMmap struct {
	f        *os.File
	m        mmap.MMap
	capacity int64 // record slots
	count    int64
	sorted   bool
}

// NewSparseMmap creates a backing file inside dir (the OS temp directory
// if dir is empty) and maps it.
func NewSparseMmap(dir string) (Index, error) {
	f, err := os.CreateTemp(dir, "sparsemmapidx-*.bin")
	if err != nil {
		return nil, fmt.Errorf("sparse mmap index: %w", err)
	}
	s := &SparseMmap{f: f}
	if err := s.resize(1 << 12); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *SparseMmap) resize(capacity int64) error {
	if s.m != nil {
		if err := s.m.Unmap(); err != nil {
			return fmt.Errorf("sparse mmap index: unmap: %w", err)
		}
	}
	size := capacity * sparseRecordSize
	if err := s.f.Truncate(size); err != nil {
		return fmt.Errorf("sparse mmap index: truncate: %w", err)
	}
	m, err := mmap.MapRegion(s.f, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		return fmt.Errorf("sparse mmap index: map: %w", err)
	}
	s.m = m
	s.capacity = capacity
	return nil
}

func (s *SparseMmap) writeRecord(slot int64, id int64, loc location.Location) {
	off := slot * sparseRecordSize
	binary.LittleEndian.PutUint64(s.m[off:], uint64(id))
	binary.LittleEndian.PutUint32(s.m[off+8:], uint32(loc.X))
	binary.LittleEndian.PutUint32(s.m[off+12:], uint32(loc.Y))
}

func (s *SparseMmap) readRecord(slot int64) (int64, location.Location) {
	off := slot * sparseRecordSize
	id := int64(binary.LittleEndian.Uint64(s.m[off:]))
	x := int32(binary.LittleEndian.Uint32(s.m[off+8:]))
	y := int32(binary.LittleEndian.Uint32(s.m[off+12:]))
	return id, location.Location{X: x, Y: y}
}

func (s *SparseMmap) Set(id int64, loc location.Location) {
	if s.count >= s.capacity {
		if err := s.resize(s.capacity * 2); err != nil {
			return
		}
	}
	s.writeRecord(s.count, id, loc)
	s.count++
	s.sorted = false
}

func (s *SparseMmap) GetNoexcept(id int64) location.Location {
	if s.sorted {
		i := sort.Search(int(s.count), func(i int) bool {
			rid, _ := s.readRecord(int64(i))
			return rid >= id
		})
		if int64(i) < s.count {
			rid, loc := s.readRecord(int64(i))
			if rid == id {
				return loc
			}
		}
		return location.Undefined
	}
	for i := s.count - 1; i >= 0; i-- {
		rid, loc := s.readRecord(i)
		if rid == id {
			return loc
		}
	}
	return location.Undefined
}

func (s *SparseMmap) Get(id int64) (location.Location, error) {
	return getFromNoexcept(id, s.GetNoexcept(id))
}

func (s *SparseMmap) Sort() {
	type rec struct {
		id  int64
		loc location.Location
	}
	recs := make([]rec, s.count)
	for i := int64(0); i < s.count; i++ {
		id, loc := s.readRecord(i)
		recs[i] = rec{id: id, loc: loc}
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].id < recs[j].id })
	deduped := recs[:0]
	for i, r := range recs {
		if i+1 < len(recs) && recs[i+1].id == r.id {
			continue
		}
		deduped = append(deduped, r)
	}
	for i, r := range deduped {
		s.writeRecord(int64(i), r.id, r.loc)
	}
	s.count = int64(len(deduped))
	s.sorted = true
}

func (s *SparseMmap) Clear() {
	s.count = 0
	s.sorted = false
}

func (s *SparseMmap) Size() int {
	return int(s.count)
}

func (s *SparseMmap) UsedMemory() int64 {
	return s.capacity * sparseRecordSize
}

func (s *SparseMmap) Close() error {
	if s.m != nil {
		if err := s.m.Unmap(); err != nil {
			s.f.Close()
			return err
		}
	}
	return s.f.Close()
}
