package nodeindex

import (
	"encoding/binary"
	"fmt"
	"os"

	bolt "go.etcd.io/bbolt"

	"github.com/osmium-go/osmcore/internal/location"
)

var sparseOrderedBucket = []byte("locations")

// SparseOrdered stores id/location pairs in a balanced tree (a bbolt
// B+-tree), giving log-time lookups with ids kept in sorted order on
// disk — the "sparse ordered map" back-end the dense/hash/array variants
// don't cover, useful when a caller wants to range-scan ids in order
// without holding the whole index in memory.
type SparseOrdered struct {
	db   *bolt.DB
	path string
	size int
}

// NewSparseOrdered opens a bbolt database inside dir (the OS temp
// directory if dir is empty).
func NewSparseOrdered(dir string) (Index, error) {
	f, err := os.CreateTemp(dir, "sparseordered-*.bolt")
	if err != nil {
		return nil, fmt.Errorf("sparse ordered index: %w", err)
	}
	path := f.Name()
	f.Close()
	os.Remove(path) // bbolt wants to create the file itself

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("sparse ordered index: open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sparseOrderedBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sparse ordered index: init bucket: %w", err)
	}
	return &SparseOrdered{db: db, path: path}, nil
}

func idKey(id int64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(id))
	return k[:]
}

func encodeLoc(loc location.Location) []byte {
	var v [8]byte
	binary.BigEndian.PutUint32(v[0:], uint32(loc.X))
	binary.BigEndian.PutUint32(v[4:], uint32(loc.Y))
	return v[:]
}

func decodeLoc(v []byte) location.Location {
	x := int32(binary.BigEndian.Uint32(v[0:]))
	y := int32(binary.BigEndian.Uint32(v[4:]))
	return location.Location{X: x, Y: y}
}

func (s *SparseOrdered) Set(id int64, loc location.Location) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sparseOrderedBucket)
		isNew := b.Get(idKey(id)) == nil
		if err := b.Put(idKey(id), encodeLoc(loc)); err != nil {
			return err
		}
		if isNew {
			s.size++
		}
		return nil
	})
	_ = err
}

func (s *SparseOrdered) GetNoexcept(id int64) location.Location {
	var loc location.Location
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sparseOrderedBucket)
		v := b.Get(idKey(id))
		if v == nil {
			loc = location.Undefined
			return nil
		}
		loc = decodeLoc(v)
		return nil
	})
	return loc
}

func (s *SparseOrdered) Get(id int64) (location.Location, error) {
	return getFromNoexcept(id, s.GetNoexcept(id))
}

// Sort is a no-op: bbolt's B+-tree keeps keys ordered at all times.
func (s *SparseOrdered) Sort() {}

func (s *SparseOrdered) Clear() {
	s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(sparseOrderedBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(sparseOrderedBucket)
		return err
	})
	s.size = 0
}

func (s *SparseOrdered) Size() int {
	return s.size
}

func (s *SparseOrdered) UsedMemory() int64 {
	if info, err := os.Stat(s.path); err == nil {
		return info.Size()
	}
	return 0
}

func (s *SparseOrdered) Close() error {
	err := s.db.Close()
	os.Remove(s.path)
	return err
}
