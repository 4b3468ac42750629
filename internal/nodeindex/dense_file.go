package nodeindex

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/osmium-go/osmcore/internal/location"
)

// DenseFile is a dense array backed by a plain file accessed through
// ReadAt/WriteAt, for platforms or deployments where mapping the file
// into the address space is undesirable. It grows the file on demand and
// never holds the whole thing in memory.
type DenseFile struct {
	f        *os.File
	capacity int64
	buf      [denseEntrySize]byte
}

// NewDenseFile creates a backing file inside dir (the OS temp directory
// if dir is empty).
func NewDenseFile(dir string) (Index, error) {
	f, err := os.CreateTemp(dir, "densefileidx-*.bin")
	if err != nil {
		return nil, fmt.Errorf("dense file index: %w", err)
	}
	return &DenseFile{f: f}, nil
}

func (d *DenseFile) grow(id int64) error {
	if id < d.capacity {
		return nil
	}
	// fill every newly visible slot with the undefined sentinel so a read
	// of a never-written id does not come back as Location{0,0}.
	var undef [denseEntrySize]byte
	binary.LittleEndian.PutUint32(undef[0:], uint32(location.Undefined.X))
	binary.LittleEndian.PutUint32(undef[4:], uint32(location.Undefined.Y))
	for i := d.capacity; i <= id; i++ {
		if _, err := d.f.WriteAt(undef[:], i*denseEntrySize); err != nil {
			return fmt.Errorf("dense file index: grow: %w", err)
		}
	}
	d.capacity = id + 1
	return nil
}

func (d *DenseFile) Set(id int64, loc location.Location) {
	if err := d.grow(id); err != nil {
		return
	}
	var rec [denseEntrySize]byte
	binary.LittleEndian.PutUint32(rec[0:], uint32(loc.X))
	binary.LittleEndian.PutUint32(rec[4:], uint32(loc.Y))
	d.f.WriteAt(rec[:], id*denseEntrySize)
}

func (d *DenseFile) GetNoexcept(id int64) location.Location {
	if id < 0 || id >= d.capacity {
		return location.Undefined
	}
	var rec [denseEntrySize]byte
	if _, err := d.f.ReadAt(rec[:], id*denseEntrySize); err != nil {
		return location.Undefined
	}
	x := int32(binary.LittleEndian.Uint32(rec[0:]))
	y := int32(binary.LittleEndian.Uint32(rec[4:]))
	return location.Location{X: x, Y: y}
}

func (d *DenseFile) Get(id int64) (location.Location, error) {
	return getFromNoexcept(id, d.GetNoexcept(id))
}

func (d *DenseFile) Sort() {}

func (d *DenseFile) Clear() {
	d.f.Truncate(0)
	d.capacity = 0
}

func (d *DenseFile) Size() int {
	n := 0
	for i := int64(0); i < d.capacity; i++ {
		if d.GetNoexcept(i).Valid() {
			n++
		}
	}
	return n
}

func (d *DenseFile) UsedMemory() int64 {
	return d.capacity * denseEntrySize
}

func (d *DenseFile) Close() error {
	return d.f.Close()
}
