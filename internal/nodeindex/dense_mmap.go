package nodeindex

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/osmium-go/osmcore/internal/location"
)

const denseEntrySize = 8 // int32 X, int32 Y

// DenseMmap is a dense array backed by a memory-mapped file. It grows by
// doubling and remapping, and every growth writes the undefined sentinel
// into each newly added slot, so all pages up to the current capacity are
// written: setting a large id costs file space and page writes for the
// whole range below it, not only for the pages later set. It mirrors the
// teacher's flat-nodes mmap index but replaces its hand-rolled
// syscall.Mmap calls with mmap-go.
type DenseMmap struct {
	f        *os.File
	m        mmap.MMap
	capacity int64 // entries
}

// NewDenseMmap creates a backing file inside dir (the OS temp directory if
// dir is empty) and maps it.
func NewDenseMmap(dir string) (Index, error) {
	f, err := os.CreateTemp(dir, "denseidx-*.bin")
	if err != nil {
		return nil, fmt.Errorf("dense mmap index: %w", err)
	}
	d := &DenseMmap{f: f}
	if err := d.resize(1 << 16); err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

func (d *DenseMmap) resize(capacity int64) error {
	oldCapacity := d.capacity
	if d.m != nil {
		if err := d.m.Unmap(); err != nil {
			return fmt.Errorf("dense mmap index: unmap: %w", err)
		}
	}
	size := capacity * denseEntrySize
	if err := d.f.Truncate(size); err != nil {
		return fmt.Errorf("dense mmap index: truncate: %w", err)
	}
	m, err := mmap.MapRegion(d.f, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		return fmt.Errorf("dense mmap index: map: %w", err)
	}
	d.m = m
	d.capacity = capacity
	// a freshly truncated extension reads back as all-zero, which would
	// decode as Location{0,0} rather than Undefined; stamp the sentinel
	// into every newly added slot.
	for off := oldCapacity * denseEntrySize; off < size; off += denseEntrySize {
		binary.LittleEndian.PutUint32(d.m[off:], uint32(location.Undefined.X))
		binary.LittleEndian.PutUint32(d.m[off+4:], uint32(location.Undefined.Y))
	}
	return nil
}

func (d *DenseMmap) grow(id int64) error {
	if id < d.capacity {
		return nil
	}
	next := d.capacity
	for id >= next {
		next *= 2
	}
	return d.resize(next)
}

func (d *DenseMmap) Set(id int64, loc location.Location) {
	if err := d.grow(id); err != nil {
		return
	}
	off := id * denseEntrySize
	binary.LittleEndian.PutUint32(d.m[off:], uint32(loc.X))
	binary.LittleEndian.PutUint32(d.m[off+4:], uint32(loc.Y))
}

func (d *DenseMmap) GetNoexcept(id int64) location.Location {
	if id < 0 || id >= d.capacity {
		return location.Undefined
	}
	off := id * denseEntrySize
	x := int32(binary.LittleEndian.Uint32(d.m[off:]))
	y := int32(binary.LittleEndian.Uint32(d.m[off+4:]))
	return location.Location{X: x, Y: y}
}

func (d *DenseMmap) Get(id int64) (location.Location, error) {
	return getFromNoexcept(id, d.GetNoexcept(id))
}

func (d *DenseMmap) Sort() {}

func (d *DenseMmap) Clear() {
	for off := int64(0); off < d.capacity*denseEntrySize; off += denseEntrySize {
		binary.LittleEndian.PutUint32(d.m[off:], uint32(location.Undefined.X))
		binary.LittleEndian.PutUint32(d.m[off+4:], uint32(location.Undefined.Y))
	}
}

func (d *DenseMmap) Size() int {
	n := 0
	for off := int64(0); off < d.capacity*denseEntrySize; off += denseEntrySize {
		x := int32(binary.LittleEndian.Uint32(d.m[off:]))
		y := int32(binary.LittleEndian.Uint32(d.m[off+4:]))
		if (location.Location{X: x, Y: y}).Valid() {
			n++
		}
	}
	return n
}

func (d *DenseMmap) UsedMemory() int64 {
	return d.capacity * denseEntrySize
}

func (d *DenseMmap) Close() error {
	if d.m != nil {
		if err := d.m.Unmap(); err != nil {
			d.f.Close()
			return err
		}
	}
	return d.f.Close()
}
