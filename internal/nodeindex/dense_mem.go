package nodeindex

import "github.com/osmium-go/osmcore/internal/location"

// DenseArray is a plain in-memory slice indexed directly by id, the
// fastest back-end when ids are small and densely packed (a typical
// planet-file node id space). Unset slots hold location.Undefined.
type DenseArray struct {
	data []location.Location
}

// NewDenseArray returns an empty DenseArray.
func NewDenseArray() *DenseArray {
	return &DenseArray{}
}

func (d *DenseArray) grow(id int64) {
	if id < int64(len(d.data)) {
		return
	}
	newLen := id + 1
	grown := make([]location.Location, newLen)
	copy(grown, d.data)
	for i := len(d.data); i < len(grown); i++ {
		grown[i] = location.Undefined
	}
	d.data = grown
}

func (d *DenseArray) Set(id int64, loc location.Location) {
	d.grow(id)
	d.data[id] = loc
}

func (d *DenseArray) GetNoexcept(id int64) location.Location {
	if id < 0 || id >= int64(len(d.data)) {
		return location.Undefined
	}
	return d.data[id]
}

func (d *DenseArray) Get(id int64) (location.Location, error) {
	return getFromNoexcept(id, d.GetNoexcept(id))
}

func (d *DenseArray) Sort() {}

func (d *DenseArray) Clear() {
	d.data = nil
}

func (d *DenseArray) Size() int {
	n := 0
	for _, l := range d.data {
		if l.Valid() {
			n++
		}
	}
	return n
}

func (d *DenseArray) UsedMemory() int64 {
	return int64(len(d.data)) * 8
}
