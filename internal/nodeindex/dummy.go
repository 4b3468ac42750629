package nodeindex

import "github.com/osmium-go/osmcore/internal/location"

// Dummy discards every Set and reports every Get as not found. It exists
// so a caller that genuinely has no use for node locations (counting
// entities, say) can still satisfy the Index interface without paying for
// a real backend.
type Dummy struct{}

// NewDummy returns a Dummy index.
func NewDummy() *Dummy { return &Dummy{} }

func (*Dummy) Set(int64, location.Location) {}

func (d *Dummy) Get(id int64) (location.Location, error) {
	return location.Undefined, notFound(id)
}

func (*Dummy) GetNoexcept(int64) location.Location { return location.Undefined }
func (*Dummy) Sort()                                {}
func (*Dummy) Clear()                               {}
func (*Dummy) Size() int                            { return 0 }
func (*Dummy) UsedMemory() int64                    { return 0 }
