package nodeindex

import "github.com/osmium-go/osmcore/internal/location"

// Flex starts out backed by a SparseArray and can switch, once, to a
// DenseMmap once the caller knows the id space is dense enough to be
// worth the memory-mapped allocation. The switch is one-way: there is no
// path back to sparse, matching the state-machine shape of the variant
// it is modeled on. Every id/location pair bound while sparse survives
// the switch.
type Flex struct {
	dense    bool
	sparse   *SparseArray
	denseIdx Index
	dir      string
}

// NewFlex returns a Flex index starting in its sparse state. dir is
// remembered so SwitchToDense can create its backing mmap file in the
// same place the caller would have put one directly.
func NewFlex(dir string) (Index, error) {
	return &Flex{sparse: NewSparseArray(), dir: dir}, nil
}

// IsDense reports whether SwitchToDense has already run.
func (f *Flex) IsDense() bool {
	return f.dense
}

// SwitchToDense moves every id/location pair bound so far into a fresh
// DenseMmap backend and discards the sparse one. Calling it again once
// already dense is a no-op.
func (f *Flex) SwitchToDense() error {
	if f.dense {
		return nil
	}
	dense, err := NewDenseMmap(f.dir)
	if err != nil {
		return err
	}
	f.sparse.Sort()
	for _, e := range f.sparse.data {
		dense.Set(e.ID, e.Loc)
	}
	f.denseIdx = dense
	f.sparse = nil
	f.dense = true
	return nil
}

func (f *Flex) Set(id int64, loc location.Location) {
	if f.dense {
		f.denseIdx.Set(id, loc)
		return
	}
	f.sparse.Set(id, loc)
}

func (f *Flex) GetNoexcept(id int64) location.Location {
	if f.dense {
		return f.denseIdx.GetNoexcept(id)
	}
	return f.sparse.GetNoexcept(id)
}

func (f *Flex) Get(id int64) (location.Location, error) {
	return getFromNoexcept(id, f.GetNoexcept(id))
}

func (f *Flex) Sort() {
	if f.dense {
		f.denseIdx.Sort()
		return
	}
	f.sparse.Sort()
}

func (f *Flex) Clear() {
	if f.dense {
		f.denseIdx.Clear()
		return
	}
	f.sparse.Clear()
}

func (f *Flex) Size() int {
	if f.dense {
		return f.denseIdx.Size()
	}
	return f.sparse.Size()
}

func (f *Flex) UsedMemory() int64 {
	if f.dense {
		return f.denseIdx.UsedMemory()
	}
	return f.sparse.UsedMemory()
}

func (f *Flex) Close() error {
	if f.dense {
		if c, ok := f.denseIdx.(Closer); ok {
			return c.Close()
		}
	}
	return nil
}
