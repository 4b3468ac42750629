package nodeindex

import (
	"sort"
	"sync"

	"github.com/osmium-go/osmcore/internal/oerr"
)

// Constructor builds a fresh, empty Index. dir is a filesystem directory
// the constructor may use for backing files (mmap- or bbolt-backed
// indices); in-memory backends ignore it.
type Constructor func(dir string) (Index, error)

var (
	registryMu sync.Mutex
	registry   = map[string]Constructor{}
)

// Register adds name to the factory's registry. Registering the same name
// twice replaces the previous constructor, matching a registration table
// a caller might override for tests.
func Register(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ctor
}

// Create instantiates the Index registered under name. An empty name or
// an unregistered name returns a *oerr.MapFactoryError.
func Create(name, dir string) (Index, error) {
	if name == "" {
		return nil, &oerr.MapFactoryError{}
	}
	registryMu.Lock()
	ctor, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, &oerr.MapFactoryError{Name: name}
	}
	return ctor(dir)
}

// MapTypes returns every registered backend name, sorted for a stable
// listing.
func MapTypes() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("dummy", func(string) (Index, error) { return NewDummy(), nil })
	Register("dense_mem_array", func(string) (Index, error) { return NewDenseArray(), nil })
	Register("dense_mmap_array", NewDenseMmap)
	Register("dense_file_array", NewDenseFile)
	Register("sparse_mem_hash", func(string) (Index, error) { return NewSparseHash(), nil })
	Register("sparse_mem_map", NewSparseOrdered)
	Register("sparse_mem_array", func(string) (Index, error) { return NewSparseArray(), nil })
	Register("sparse_mem_compact_array", func(string) (Index, error) { return NewSparseCompact(), nil })
	Register("sparse_mmap_array", NewSparseMmap)
	Register("flex_mem", NewFlex)
}
