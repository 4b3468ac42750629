// Package nodeindex implements the family of ID-to-Location index
// back-ends and the MapFactory registry that selects between them by
// name. Every back-end implements the same Index interface; dynamic
// dispatch happens only at the factory boundary — callers that already
// know their concrete type use it directly and pay no interface-call
// overhead on the hot Set/Get path.
package nodeindex

import "github.com/osmium-go/osmcore/internal/location"

// Index maps OSM node ids to Location. Implementations are not safe for
// concurrent use; callers sharing an Index across goroutines must
// synchronize externally.
type Index interface {
	// Set records loc for id, overwriting any previous value.
	Set(id int64, loc location.Location)

	// Get returns the location stored for id, or a *oerr.NotFoundError if
	// id was never set (or was set to location.Undefined).
	Get(id int64) (location.Location, error)

	// GetNoexcept returns the location stored for id, or
	// location.Undefined if id was never set. It never allocates an
	// error and is the right choice on a hot path that already expects
	// misses.
	GetNoexcept(id int64) location.Location

	// Sort puts the index into whatever state its lookups require —
	// a no-op for hash/array backends, a real sort for sparse-array
	// backends that binary-search.
	Sort()

	// Clear discards every stored id/location pair.
	Clear()

	// Size returns the number of id/location pairs actually stored
	// (not the backing capacity).
	Size() int

	// UsedMemory estimates the backend's resident memory or disk
	// footprint in bytes, for diagnostics.
	UsedMemory() int64
}

// Closer is implemented by backends that hold an OS resource (an open
// file, a memory mapping, a bbolt database) that must be released.
type Closer interface {
	Close() error
}
