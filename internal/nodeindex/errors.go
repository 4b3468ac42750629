package nodeindex

import (
	"github.com/osmium-go/osmcore/internal/location"
	"github.com/osmium-go/osmcore/internal/oerr"
)

func notFound(id int64) error {
	return &oerr.NotFoundError{ID: id}
}

// getFromNoexcept adapts a GetNoexcept-shaped lookup into the
// error-returning Get contract every backend needs.
func getFromNoexcept(id int64, loc location.Location) (location.Location, error) {
	if !loc.Valid() {
		return location.Undefined, notFound(id)
	}
	return loc, nil
}
