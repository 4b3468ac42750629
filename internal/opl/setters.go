package opl

import (
	"time"

	"github.com/osmium-go/osmcore/internal/entity"
)

// setID, setVersion, etc. dispatch a decoded field onto whichever entity
// kind a Builder currently holds. Fields that do not apply to the
// current kind (a changeset line's 'v' field, say — changesets have no
// version) are silently ignored rather than erroring, matching the OPL
// grammar's "fields may appear in any combination" tolerance.

func setID(b *entity.Builder, id int64) {
	switch {
	case b.Node() != nil:
		b.Node().ID = id
	case b.Way() != nil:
		b.Way().ID = id
	case b.Relation() != nil:
		b.Relation().ID = id
	case b.Changeset() != nil:
		b.Changeset().ID = id
	}
}

func setVersion(b *entity.Builder, v int32) {
	switch {
	case b.Node() != nil:
		b.Node().Meta.Version = v
	case b.Way() != nil:
		b.Way().Meta.Version = v
	case b.Relation() != nil:
		b.Relation().Meta.Version = v
	}
}

func setVisible(b *entity.Builder, v bool) {
	switch {
	case b.Node() != nil:
		b.Node().Meta.Visible = v
	case b.Way() != nil:
		b.Way().Meta.Visible = v
	case b.Relation() != nil:
		b.Relation().Meta.Visible = v
	}
}

func setChangeset(b *entity.Builder, cs int64) {
	switch {
	case b.Node() != nil:
		b.Node().Meta.Changeset = cs
	case b.Way() != nil:
		b.Way().Meta.Changeset = cs
	case b.Relation() != nil:
		b.Relation().Meta.Changeset = cs
	}
}

func setTimestamp(b *entity.Builder, ts time.Time) {
	switch {
	case b.Node() != nil:
		b.Node().Meta.Timestamp = ts
	case b.Way() != nil:
		b.Way().Meta.Timestamp = ts
	case b.Relation() != nil:
		b.Relation().Meta.Timestamp = ts
	}
}

func setUID(b *entity.Builder, uid int32) {
	switch {
	case b.Node() != nil:
		b.Node().Meta.UID = uid
	case b.Way() != nil:
		b.Way().Meta.UID = uid
	case b.Relation() != nil:
		b.Relation().Meta.UID = uid
	case b.Changeset() != nil:
		b.Changeset().UID = uid
	}
}

func setUser(b *entity.Builder, user string) {
	switch {
	case b.Node() != nil:
		b.Node().Meta.User = user
	case b.Way() != nil:
		b.Way().Meta.User = user
	case b.Relation() != nil:
		b.Relation().Meta.User = user
	case b.Changeset() != nil:
		b.Changeset().User = user
	}
}

func setLocation(b *entity.Builder, lon, lat float64) {
	if b.Node() != nil {
		b.Node().Lon = lon
		b.Node().Lat = lat
	}
}

func setNumChanges(b *entity.Builder, n int32) {
	if b.Changeset() != nil {
		b.Changeset().NumChanges = n
	}
}

func setCreatedAt(b *entity.Builder, ts time.Time) {
	if b.Changeset() != nil {
		b.Changeset().CreatedAt = ts
	}
}

func setClosedAt(b *entity.Builder, ts time.Time) {
	if b.Changeset() != nil {
		b.Changeset().ClosedAt = ts
	}
}

func setNumComments(b *entity.Builder, n int32) {
	if b.Changeset() != nil {
		b.Changeset().NumComments = n
	}
}

func setMinLon(b *entity.Builder, v float64) {
	if b.Changeset() != nil {
		b.Changeset().MinLon = v
	}
}

func setMinLat(b *entity.Builder, v float64) {
	if b.Changeset() != nil {
		b.Changeset().MinLat = v
	}
}

func setMaxLon(b *entity.Builder, v float64) {
	if b.Changeset() != nil {
		b.Changeset().MaxLon = v
	}
}

func setMaxLat(b *entity.Builder, v float64) {
	if b.Changeset() != nil {
		b.Changeset().MaxLat = v
	}
}
