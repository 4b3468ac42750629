package pbf

import (
	"time"

	"github.com/osmium-go/osmcore/internal/entity"
	"github.com/osmium-go/osmcore/internal/pbfwire"
)

// decodeBlockToBuffer resolves a fully decoded PrimitiveBlock's groups
// into committed entities on buf. It performs every delta-decode and
// string-table resolution the wire format defers: absolute ids,
// absolute lon/lat in degrees, absolute timestamps, and key/value tag
// pairs.
func decodeBlockToBuffer(pb pbfwire.PrimitiveBlock, buf *entity.Buffer) error {
	strings := make([]string, len(pb.Strings))
	for i, s := range pb.Strings {
		strings[i] = string(s)
	}

	for _, raw := range pb.Groups {
		g, err := pbfwire.DecodePrimitiveGroup(raw)
		if err != nil {
			return err
		}
		for _, n := range g.Nodes {
			decodeNode(buf, n, strings, pb)
		}
		if g.Dense != nil {
			decodeDenseNodes(buf, *g.Dense, strings, pb)
		}
		for _, w := range g.Ways {
			decodeWay(buf, w, strings, pb)
		}
		for _, r := range g.Relations {
			decodeRelation(buf, r, strings, pb)
		}
		for _, cs := range g.ChangeSets {
			b := buf.NewChangeset()
			b.Changeset().ID = cs.ID
			b.Commit()
		}
	}
	return nil
}

func coordDegrees(offset int64, granularity int32, raw int64) float64 {
	return float64(offset+int64(granularity)*raw) / 1e9
}

func tsFromRaw(raw int64, dateGranularity int32) time.Time {
	if raw == 0 {
		return time.Time{}
	}
	return time.UnixMilli(raw * int64(dateGranularity)).UTC()
}

func decodeNode(buf *entity.Buffer, n pbfwire.Node, strings []string, pb pbfwire.PrimitiveBlock) {
	b := buf.NewNode()
	nd := b.Node()
	nd.ID = n.ID
	nd.Lon = coordDegrees(pb.LonOffset, pb.Granularity, n.Lon)
	nd.Lat = coordDegrees(pb.LatOffset, pb.Granularity, n.Lat)
	for i := range n.Keys {
		b.AddTag(strings[n.Keys[i]], strings[n.Vals[i]])
	}
	if n.Info.HasInfo {
		nd.Meta = metaFromInfo(n.Info, strings, pb.DateGranularity)
	}
	b.Commit()
}

func decodeDenseNodes(buf *entity.Buffer, dn pbfwire.DenseNodes, strings []string, pb pbfwire.PrimitiveBlock) {
	var id, lat, lon int64
	var ts, changeset int64
	var uid, userSID int32
	kvIdx := 0

	hasInfo := len(dn.DenseInfo.Version) > 0

	for i := range dn.ID {
		id += dn.ID[i]
		lat += dn.Lat[i]
		lon += dn.Lon[i]

		b := buf.NewNode()
		nd := b.Node()
		nd.ID = id
		nd.Lon = coordDegrees(pb.LonOffset, pb.Granularity, lon)
		nd.Lat = coordDegrees(pb.LatOffset, pb.Granularity, lat)

		for kvIdx < len(dn.KeysVals) && dn.KeysVals[kvIdx] != 0 {
			k := dn.KeysVals[kvIdx]
			v := dn.KeysVals[kvIdx+1]
			b.AddTag(strings[k], strings[v])
			kvIdx += 2
		}
		if kvIdx < len(dn.KeysVals) {
			kvIdx++ // skip the 0 terminator
		}

		if hasInfo && i < len(dn.DenseInfo.Version) {
			ts += dn.DenseInfo.Timestamp[i]
			changeset += dn.DenseInfo.Changeset[i]
			uid += dn.DenseInfo.UID[i]
			userSID += dn.DenseInfo.UserSID[i]
			visible := true
			if i < len(dn.DenseInfo.Visible) {
				visible = dn.DenseInfo.Visible[i]
			}
			nd.Meta = entity.Meta{
				Version:   dn.DenseInfo.Version[i],
				Visible:   visible,
				Changeset: changeset,
				Timestamp: tsFromRaw(ts, pb.DateGranularity),
				UID:       uid,
				User:      stringAt(strings, int(userSID)),
			}
		}
		b.Commit()
	}
}

func decodeWay(buf *entity.Buffer, w pbfwire.Way, strings []string, pb pbfwire.PrimitiveBlock) {
	b := buf.NewWay()
	wy := b.Way()
	wy.ID = w.ID
	var ref int64
	for _, d := range w.Refs {
		ref += d
		b.AddWayNode(ref, 0, 0)
	}
	for i := range w.Keys {
		b.AddTag(strings[w.Keys[i]], strings[w.Vals[i]])
	}
	if w.Info.HasInfo {
		wy.Meta = metaFromInfo(w.Info, strings, pb.DateGranularity)
	}
	b.Commit()
}

func decodeRelation(buf *entity.Buffer, r pbfwire.Relation, strings []string, pb pbfwire.PrimitiveBlock) {
	b := buf.NewRelation()
	rel := b.Relation()
	rel.ID = r.ID
	var memID int64
	for i, d := range r.MemIDs {
		memID += d
		var typ entity.MemberType
		if i < len(r.Types) {
			switch r.Types[i] {
			case 0:
				typ = entity.MemberNode
			case 1:
				typ = entity.MemberWay
			case 2:
				typ = entity.MemberRelation
			}
		}
		role := ""
		if i < len(r.RolesSID) {
			role = stringAt(strings, int(r.RolesSID[i]))
		}
		b.AddMember(typ, memID, role)
	}
	for i := range r.Keys {
		b.AddTag(strings[r.Keys[i]], strings[r.Vals[i]])
	}
	if r.Info.HasInfo {
		rel.Meta = metaFromInfo(r.Info, strings, pb.DateGranularity)
	}
	b.Commit()
}

func metaFromInfo(info pbfwire.Info, strings []string, dateGranularity int32) entity.Meta {
	return entity.Meta{
		Version:   info.Version,
		Visible:   info.Visible,
		Changeset: info.Changeset,
		Timestamp: tsFromRaw(info.Timestamp, dateGranularity),
		UID:       info.UID,
		User:      stringAt(strings, int(info.UserSID)),
	}
}

func stringAt(strings []string, idx int) string {
	if idx < 0 || idx >= len(strings) {
		return ""
	}
	return strings[idx]
}
