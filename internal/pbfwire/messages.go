package pbfwire

// BlobHeader is fileformat.proto's BlobHeader message.
type BlobHeader struct {
	Type     string
	DataSize int32
}

// DecodeBlobHeader decodes a BlobHeader from its serialized bytes.
func DecodeBlobHeader(data []byte) (BlobHeader, error) {
	var h BlobHeader
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			h.Type = f.String()
		case 3:
			h.DataSize = int32(f.Int64())
		}
		return nil
	})
	return h, err
}

// Blob is fileformat.proto's Blob message. Exactly one of Raw/ZlibData is
// populated by any blob this package produces; the other compression
// variants (lzma/bzip2/lz4/zstd) are not decoded.
type Blob struct {
	Raw      []byte
	RawSize  int32
	ZlibData []byte
}

// DecodeBlob decodes a Blob from its serialized bytes.
func DecodeBlob(data []byte) (Blob, error) {
	var b Blob
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			b.Raw = f.Bytes()
		case 2:
			b.RawSize = int32(f.Int64())
		case 3:
			b.ZlibData = f.Bytes()
		}
		return nil
	})
	return b, err
}

// HeaderBBox is osmformat.proto's HeaderBBox message, in nanodegrees.
type HeaderBBox struct {
	Left, Right, Top, Bottom int64
}

// HeaderBlock is osmformat.proto's HeaderBlock message.
type HeaderBlock struct {
	BBox                      *HeaderBBox
	RequiredFeatures          []string
	OptionalFeatures          []string
	WritingProgram            string
	Source                    string
	ReplicationTimestamp      int64
	ReplicationSequenceNumber int64
	ReplicationBaseURL        string
}

// DecodeHeaderBlock decodes a HeaderBlock from its serialized bytes.
func DecodeHeaderBlock(data []byte) (HeaderBlock, error) {
	var h HeaderBlock
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			bbox, err := decodeHeaderBBox(f.Bytes())
			if err != nil {
				return err
			}
			h.BBox = &bbox
		case 4:
			h.RequiredFeatures = append(h.RequiredFeatures, f.String())
		case 5:
			h.OptionalFeatures = append(h.OptionalFeatures, f.String())
		case 16:
			h.WritingProgram = f.String()
		case 17:
			h.Source = f.String()
		case 32:
			h.ReplicationTimestamp = f.Int64()
		case 33:
			h.ReplicationSequenceNumber = f.Int64()
		case 34:
			h.ReplicationBaseURL = f.String()
		}
		return nil
	})
	return h, err
}

func decodeHeaderBBox(data []byte) (HeaderBBox, error) {
	var b HeaderBBox
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			b.Left = f.SInt64()
		case 2:
			b.Right = f.SInt64()
		case 3:
			b.Top = f.SInt64()
		case 4:
			b.Bottom = f.SInt64()
		}
		return nil
	})
	return b, err
}

// PrimitiveBlock is osmformat.proto's PrimitiveBlock message, minus the
// string table's individual entries (callers index Strings directly —
// it is the raw repeated-bytes field, not yet split into Go strings,
// since every reference into it is by integer index anyway).
type PrimitiveBlock struct {
	Strings         [][]byte
	Groups          [][]byte // each element is one still-undecoded PrimitiveGroup
	Granularity     int32
	LatOffset       int64
	LonOffset       int64
	DateGranularity int32
}

// DecodePrimitiveBlock decodes a PrimitiveBlock from its serialized
// bytes, deferring PrimitiveGroup decode to DecodePrimitiveGroup so a
// caller can decode groups concurrently.
func DecodePrimitiveBlock(data []byte) (PrimitiveBlock, error) {
	pb := PrimitiveBlock{Granularity: 100, DateGranularity: 1000}
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			return ForEachField(f.Bytes(), func(sf Field) error {
				if sf.Num == 1 {
					pb.Strings = append(pb.Strings, sf.Bytes())
				}
				return nil
			})
		case 2:
			pb.Groups = append(pb.Groups, f.Bytes())
		case 17:
			pb.Granularity = int32(f.Int64())
		case 18:
			pb.DateGranularity = int32(f.Int64())
		case 19:
			pb.LatOffset = f.Int64()
		case 20:
			pb.LonOffset = f.Int64()
		}
		return nil
	})
	return pb, err
}

// Info is osmformat.proto's Info message.
type Info struct {
	Version   int32
	Timestamp int64
	Changeset int64
	UID       int32
	UserSID   int32
	Visible   bool
	HasInfo   bool
}

func decodeInfo(data []byte) Info {
	info := Info{Version: -1, Visible: true, HasInfo: true}
	ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			info.Version = int32(f.Int64())
		case 2:
			info.Timestamp = f.Int64()
		case 3:
			info.Changeset = f.Int64()
		case 4:
			info.UID = int32(f.Int64())
		case 5:
			info.UserSID = int32(f.Int64())
		case 6:
			info.Visible = f.Bool()
		}
		return nil
	})
	return info
}

// DenseInfo is osmformat.proto's DenseInfo message, decoded into parallel
// per-node slices matching DenseNodes' own layout.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64 // delta-encoded, not yet summed
	Changeset []int64 // delta-encoded, not yet summed
	UID       []int32 // delta-encoded, not yet summed
	UserSID   []int32 // delta-encoded, not yet summed
	Visible   []bool
}

func decodeDenseInfo(data []byte) DenseInfo {
	var di DenseInfo
	ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			di.Version = PackedInt32(f.Bytes())
		case 2:
			di.Timestamp = PackedSInt64(f.Bytes())
		case 3:
			di.Changeset = PackedSInt64(f.Bytes())
		case 4:
			di.UID = PackedSInt32(f.Bytes())
		case 5:
			di.UserSID = PackedSInt32(f.Bytes())
		case 6:
			di.Visible = PackedBool(f.Bytes())
		}
		return nil
	})
	return di
}

// Node is osmformat.proto's Node message (a plain, non-dense node).
type Node struct {
	ID   int64
	Keys []uint32
	Vals []uint32
	Info Info
	Lat  int64
	Lon  int64
}

// DenseNodes is osmformat.proto's DenseNodes message. ID/Lat/Lon are
// delta-encoded, not yet summed into absolute values; KeysVals is the raw
// interleaved (key-index, value-index, ..., 0) stream, not yet split per
// node.
type DenseNodes struct {
	ID       []int64
	DenseInfo DenseInfo
	Lat      []int64
	Lon      []int64
	KeysVals []int32
}

// Way is osmformat.proto's Way message. Refs is delta-encoded.
type Way struct {
	ID   int64
	Keys []uint32
	Vals []uint32
	Info Info
	Refs []int64
}

// Relation is osmformat.proto's Relation message. MemIDs is
// delta-encoded; the member type enum values are NODE=0, WAY=1,
// RELATION=2 as defined in osmformat.proto.
type Relation struct {
	ID       int64
	Keys     []uint32
	Vals     []uint32
	Info     Info
	RolesSID []int32
	MemIDs   []int64
	Types    []int32
}

// ChangeSet is osmformat.proto's (effectively deprecated) ChangeSet
// message nested inside a PrimitiveGroup; only the id survives in the
// real-world wire format.
type ChangeSet struct {
	ID int64
}

// PrimitiveGroup is the decoded, but not yet entity-resolved, contents of
// one osmformat.proto PrimitiveGroup.
type PrimitiveGroup struct {
	Nodes      []Node
	Dense      *DenseNodes
	Ways       []Way
	Relations  []Relation
	ChangeSets []ChangeSet
}

// DecodePrimitiveGroup decodes one PrimitiveGroup from its serialized
// bytes.
func DecodePrimitiveGroup(data []byte) (PrimitiveGroup, error) {
	var g PrimitiveGroup
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			n, err := decodeNode(f.Bytes())
			if err != nil {
				return err
			}
			g.Nodes = append(g.Nodes, n)
		case 2:
			dn, err := decodeDenseNodesMsg(f.Bytes())
			if err != nil {
				return err
			}
			g.Dense = &dn
		case 3:
			w, err := decodeWay(f.Bytes())
			if err != nil {
				return err
			}
			g.Ways = append(g.Ways, w)
		case 4:
			r, err := decodeRelation(f.Bytes())
			if err != nil {
				return err
			}
			g.Relations = append(g.Relations, r)
		case 5:
			g.ChangeSets = append(g.ChangeSets, decodeChangeSet(f.Bytes()))
		}
		return nil
	})
	return g, err
}

func decodeNode(data []byte) (Node, error) {
	var n Node
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			n.ID = f.SInt64()
		case 2:
			n.Keys = PackedUint32(f.Bytes())
		case 3:
			n.Vals = PackedUint32(f.Bytes())
		case 4:
			n.Info = decodeInfo(f.Bytes())
		case 8:
			n.Lat = f.SInt64()
		case 9:
			n.Lon = f.SInt64()
		}
		return nil
	})
	return n, err
}

func decodeDenseNodesMsg(data []byte) (DenseNodes, error) {
	var dn DenseNodes
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			dn.ID = PackedSInt64(f.Bytes())
		case 5:
			dn.DenseInfo = decodeDenseInfo(f.Bytes())
		case 8:
			dn.Lat = PackedSInt64(f.Bytes())
		case 9:
			dn.Lon = PackedSInt64(f.Bytes())
		case 10:
			dn.KeysVals = PackedInt32(f.Bytes())
		}
		return nil
	})
	return dn, err
}

func decodeWay(data []byte) (Way, error) {
	var w Way
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			w.ID = f.Int64()
		case 2:
			w.Keys = PackedUint32(f.Bytes())
		case 3:
			w.Vals = PackedUint32(f.Bytes())
		case 4:
			w.Info = decodeInfo(f.Bytes())
		case 8:
			w.Refs = PackedSInt64(f.Bytes())
		}
		return nil
	})
	return w, err
}

func decodeRelation(data []byte) (Relation, error) {
	var r Relation
	err := ForEachField(data, func(f Field) error {
		switch f.Num {
		case 1:
			r.ID = f.Int64()
		case 2:
			r.Keys = PackedUint32(f.Bytes())
		case 3:
			r.Vals = PackedUint32(f.Bytes())
		case 4:
			r.Info = decodeInfo(f.Bytes())
		case 8:
			r.RolesSID = PackedInt32(f.Bytes())
		case 9:
			r.MemIDs = PackedSInt64(f.Bytes())
		case 10:
			r.Types = PackedInt32(f.Bytes())
		}
		return nil
	})
	return r, err
}

func decodeChangeSet(data []byte) ChangeSet {
	var cs ChangeSet
	ForEachField(data, func(f Field) error {
		if f.Num == 1 {
			cs.ID = f.Int64()
		}
		return nil
	})
	return cs
}
