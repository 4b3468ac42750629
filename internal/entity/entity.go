// Package entity implements the OSM entity variants (Node, Way, Relation,
// Changeset) and the append-only Buffer arena that owns committed
// instances of them, grounded on the offset-array entity storage idiom
// used for memory-mapped OSM files.
package entity

import "time"

// Kind identifies which OSM entity variant a value holds.
type Kind int

const (
	NodeKind Kind = iota
	WayKind
	RelationKind
	ChangesetKind
)

func (k Kind) String() string {
	switch k {
	case NodeKind:
		return "node"
	case WayKind:
		return "way"
	case RelationKind:
		return "relation"
	case ChangesetKind:
		return "changeset"
	default:
		return "unknown"
	}
}

// Tag is an ordered (key, value) pair. OSM tags may repeat a key; callers
// that need last-value-wins semantics apply that themselves.
type Tag struct {
	Key, Value string
}

// MemberType identifies what kind of entity a relation member refers to.
type MemberType int

const (
	MemberNode MemberType = iota
	MemberWay
	MemberRelation
)

func (t MemberType) String() string {
	switch t {
	case MemberNode:
		return "node"
	case MemberWay:
		return "way"
	case MemberRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// Member is one entry of a relation's member list.
type Member struct {
	Type MemberType
	Ref  int64
	Role string
}

// WayNode is one entry of a way's node list. Lon/Lat are filled in from
// inline OPL x/y coordinates when the line carries them and are zero
// otherwise, including for every PBF way (PBF ways carry no coordinates).
type WayNode struct {
	Ref int64
	Lon float64
	Lat float64
}

// Meta carries the version/changeset/timestamp/user attribution fields
// shared by nodes, ways and relations. Changeset holds its own UID/User
// fields instead.
type Meta struct {
	Version   int32
	Visible   bool
	Changeset int64
	Timestamp time.Time
	UID       int32
	User      string
}

// Node is a single OSM node: an id, a location, tags, and attribution.
type Node struct {
	ID  int64
	Lon float64
	Lat float64
	Tags []Tag
	Meta Meta
}

func (*Node) Kind() Kind { return NodeKind }

// Way is an ordered list of node references plus tags and attribution.
type Way struct {
	ID    int64
	Nodes []WayNode
	Tags  []Tag
	Meta  Meta
}

func (*Way) Kind() Kind { return WayKind }

// Relation is an ordered list of members plus tags and attribution.
type Relation struct {
	ID      int64
	Members []Member
	Tags    []Tag
	Meta    Meta
}

func (*Relation) Kind() Kind { return RelationKind }

// Changeset describes one edit session.
type Changeset struct {
	ID          int64
	UID         int32
	User        string
	CreatedAt   time.Time
	ClosedAt    time.Time
	NumChanges  int32
	NumComments int32
	MinLon, MinLat float64
	MaxLon, MaxLat float64
	Tags        []Tag
}

func (*Changeset) Kind() Kind { return ChangesetKind }

// Entity is satisfied by *Node, *Way, *Relation, and *Changeset.
type Entity interface {
	Kind() Kind
}
