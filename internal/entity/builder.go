package entity

// Builder accumulates the fields of a single entity before it is
// committed to a Buffer. A Builder is single-use: create one with
// Buffer.NewNode/NewWay/NewRelation/NewChangeset, set fields, append to
// its tag/node/member lists, then call Commit. Abandoning a Builder
// without calling Commit is the rollback path — nothing it touched is
// ever visible through the owning Buffer.
type Builder struct {
	buf  *Buffer
	node *Node
	way  *Way
	rel  *Relation
	cs   *Changeset
}

// NewNode starts building a Node against this Buffer.
func (b *Buffer) NewNode() *Builder {
	return &Builder{buf: b, node: &Node{}}
}

// NewWay starts building a Way against this Buffer.
func (b *Buffer) NewWay() *Builder {
	return &Builder{buf: b, way: &Way{}}
}

// NewRelation starts building a Relation against this Buffer.
func (b *Buffer) NewRelation() *Builder {
	return &Builder{buf: b, rel: &Relation{}}
}

// NewChangeset starts building a Changeset against this Buffer.
func (b *Buffer) NewChangeset() *Builder {
	return &Builder{buf: b, cs: &Changeset{}}
}

// Node returns the in-progress node, or nil if this Builder is building a
// different kind.
func (bu *Builder) Node() *Node { return bu.node }

// Way returns the in-progress way, or nil if this Builder is building a
// different kind.
func (bu *Builder) Way() *Way { return bu.way }

// Relation returns the in-progress relation, or nil if this Builder is
// building a different kind.
func (bu *Builder) Relation() *Relation { return bu.rel }

// Changeset returns the in-progress changeset, or nil if this Builder is
// building a different kind.
func (bu *Builder) Changeset() *Changeset { return bu.cs }

// AddTag appends one tag to whichever entity this Builder is building.
func (bu *Builder) AddTag(key, value string) {
	tag := Tag{Key: key, Value: value}
	switch {
	case bu.node != nil:
		bu.node.Tags = append(bu.node.Tags, tag)
	case bu.way != nil:
		bu.way.Tags = append(bu.way.Tags, tag)
	case bu.rel != nil:
		bu.rel.Tags = append(bu.rel.Tags, tag)
	case bu.cs != nil:
		bu.cs.Tags = append(bu.cs.Tags, tag)
	}
}

// AddWayNode appends one node reference to the way under construction.
// It panics if this Builder is not building a Way, since that is always a
// programmer error in the calling decoder.
func (bu *Builder) AddWayNode(ref int64, lon, lat float64) {
	bu.way.Nodes = append(bu.way.Nodes, WayNode{Ref: ref, Lon: lon, Lat: lat})
}

// AddMember appends one member to the relation under construction.
func (bu *Builder) AddMember(typ MemberType, ref int64, role string) {
	bu.rel.Members = append(bu.rel.Members, Member{Type: typ, Ref: ref, Role: role})
}

// Commit finalizes the entity under construction, making it visible
// through the owning Buffer's Entities/Iter. After Commit the Builder
// must not be reused.
func (bu *Builder) Commit() {
	switch {
	case bu.node != nil:
		bu.buf.commit(bu.node)
	case bu.way != nil:
		bu.buf.commit(bu.way)
	case bu.rel != nil:
		bu.buf.commit(bu.rel)
	case bu.cs != nil:
		bu.buf.commit(bu.cs)
	}
}
