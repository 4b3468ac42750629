package entity

import "testing"

func TestCommitMakesEntityVisible(t *testing.T) {
	buf := NewBuffer(0)
	b := buf.NewNode()
	b.Node().ID = 42
	b.AddTag("amenity", "cafe")
	b.Commit()

	if buf.Len() != 1 {
		t.Fatalf("expected 1 committed entity, got %d", buf.Len())
	}
	n, ok := buf.Entities()[0].(*Node)
	if !ok {
		t.Fatalf("expected *Node, got %T", buf.Entities()[0])
	}
	if n.ID != 42 || len(n.Tags) != 1 || n.Tags[0].Key != "amenity" {
		t.Errorf("unexpected node contents: %+v", n)
	}
}

func TestAbandonedBuilderNeverCommits(t *testing.T) {
	buf := NewBuffer(0)
	b := buf.NewWay()
	b.Way().ID = 1
	b.AddWayNode(10, 1.0, 2.0)
	// simulate a parse failure: the caller never calls Commit.

	if buf.Len() != 0 {
		t.Fatalf("expected buffer to remain empty after an abandoned builder, got %d entities", buf.Len())
	}
}

func TestIteratorOrder(t *testing.T) {
	buf := NewBuffer(0)
	for i := int64(1); i <= 3; i++ {
		b := buf.NewNode()
		b.Node().ID = i
		b.Commit()
	}
	it := buf.Iter()
	var ids []int64
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		ids = append(ids, e.(*Node).ID)
	}
	want := []int64{1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("got %v want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("got %v want %v", ids, want)
		}
	}
}

func TestClear(t *testing.T) {
	buf := NewBuffer(0)
	b := buf.NewNode()
	b.Commit()
	buf.Clear()
	if buf.Len() != 0 {
		t.Errorf("expected empty buffer after Clear, got %d", buf.Len())
	}
}
