package opl

import (
	"strings"
	"testing"

	"github.com/osmium-go/osmcore/internal/entity"
)

func TestParseNodeLine(t *testing.T) {
	line := "n12 v1 dV c10 t2016-01-01T00:00:00Z i7 ufoo Tk=v x1.0 y2.0"
	buf := entity.NewBuffer(0)
	p := NewParser()
	if err := p.ParseLine([]byte(line), buf); err != nil {
		t.Fatalf("ParseLine error: %v", err)
	}
	if buf.Len() != 1 {
		t.Fatalf("expected 1 committed entity, got %d", buf.Len())
	}
	n, ok := buf.Entities()[0].(*entity.Node)
	if !ok {
		t.Fatalf("expected *entity.Node, got %T", buf.Entities()[0])
	}
	if n.ID != 12 {
		t.Errorf("ID = %d, want 12", n.ID)
	}
	if n.Meta.Version != 1 {
		t.Errorf("Version = %d, want 1", n.Meta.Version)
	}
	if !n.Meta.Visible {
		t.Errorf("expected Visible = true")
	}
	if n.Meta.Changeset != 10 {
		t.Errorf("Changeset = %d, want 10", n.Meta.Changeset)
	}
	if n.Meta.UID != 7 {
		t.Errorf("UID = %d, want 7", n.Meta.UID)
	}
	if n.Meta.User != "foo" {
		t.Errorf("User = %q, want foo", n.Meta.User)
	}
	if len(n.Tags) != 1 || n.Tags[0].Key != "k" || n.Tags[0].Value != "v" {
		t.Errorf("Tags = %+v, want [{k v}]", n.Tags)
	}
	const eps = 1e-6
	if diff := n.Lon - 1.0; diff > eps || diff < -eps {
		t.Errorf("Lon = %v, want 1.0", n.Lon)
	}
	if diff := n.Lat - 2.0; diff > eps || diff < -eps {
		t.Errorf("Lat = %v, want 2.0", n.Lat)
	}
	if n.Meta.Timestamp.Year() != 2016 {
		t.Errorf("Timestamp = %v, want year 2016", n.Meta.Timestamp)
	}
}

func TestParseWayLine(t *testing.T) {
	line := "w1 v1 dV c1 t2016-01-01T00:00:00Z i1 ubar Thighway=residential Nn1,n2,n3"
	buf := entity.NewBuffer(0)
	p := NewParser()
	if err := p.ParseLine([]byte(line), buf); err != nil {
		t.Fatalf("ParseLine error: %v", err)
	}
	w := buf.Entities()[0].(*entity.Way)
	if w.ID != 1 {
		t.Errorf("ID = %d, want 1", w.ID)
	}
	if len(w.Nodes) != 3 {
		t.Fatalf("expected 3 way nodes, got %d", len(w.Nodes))
	}
	for i, want := range []int64{1, 2, 3} {
		if w.Nodes[i].Ref != want {
			t.Errorf("Nodes[%d].Ref = %d, want %d", i, w.Nodes[i].Ref, want)
		}
	}
}

func TestParseRelationLine(t *testing.T) {
	line := "r1 v1 dV c1 t2016-01-01T00:00:00Z i1 ubaz Ttype=multipolygon Mw1@outer,w2@inner,n3@"
	buf := entity.NewBuffer(0)
	p := NewParser()
	if err := p.ParseLine([]byte(line), buf); err != nil {
		t.Fatalf("ParseLine error: %v", err)
	}
	r := buf.Entities()[0].(*entity.Relation)
	if len(r.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(r.Members))
	}
	if r.Members[0].Type != entity.MemberWay || r.Members[0].Role != "outer" {
		t.Errorf("Members[0] = %+v", r.Members[0])
	}
	if r.Members[2].Type != entity.MemberNode || r.Members[2].Role != "" {
		t.Errorf("Members[2] = %+v, want empty role", r.Members[2])
	}
}

func TestParseChangesetLine(t *testing.T) {
	line := "c1 k3 d5 s2016-01-01T00:00:00Z e2016-01-01T01:00:00Z i1 ubaz x1.0 y2.0 X3.0 Y4.0 Tcomment=yes"
	buf := entity.NewBuffer(0)
	p := NewParser()
	if err := p.ParseLine([]byte(line), buf); err != nil {
		t.Fatalf("ParseLine error: %v", err)
	}
	cs, ok := buf.Entities()[0].(*entity.Changeset)
	if !ok {
		t.Fatalf("expected *entity.Changeset, got %T", buf.Entities()[0])
	}
	if cs.NumChanges != 3 {
		t.Errorf("NumChanges = %d, want 3", cs.NumChanges)
	}
	if cs.NumComments != 5 {
		t.Errorf("NumComments = %d, want 5", cs.NumComments)
	}
	if cs.UID != 1 || cs.User != "baz" {
		t.Errorf("UID/User = %d/%q, want 1/baz", cs.UID, cs.User)
	}
	const eps = 1e-6
	if diff := cs.MinLon - 1.0; diff > eps || diff < -eps {
		t.Errorf("MinLon = %v, want 1.0", cs.MinLon)
	}
	if diff := cs.MaxLat - 4.0; diff > eps || diff < -eps {
		t.Errorf("MaxLat = %v, want 4.0", cs.MaxLat)
	}
	if len(cs.Tags) != 1 || cs.Tags[0].Key != "comment" {
		t.Errorf("Tags = %+v, want [{comment yes}]", cs.Tags)
	}
}

func TestParseEmptyAndCommentLinesAreSkipped(t *testing.T) {
	buf := entity.NewBuffer(0)
	p := NewParser()
	for _, line := range []string{"", "# a comment"} {
		if err := p.ParseLine([]byte(line), buf); err != nil {
			t.Errorf("ParseLine(%q) error: %v", line, err)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("expected no committed entities from blank/comment lines, got %d", buf.Len())
	}
}

func TestParseLineErrorDoesNotCommitPartialEntity(t *testing.T) {
	buf := entity.NewBuffer(0)
	p := NewParser()
	// 'v' field value is not a valid integer
	if err := p.ParseLine([]byte("n1 vX"), buf); err == nil {
		t.Fatalf("expected a parse error")
	}
	if buf.Len() != 0 {
		t.Errorf("expected buffer to remain empty after a parse failure, got %d entities", buf.Len())
	}
}

func TestParseLineErrorReportsPosition(t *testing.T) {
	buf := entity.NewBuffer(0)
	p := NewParser()
	p.line = 1
	err := p.ParseLine([]byte("n1 vX"), buf)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected error to report a line number, got %q", err.Error())
	}
}

func TestParseAllStopsOnFirstError(t *testing.T) {
	input := "n1 v1\nn2 vX\nn3 v1\n"
	buf := entity.NewBuffer(0)
	p := NewParser()
	err := p.ParseAll(strings.NewReader(input), buf)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if buf.Len() != 1 {
		t.Errorf("expected only the first line committed before the error, got %d entities", buf.Len())
	}
}

func TestIntegerTooLong(t *testing.T) {
	buf := entity.NewBuffer(0)
	p := NewParser()
	line := "n12345678901234567890"
	if err := p.ParseLine([]byte(line), buf); err == nil {
		t.Fatalf("expected an error for a 20-digit id")
	}
}

func TestEmptyTimestampIsValid(t *testing.T) {
	buf := entity.NewBuffer(0)
	p := NewParser()
	if err := p.ParseLine([]byte("n1 v1 t"), buf); err != nil {
		t.Fatalf("empty timestamp should be valid, got error: %v", err)
	}
	n := buf.Entities()[0].(*entity.Node)
	if !n.Meta.Timestamp.IsZero() {
		t.Errorf("expected zero timestamp, got %v", n.Meta.Timestamp)
	}
}

func TestEscapedTagValue(t *testing.T) {
	buf := entity.NewBuffer(0)
	p := NewParser()
	// %E9% is the single Unicode code point U+00E9 ('é'), not a pair of
	// raw UTF-8 bytes.
	if err := p.ParseLine([]byte("n1 Tname=caf%E9%"), buf); err != nil {
		t.Fatalf("ParseLine error: %v", err)
	}
	n := buf.Entities()[0].(*entity.Node)
	if len(n.Tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(n.Tags))
	}
	if n.Tags[0].Value != "café" {
		t.Errorf("got %q, want %q", n.Tags[0].Value, "café")
	}
}
