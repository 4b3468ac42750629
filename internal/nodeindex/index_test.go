package nodeindex

import (
	"errors"
	"testing"

	"github.com/osmium-go/osmcore/internal/location"
	"github.com/osmium-go/osmcore/internal/oerr"
)

func loc(x, y int32) location.Location { return location.Location{X: x, Y: y} }

// runBasicSuite mirrors the libosmium test_func_all/test_func_real
// fixtures: set a handful of ids out of order, check lookups, sort, and
// clear, against whatever concrete Index backend is passed in.
func runBasicSuite(t *testing.T, idx Index) {
	t.Helper()

	if _, err := idx.Get(0); err == nil {
		t.Errorf("expected not-found error for id 0 before any Set")
	} else {
		var nf *oerr.NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("expected *oerr.NotFoundError, got %T: %v", err, err)
		} else if got := nf.Error(); got != "id 0 not found" {
			t.Errorf("got error message %q, want %q", got, "id 0 not found")
		}
	}

	ids := []int64{17, 3, 42, 9, 100}
	for i, id := range ids {
		idx.Set(id, loc(int32(i), int32(i*2)))
	}
	idx.Sort()

	for i, id := range ids {
		got, err := idx.Get(id)
		if err != nil {
			t.Fatalf("Get(%d) error: %v", id, err)
		}
		want := loc(int32(i), int32(i*2))
		if got != want {
			t.Errorf("Get(%d) = %v, want %v", id, got, want)
		}
	}

	if got := idx.GetNoexcept(99999); got.Valid() {
		t.Errorf("GetNoexcept on an unset id should be Undefined, got %v", got)
	}

	idx.Clear()
	if idx.Size() != 0 {
		t.Errorf("expected Size() == 0 after Clear, got %d", idx.Size())
	}
}

func TestAllBackendsSatisfyBasicSuite(t *testing.T) {
	dir := t.TempDir()
	for _, name := range MapTypes() {
		name := name
		t.Run(name, func(t *testing.T) {
			idx, err := Create(name, dir)
			if err != nil {
				t.Fatalf("Create(%q) error: %v", name, err)
			}
			defer func() {
				if c, ok := idx.(Closer); ok {
					c.Close()
				}
			}()
			if name == "dummy" {
				// Dummy discards everything by design; it can't pass the
				// round-trip assertions in runBasicSuite.
				idx.Set(1, loc(1, 1))
				if idx.GetNoexcept(1).Valid() {
					t.Errorf("dummy index must never retain a value")
				}
				return
			}
			runBasicSuite(t, idx)
		})
	}
}

func TestFactoryErrors(t *testing.T) {
	if _, err := Create("", ""); err == nil {
		t.Errorf("expected an error for an empty map type name")
	} else if got := err.Error(); got != "need non-empty map type name" {
		t.Errorf("got %q, want %q", got, "need non-empty map type name")
	}

	if _, err := Create("does not exist", ""); err == nil {
		t.Errorf("expected an error for an unregistered map type name")
	} else if got := err.Error(); got != `support for map type "does not exist" not compiled into this binary` {
		t.Errorf("got %q", got)
	}
}

func TestFactoryHasAtLeastSixTypes(t *testing.T) {
	types := MapTypes()
	if len(types) < 6 {
		t.Errorf("expected at least 6 registered map types, got %d: %v", len(types), types)
	}
}

func TestFlexSwitchToDensePreservesValues(t *testing.T) {
	dir := t.TempDir()
	idx, err := NewFlex(dir)
	if err != nil {
		t.Fatalf("NewFlex error: %v", err)
	}
	f := idx.(*Flex)
	defer f.Close()

	idx.Set(5, loc(1, 1))
	idx.Set(2000000000, loc(2, 2))
	if f.IsDense() {
		t.Fatalf("expected Flex to start sparse")
	}

	if err := f.SwitchToDense(); err != nil {
		t.Fatalf("SwitchToDense error: %v", err)
	}
	if !f.IsDense() {
		t.Fatalf("expected Flex to report dense after switching")
	}

	got, err := idx.Get(5)
	if err != nil || got != loc(1, 1) {
		t.Errorf("Get(5) after switch = %v, %v; want %v, nil", got, err, loc(1, 1))
	}
	if got := idx.GetNoexcept(123456789); got.Valid() {
		t.Errorf("never-set id should remain Undefined after switch, got %v", got)
	}

	// switching again is a safe no-op
	if err := f.SwitchToDense(); err != nil {
		t.Errorf("second SwitchToDense call should be a no-op, got error: %v", err)
	}
}

func TestSparseArrayUnsortedLookupStillCorrect(t *testing.T) {
	s := NewSparseArray()
	s.Set(1, loc(1, 1))
	s.Set(1, loc(2, 2)) // overwritten
	got, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != loc(2, 2) {
		t.Errorf("expected last write to win even before Sort, got %v", got)
	}
}
