package book

import (
	"errors"
	"testing"
	"time"
)

func TestNewRejectsEmptyBook(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrInvalidPagesCount) {
		t.Errorf("New with no pages: err = %v", err)
	}
}

func TestNewLeafCount(t *testing.T) {
	for pages, want := range map[int]int{1: 1, 2: 1, 9: 5, 10: 5} {
		b, err := New(Options{PagesCount: pages})
		if err != nil {
			t.Fatal(err)
		}
		if got := len(b.Leaves()); got != want {
			t.Errorf("%d pages: %d leaves, want %d", pages, got, want)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	b, err := New(Options{PagesCount: 4})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Render(nil, false); !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("nil container: err = %v", err)
	}
	empty := newFakeContainer(0)
	if err := b.Render(empty, false); !errors.Is(err, ErrNoPages) {
		t.Errorf("empty container: err = %v", err)
	}
	if b.Rendered() || empty.bound {
		t.Error("failed render changed state")
	}

	c := newFakeContainer(4)
	if err := b.Render(c, false); err != nil {
		t.Fatal(err)
	}
	if err := b.Render(c, false); !errors.Is(err, ErrAlreadyRendered) {
		t.Errorf("second render: err = %v", err)
	}
}

func TestRenderLaysOutFaces(t *testing.T) {
	sem := map[int]PageSemantics{0: {Name: "cover", Title: "Front cover"}, 3: {Name: "3", Title: "Chapter 1"}}
	b, err := New(Options{
		PagesCount: 6,
		PageSemantics: func(i int) (PageSemantics, bool) {
			s, ok := sem[i]
			return s, ok
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	c := newFakeContainer(6)
	if err := b.Render(c, false); err != nil {
		t.Fatal(err)
	}
	layout := b.Layout()
	for i, f := range c.faces {
		want := layout.Leaf
		if i < 2 || i >= 4 {
			want = layout.Cover
		}
		if f.size != want {
			t.Errorf("face %d size = %v, want %v", i, f.size, want)
		}
		if len(f.poses) != 1 {
			t.Fatalf("face %d got %d poses", i, len(f.poses))
		}
		pose := f.last()
		if pose.Z != 6-i {
			t.Errorf("face %d z = %d, want %d", i, pose.Z, 6-i)
		}
		wantMirror := 1.0
		if i%2 == 1 {
			wantMirror = -1
		}
		if pose.Mirror != wantMirror || pose.Angle != 0 {
			t.Errorf("face %d resting pose = %+v", i, pose)
		}
	}
	if len(c.meta) != 2 || c.meta[3].Title != "Chapter 1" {
		t.Errorf("meta = %v", c.meta)
	}
	if !c.bound || c.handlers.DragStart == nil || c.handlers.TouchMove == nil {
		t.Error("pointer handlers not bound")
	}
}

func TestRenderIgnoresExtraFaces(t *testing.T) {
	b, err := New(Options{PagesCount: 2})
	if err != nil {
		t.Fatal(err)
	}
	c := newFakeContainer(3)
	if err := b.Render(c, false); err != nil {
		t.Fatal(err)
	}
	if len(c.faces[2].poses) != 0 {
		t.Error("face beyond the last leaf was posed")
	}
}

func TestDebugStateIsPolled(t *testing.T) {
	clk := newFakeClock()
	b, err := New(Options{PagesCount: 4, Clock: clk.Now, DebugInterval: 100 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	c := newFakeContainer(4)
	if err := b.Render(c, true); err != nil {
		t.Fatal(err)
	}
	b.Next()
	if !b.Advance(clk.Add(10 * time.Millisecond)) {
		t.Error("Advance should keep running while debugging")
	}
	b.Advance(clk.Add(10 * time.Millisecond))
	b.Advance(clk.Add(100 * time.Millisecond))
	if len(c.debug) != 2 {
		t.Fatalf("debug snapshots = %d, want 2", len(c.debug))
	}
	d := c.debug[0]
	if d.State != StateCompleting || d.Leaf != 0 || len(d.Leaves) != 1 || !d.Leaves[0].HasTarget {
		t.Errorf("snapshot = %+v", d)
	}
}

func TestDebugDisabledByDefault(t *testing.T) {
	h := newHarness(t, 4, LTR)
	h.frame()
	if len(h.c.debug) != 0 {
		t.Error("debug sink used without debug")
	}
	if h.frame() {
		t.Error("idle book asked for another frame")
	}
}

func TestJumpToPageOnlyNotifies(t *testing.T) {
	var got []int
	b, err := New(Options{PagesCount: 10, OnPageChanged: func(i int) { got = append(got, i) }})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Render(newFakeContainer(10), false); err != nil {
		t.Fatal(err)
	}
	b.JumpToPage(7)
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("OnPageChanged got %v", got)
	}
	for _, l := range b.Leaves() {
		if l.Position() != 0 || l.Animating() {
			t.Errorf("leaf %d moved", l.Index())
		}
	}
}
