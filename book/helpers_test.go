package book

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Add(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

type fakeFace struct {
	size  Size
	poses []Pose
}

func (f *fakeFace) SetSize(s Size) { f.size = s }
func (f *fakeFace) SetPose(p Pose) { f.poses = append(f.poses, p) }
func (f *fakeFace) last() Pose     { return f.poses[len(f.poses)-1] }

type fakeContainer struct {
	bounds   Size
	faces    []*fakeFace
	handlers PointerHandlers
	bound    bool
	meta     map[int]PageSemantics
	debug    []DebugState
}

func newFakeContainer(pages int) *fakeContainer {
	c := &fakeContainer{bounds: Size{Width: 1000, Height: 600}, meta: map[int]PageSemantics{}}
	for i := 0; i < pages; i++ {
		c.faces = append(c.faces, &fakeFace{})
	}
	return c
}

func (c *fakeContainer) Bounds() Size { return c.bounds }

func (c *fakeContainer) Faces() []Face {
	faces := make([]Face, len(c.faces))
	for i, f := range c.faces {
		faces[i] = f
	}
	return faces
}

func (c *fakeContainer) BindPointer(h PointerHandlers) {
	c.handlers = h
	c.bound = true
}

func (c *fakeContainer) StampMeta(i int, m PageSemantics) { c.meta[i] = m }
func (c *fakeContainer) ShowDebug(d DebugState)           { c.debug = append(c.debug, d) }

type visibleEvent struct {
	current, previous []int
}

type harness struct {
	t      *testing.T
	clock  *fakeClock
	book   *Book
	c      *fakeContainer
	events []visibleEvent
}

func newHarness(t *testing.T, pages int, dir Direction) *harness {
	t.Helper()
	h := &harness{t: t, clock: newFakeClock(), c: newFakeContainer(pages)}
	b, err := New(Options{
		PagesCount: pages,
		Direction:  dir,
		Clock:      h.clock.Now,
		OnVisiblePagesChanged: func(cur, prev []int) {
			h.events = append(h.events, visibleEvent{cur, prev})
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := b.Render(h.c, false); err != nil {
		t.Fatalf("Render: %v", err)
	}
	h.book = b
	return h
}

// frame advances the clock by one 60 Hz frame and runs it.
func (h *harness) frame() bool {
	return h.book.Advance(h.clock.Add(DefaultTrackInterval))
}

// settle runs frames until nothing is animating.
func (h *harness) settle() {
	h.t.Helper()
	for i := 0; i < 1000; i++ {
		if !h.frame() {
			return
		}
	}
	h.t.Fatal("book did not settle")
}

func (h *harness) width() float64 {
	return h.book.Layout().BookWidth
}
