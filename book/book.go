package book

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrContainerNotFound is returned by Render when there is no container.
	ErrContainerNotFound = errors.New("book container not found")
	// ErrNoPages is returned by Render when the container has no pages.
	ErrNoPages = errors.New("no pages found")
	// ErrInvalidPagesCount is returned by New for a book without pages.
	ErrInvalidPagesCount = errors.New("pages count must be at least 1")
	// ErrAlreadyRendered is returned by a second call to Render.
	ErrAlreadyRendered = errors.New("book already rendered")
)

const (
	DefaultFastDelta      = 500.0
	DefaultSettleVelocity = 225.0
	DefaultTrackVelocity  = 20000.0
	DefaultTrackInterval  = time.Second / 60
	DefaultDebugInterval  = 250 * time.Millisecond
)

// PageSemantics is descriptive metadata for a page.
type PageSemantics struct {
	Name  string
	Title string
}

// Options configures a Book. Zero values select the defaults.
type Options struct {
	PagesCount       int
	LeafAspectRatio  Ratio
	CoverAspectRatio Ratio
	Direction        Direction

	// PageSemantics looks up metadata stamped on page faces during Render.
	PageSemantics func(pageIndex int) (PageSemantics, bool)
	// OnPageChanged receives JumpToPage requests.
	OnPageChanged func(pageIndex int)
	// OnVisiblePagesChanged receives the 1-based numbers of the pages
	// that became visible and of those shown before (nil the first time).
	OnVisiblePagesChanged func(current, previous []int)

	// FastDelta is the release velocity, in surface units per second,
	// above which a gesture completes regardless of distance.
	FastDelta float64
	// SettleVelocity and TrackVelocity are angular velocities in degrees
	// per second for released and dragged leaves.
	SettleVelocity float64
	TrackVelocity  float64
	// TrackInterval is the minimum time between two tracking updates.
	TrackInterval time.Duration
	DebugInterval time.Duration

	Clock func() time.Time
}

func (o *Options) setDefaults() {
	if !o.LeafAspectRatio.valid() {
		o.LeafAspectRatio = DefaultLeafAspectRatio
	}
	if !o.CoverAspectRatio.valid() {
		o.CoverAspectRatio = DefaultCoverAspectRatio
	}
	if o.FastDelta <= 0 {
		o.FastDelta = DefaultFastDelta
	}
	if o.SettleVelocity <= 0 {
		o.SettleVelocity = DefaultSettleVelocity
	}
	if o.TrackVelocity <= 0 {
		o.TrackVelocity = DefaultTrackVelocity
	}
	if o.TrackInterval <= 0 {
		o.TrackInterval = DefaultTrackInterval
	}
	if o.DebugInterval <= 0 {
		o.DebugInterval = DefaultDebugInterval
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
}

// Container is the host surface a book is rendered into.
type Container interface {
	// Bounds is the space available for the open book.
	Bounds() Size
	// Faces returns the page faces in page order.
	Faces() []Face
}

// PointerHandlers are the gesture entry points a container forwards its
// input to. Positions and velocities are in surface units.
type PointerHandlers struct {
	DragStart  func(x float64)
	DragUpdate func(x float64)
	DragEnd    func(velocityX float64)
	TouchStart func(x, y float64)
	// TouchMove reports whether the movement was captured by the book.
	TouchMove func(x, y float64) bool
}

// PointerBinder is implemented by containers that deliver pointer input.
type PointerBinder interface {
	BindPointer(PointerHandlers)
}

// MetaStamper is implemented by containers that label page faces.
type MetaStamper interface {
	StampMeta(pageIndex int, meta PageSemantics)
}

// DebugSink is implemented by containers that display engine state.
type DebugSink interface {
	ShowDebug(DebugState)
}

// Book owns the leaves of one book and the gesture controller that
// turns them.
type Book struct {
	opts   Options
	leaves []*Leaf
	layout Layout

	rendered bool
	gesture  gesture
	updating bool
	touch    touchLock

	lastVisible []int

	debugSink DebugSink
	lastDebug time.Time
}

// New creates a book with ceil(PagesCount/2) leaves, all closed.
func New(opts Options) (*Book, error) {
	if opts.PagesCount < 1 {
		return nil, fmt.Errorf("new book: %w", ErrInvalidPagesCount)
	}
	opts.setDefaults()
	b := &Book{opts: opts}
	count := (opts.PagesCount + 1) / 2
	b.leaves = make([]*Leaf, count)
	for i := range b.leaves {
		b.leaves[i] = &Leaf{
			index:          i,
			leafCount:      count,
			totalPages:     opts.PagesCount,
			dir:            opts.Direction,
			settleVelocity: opts.SettleVelocity,
			trackVelocity:  opts.TrackVelocity,
			throttle:       NewThrottle(opts.TrackInterval),
			clock:          opts.Clock,
			onTurned:       b.leafTurned,
		}
	}
	return b, nil
}

// Render lays the book out in container and wires its input. Nothing is
// changed when it fails.
func (b *Book) Render(c Container, debug bool) error {
	if c == nil {
		return ErrContainerNotFound
	}
	if b.rendered {
		return ErrAlreadyRendered
	}
	faces := c.Faces()
	if len(faces) == 0 {
		return ErrNoPages
	}
	if len(faces) != b.opts.PagesCount {
		Logger().Warn("container page count differs from options",
			"faces", len(faces), "pages", b.opts.PagesCount)
	}

	b.layout = ComputeLayout(c.Bounds(), b.opts.LeafAspectRatio, b.opts.CoverAspectRatio)
	stamper, _ := c.(MetaStamper)
	for i, f := range faces {
		li := i / 2
		if li >= len(b.leaves) {
			Logger().Warn("ignoring faces beyond the last leaf", "from", i)
			break
		}
		leaf := b.leaves[li]
		size := b.layout.Leaf
		if leaf.IsCover() {
			size = b.layout.Cover
		}
		f.SetSize(size)
		if i%2 == 0 {
			leaf.front = f
			f.SetPose(RestingFrontPose(b.opts.Direction, i, b.opts.PagesCount))
		} else {
			leaf.back = f
			f.SetPose(RestingBackPose(b.opts.Direction, i, b.opts.PagesCount))
		}
		if stamper != nil && b.opts.PageSemantics != nil {
			if meta, ok := b.opts.PageSemantics(i); ok {
				stamper.StampMeta(i, meta)
			}
		}
	}

	if binder, ok := c.(PointerBinder); ok {
		binder.BindPointer(PointerHandlers{
			DragStart:  b.dragStart,
			DragUpdate: b.dragUpdate,
			DragEnd:    b.dragEnd,
			TouchStart: b.touchStart,
			TouchMove:  b.touchMove,
		})
	}
	if sink, ok := c.(DebugSink); ok && debug {
		b.debugSink = sink
	}
	b.rendered = true
	return nil
}

// Advance runs one frame at now and reports whether another frame is
// needed.
func (b *Book) Advance(now time.Time) bool {
	active := false
	for _, l := range b.leaves {
		if l.step(now) {
			active = true
		}
	}
	if b.debugSink != nil {
		if now.Sub(b.lastDebug) >= b.opts.DebugInterval {
			b.lastDebug = now
			b.debugSink.ShowDebug(b.DebugState())
		}
		return true
	}
	return active
}

// JumpToPage hands pageIndex to OnPageChanged. It does not move any leaf.
func (b *Book) JumpToPage(pageIndex int) {
	Logger().Debug("jump to page", "page", pageIndex)
	if b.opts.OnPageChanged != nil {
		b.opts.OnPageChanged(pageIndex)
	}
}

// Leaves returns the leaves in order.
func (b *Book) Leaves() []*Leaf {
	return b.leaves
}

// Leaf returns leaf i, or nil if out of range.
func (b *Book) Leaf(i int) *Leaf {
	if i < 0 || i >= len(b.leaves) {
		return nil
	}
	return b.leaves[i]
}

func (b *Book) Layout() Layout       { return b.layout }
func (b *Book) Direction() Direction { return b.opts.Direction }
func (b *Book) PagesCount() int      { return b.opts.PagesCount }
func (b *Book) Rendered() bool       { return b.rendered }
func (b *Book) FastDelta() float64   { return b.opts.FastDelta }

// VisiblePages returns the pages last reported as visible.
func (b *Book) VisiblePages() []int {
	return append([]int(nil), b.lastVisible...)
}

// LeafState is a snapshot of one leaf for debugging.
type LeafState struct {
	Index     int
	Position  float64
	Target    float64
	HasTarget bool
	Queued    int
}

// DebugState is a snapshot of the engine.
type DebugState struct {
	State     State
	Leaf      int
	Turn      Turn
	StartX    float64
	LastDelta float64
	Visible   []int
	Leaves    []LeafState
}

// DebugState returns a snapshot of the controller and of every leaf
// that is not at rest.
func (b *Book) DebugState() DebugState {
	d := DebugState{
		State:     b.State(),
		Leaf:      -1,
		Turn:      b.gesture.turn,
		StartX:    b.gesture.startX,
		LastDelta: b.gesture.lastDelta,
		Visible:   b.VisiblePages(),
	}
	if b.gesture.leaf != nil {
		d.Leaf = b.gesture.leaf.Index()
	}
	for _, l := range b.leaves {
		if !l.Animating() && (l.position == 0 || l.position == 1) {
			continue
		}
		target, ok := l.Target()
		d.Leaves = append(d.Leaves, LeafState{
			Index:     l.Index(),
			Position:  l.Position(),
			Target:    target,
			HasTarget: ok,
			Queued:    len(l.queue),
		})
	}
	return d
}
