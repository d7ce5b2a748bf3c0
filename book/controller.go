package book

import (
	"math"
	"slices"
)

// State is the phase of the single gesture slot.
type State int

const (
	StateIdle State = iota
	StateTrackingForward
	StateTrackingBackward
	StateCompleting
)

func (s State) String() string {
	switch s {
	case StateTrackingForward:
		return "tracking-forward"
	case StateTrackingBackward:
		return "tracking-backward"
	case StateCompleting:
		return "completing"
	}
	return "idle"
}

// gesture is the one in-flight manual or programmatic flip.
type gesture struct {
	leaf      *Leaf
	turn      Turn
	startX    float64
	lastDelta float64
	// armed is set by an accepted drag start and cleared when the
	// gesture ends; updates without it are ignored.
	armed        bool
	programmatic bool
}

// State reports the current gesture phase.
func (b *Book) State() State {
	g := b.gesture
	switch {
	case g.programmatic:
		return StateCompleting
	case g.leaf != nil && g.turn == TurnForward:
		return StateTrackingForward
	case g.leaf != nil && g.turn == TurnBackward:
		return StateTrackingBackward
	}
	return StateIdle
}

// CurrentSpread returns the highest fully turned leaf and the one after
// it. Either is nil at the respective end of the book.
func (b *Book) CurrentSpread() (left, right *Leaf) {
	return b.spread((*Leaf).IsTurned)
}

// CurrentOrTurningSpread is CurrentSpread counting a leaf that is part
// way through a turn as turned.
func (b *Book) CurrentOrTurningSpread() (left, right *Leaf) {
	return b.spread(func(l *Leaf) bool { return l.IsTurned() || l.IsTurning() })
}

func (b *Book) spread(match func(*Leaf) bool) (left, right *Leaf) {
	k := -1
	for i := len(b.leaves) - 1; i >= 0; i-- {
		if match(b.leaves[i]) {
			k = i
			break
		}
	}
	if k >= 0 {
		left = b.leaves[k]
	}
	if k+1 < len(b.leaves) {
		right = b.leaves[k+1]
	}
	return left, right
}

// IsClosed reports whether nothing lies before the first leaf.
func (b *Book) IsClosed() bool {
	left, _ := b.CurrentOrTurningSpread()
	return left == nil
}

// IsClosedInverted reports whether every leaf has been turned.
func (b *Book) IsClosedInverted() bool {
	_, right := b.CurrentSpread()
	return right == nil
}

func (b *Book) dragStart(x float64) {
	g := &b.gesture
	if g.leaf != nil || g.programmatic {
		g.turn = TurnNone
		g.startX = 0
		g.armed = false
		Logger().Debug("drag start suppressed", "state", b.State().String())
		return
	}
	g.startX = x
	g.turn = TurnNone
	g.lastDelta = 0
	g.armed = true
}

func (b *Book) dragUpdate(x float64) {
	if b.updating {
		return
	}
	b.updating = true
	defer func() { b.updating = false }()

	g := &b.gesture
	if !g.armed || g.programmatic {
		return
	}
	width := b.layout.BookWidth
	var delta float64
	if b.opts.Direction == LTR {
		delta = g.startX - x
	} else {
		delta = x - g.startX
	}
	if math.Abs(delta) > width || delta == 0 {
		return
	}
	g.lastDelta = delta
	if g.turn == TurnNone {
		if delta > 0 {
			g.turn = TurnForward
		} else {
			g.turn = TurnBackward
		}
	}

	switch g.turn {
	case TurnForward:
		p := delta / width
		if p > 1 || delta < 0 {
			return
		}
		if g.leaf == nil {
			if b.IsClosedInverted() {
				return
			}
			_, g.leaf = b.CurrentOrTurningSpread()
			if g.leaf == nil {
				return
			}
		}
		g.leaf.EfficientFlipToPosition(p, b.opts.TrackVelocity)
	case TurnBackward:
		p := 1 - math.Abs(delta)/width
		if p < 0 || delta > 0 {
			return
		}
		if g.leaf == nil {
			if b.IsClosed() {
				return
			}
			g.leaf, _ = b.CurrentOrTurningSpread()
			if g.leaf == nil {
				return
			}
		}
		g.leaf.EfficientFlipToPosition(p, b.opts.TrackVelocity)
	}
}

func (b *Book) dragEnd(velocity float64) {
	g := &b.gesture
	if g.leaf == nil || g.programmatic {
		g.turn = TurnNone
		g.startX = 0
		g.lastDelta = 0
		g.armed = false
		return
	}
	leaf := g.leaf
	to := b.settleTarget(g.turn, leaf.Position(), velocity)
	Logger().Debug("drag released",
		"leaf", leaf.Index(), "turn", g.turn.String(),
		"position", leaf.Position(), "velocity", velocity, "to", to)
	b.complete(leaf, to)
}

// settleTarget decides where a released leaf goes. A fast enough release
// in the gesture's direction completes the turn however far the leaf
// travelled; otherwise the leaf goes to the nearer side.
func (b *Book) settleTarget(turn Turn, position, velocity float64) float64 {
	fast := b.opts.FastDelta
	ltr := b.opts.Direction == LTR
	switch turn {
	case TurnForward:
		flick := velocity > fast
		if ltr {
			flick = velocity < -fast
		}
		if flick || position >= 0.5 {
			return 1
		}
		return 0
	case TurnBackward:
		flick := velocity < -fast
		if ltr {
			flick = velocity > fast
		}
		if flick || position <= 0.5 {
			return 0
		}
		return 1
	}
	if position >= 0.5 {
		return 1
	}
	return 0
}

// complete runs leaf to its resting side as a programmatic flip. No
// gesture starts until it resolves.
func (b *Book) complete(leaf *Leaf, to float64) *Task {
	leaf.cancelTracking()
	b.gesture = gesture{leaf: leaf, programmatic: true}
	t := leaf.FlipToPosition(to, b.opts.SettleVelocity)
	t.Then(func() {
		b.gesture = gesture{}
	})
	return t
}

// Next turns the next leaf forward. It returns nil when a gesture or
// another flip is in progress or when every leaf is already turned.
func (b *Book) Next() *Task {
	if b.gesture.leaf != nil || b.gesture.programmatic || b.IsClosedInverted() {
		return nil
	}
	_, right := b.CurrentSpread()
	return b.complete(right, 1)
}

// Prev turns the last turned leaf back. It returns nil when a gesture
// or another flip is in progress or when the book is closed.
func (b *Book) Prev() *Task {
	if b.gesture.leaf != nil || b.gesture.programmatic {
		return nil
	}
	left, _ := b.CurrentSpread()
	if left == nil {
		return nil
	}
	return b.complete(left, 0)
}

// leafTurned is called by a leaf that has settled on either side.
func (b *Book) leafTurned(l *Leaf, turn Turn) {
	pages := visiblePages(l.Index(), len(b.leaves), b.opts.PagesCount, turn)
	if b.lastVisible != nil && slices.Equal(pages, b.lastVisible) {
		Logger().Debug("visible pages unchanged", "pages", pages)
		return
	}
	prev := b.lastVisible
	b.lastVisible = pages
	if b.opts.OnVisiblePagesChanged != nil {
		b.opts.OnVisiblePagesChanged(slices.Clone(pages), slices.Clone(prev))
	}
}

// visiblePages returns the 1-based numbers of the pages shown once leaf
// index settles in the given direction. Numbers past the last page (the
// missing back of an odd-length book) are dropped, except at the end of
// the book where the last page stays visible.
func visiblePages(index, leafCount, pagesCount int, turn Turn) []int {
	var pages []int
	switch {
	case turn == TurnForward && index == leafCount-1:
		return []int{min(2*index+2, pagesCount)}
	case turn == TurnForward:
		pages = []int{2*index + 2, 2*index + 3}
	case index == 0:
		pages = []int{1}
	default:
		pages = []int{2 * index, 2*index + 1}
	}
	return slices.DeleteFunc(pages, func(n int) bool { return n > pagesCount })
}
