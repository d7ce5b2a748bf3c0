package book

import "math"

// touchLock decides per touch whether movement belongs to the page
// (vertical scrolling) or to the book (horizontal turning). Once
// horizontal movement dominates the touch stays captured until it ends.
type touchLock struct {
	startX, startY float64
	active         bool
	horizontal     bool
}

func (b *Book) touchStart(x, y float64) {
	b.touch = touchLock{startX: x, startY: y, active: true}
}

// touchMove reports whether the host should stop the movement from
// reaching the page underneath.
func (b *Book) touchMove(x, y float64) bool {
	t := &b.touch
	if !t.active {
		return false
	}
	if !t.horizontal && math.Abs(x-t.startX) > math.Abs(y-t.startY) {
		t.horizontal = true
	}
	return t.horizontal
}
