package book

// Size is a width and height in surface units.
type Size struct {
	Width  float64
	Height float64
}

// Ratio is an aspect ratio expressed as width:height.
type Ratio struct {
	Width  float64
	Height float64
}

// Value returns width/height.
func (r Ratio) Value() float64 {
	return r.Width / r.Height
}

func (r Ratio) valid() bool {
	return r.Width > 0 && r.Height > 0
}

var (
	// DefaultLeafAspectRatio is the proportion of an interior page.
	DefaultLeafAspectRatio = Ratio{Width: 2, Height: 3}
	// DefaultCoverAspectRatio is the proportion of a hard cover.
	DefaultCoverAspectRatio = Ratio{Width: 2.15, Height: 3.15}
)

// FitToAspectRatio returns the largest size with the target ratio that
// fits inside box. A box wider than the target is constrained by its
// height, otherwise by its width.
func FitToAspectRatio(box Size, targetRatio float64) Size {
	if box.Width/box.Height > targetRatio {
		return Size{Width: box.Height * targetRatio, Height: box.Height}
	}
	return Size{Width: box.Width, Height: box.Width / targetRatio}
}

// LeafSize scales a cover size to the leaf proportions. The scale is
// applied per axis, so the leaf does not keep the cover's aspect ratio.
func LeafSize(cover Size, leafRatio, coverRatio Ratio) Size {
	return Size{
		Width:  cover.Width * leafRatio.Width / coverRatio.Width,
		Height: cover.Height * leafRatio.Height / coverRatio.Height,
	}
}

// Layout is the sizing a book derives from its container.
type Layout struct {
	Cover Size
	Leaf  Size
	// BookWidth is the width of the open spread, the distance a drag
	// has to travel to turn a leaf completely.
	BookWidth float64
}

// ComputeLayout fits two covers side by side into the container bounds
// and derives the leaf size from them.
func ComputeLayout(bounds Size, leafRatio, coverRatio Ratio) Layout {
	cover := FitToAspectRatio(Size{Width: bounds.Width / 2, Height: bounds.Height}, coverRatio.Value())
	return Layout{
		Cover:     cover,
		Leaf:      LeafSize(cover, leafRatio, coverRatio),
		BookWidth: cover.Width * 2,
	}
}
