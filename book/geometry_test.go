package book

import (
	"math"
	"testing"
)

func TestFitToAspectRatio(t *testing.T) {
	tests := []struct {
		name  string
		box   Size
		ratio float64
		want  Size
	}{
		{"height constrained", Size{1600, 900}, 4.0 / 3.0, Size{1200, 900}},
		{"width constrained", Size{800, 900}, 16.0 / 9.0, Size{800, 450}},
		{"exact", Size{400, 600}, 2.0 / 3.0, Size{400, 600}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitToAspectRatio(tt.box, tt.ratio)
			if !approx(got.Width, tt.want.Width) || !approx(got.Height, tt.want.Height) {
				t.Errorf("FitToAspectRatio(%v, %v) = %v, want %v", tt.box, tt.ratio, got, tt.want)
			}
		})
	}
}

func TestLeafSizeIsNonUniform(t *testing.T) {
	cover := Size{Width: 215, Height: 315}
	got := LeafSize(cover, DefaultLeafAspectRatio, DefaultCoverAspectRatio)
	if !approx(got.Width, 200) || !approx(got.Height, 300) {
		t.Fatalf("LeafSize = %v, want {200 300}", got)
	}
	coverAspect := cover.Width / cover.Height
	leafAspect := got.Width / got.Height
	if approx(coverAspect, leafAspect) {
		t.Errorf("leaf kept the cover aspect %v", coverAspect)
	}
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(Size{Width: 1000, Height: 600}, DefaultLeafAspectRatio, DefaultCoverAspectRatio)
	if !approx(l.Cover.Height, 600) {
		t.Errorf("cover height = %v, want 600", l.Cover.Height)
	}
	if !approx(l.Cover.Width/l.Cover.Height, DefaultCoverAspectRatio.Value()) {
		t.Errorf("cover aspect = %v", l.Cover.Width/l.Cover.Height)
	}
	if !approx(l.BookWidth, 2*l.Cover.Width) {
		t.Errorf("book width = %v, want %v", l.BookWidth, 2*l.Cover.Width)
	}
	if l.Leaf.Width >= l.Cover.Width || l.Leaf.Height >= l.Cover.Height {
		t.Errorf("leaf %v not inside cover %v", l.Leaf, l.Cover)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
