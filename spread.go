package main

import (
	"math"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"folio/book"
)

// placement is where a face sits on the surface before its pose scale
// is applied, in surface units.
type placement struct {
	x, y   float64
	width  float64
	height float64
	// anchorX is the fixed edge the face is scaled about.
	anchorX float64
	scaleX  float64
}

// place positions face f in a book whose spine runs through the centre
// of bounds.
func place(f *pageFace, bounds book.Size, dir book.Direction) placement {
	spine := bounds.Width / 2
	// The base slot lies before the spine in reading order; a front
	// face's offset moves it across.
	slotX := spine - f.size.Width
	if dir == book.RTL {
		slotX = spine
	}
	p := placement{
		x:      slotX + f.pose.Offset*f.size.Width,
		y:      (bounds.Height - f.size.Height) / 2,
		width:  f.size.Width,
		height: f.size.Height,
		scaleX: f.pose.ScaleX(),
	}
	p.anchorX = p.x
	if f.pose.Anchor == book.AnchorRight {
		p.anchorX = p.x + p.width
	}
	return p
}

// project maps surface x back into the face, returning the fraction of
// the face width it lands on.
func (p placement) project(x float64) (float64, bool) {
	if math.Abs(p.scaleX) < minFaceScale {
		return 0, false
	}
	u := (p.anchorX + (x-p.anchorX)/p.scaleX - p.x) / p.width
	if u < 0 || u >= 1 {
		return 0, false
	}
	return u, true
}

// byDepth returns the faces back to front.
func byDepth(faces []*pageFace) []*pageFace {
	sorted := append([]*pageFace(nil), faces...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].pose.Z < sorted[j].pose.Z
	})
	return sorted
}

// texture renders a page as a grid of runes with a border, its title on
// top and its number at the bottom.
func texture(f *pageFace, cols, rows int) [][]rune {
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}
	if cols < 2 || rows < 2 {
		return grid
	}
	for c := 1; c < cols-1; c++ {
		grid[0][c] = '─'
		grid[rows-1][c] = '─'
	}
	for r := 1; r < rows-1; r++ {
		grid[r][0] = '│'
		grid[r][cols-1] = '│'
	}
	grid[0][0], grid[0][cols-1] = '┌', '┐'
	grid[rows-1][0], grid[rows-1][cols-1] = '└', '┘'
	if f.blank {
		return grid
	}

	inner := cols - 4
	write := func(r int, text string, right bool) {
		if r <= 0 || r >= rows-1 || inner <= 0 {
			return
		}
		text = runewidth.Truncate(text, inner, "…")
		if right {
			text = strings.Repeat(" ", inner-runewidth.StringWidth(text)) + text
		}
		c := 2
		for _, ch := range text {
			if c >= cols-2 {
				break
			}
			if runewidth.RuneWidth(ch) != 1 {
				ch = '·'
			}
			grid[r][c] = ch
			c++
		}
	}

	write(1, f.title, false)
	body := f.lines
	if f.scroll < len(body) {
		body = body[f.scroll:]
	} else {
		body = nil
	}
	for i, line := range body {
		r := 3 + i
		if r >= rows-2 {
			break
		}
		write(r, strings.ReplaceAll(line, "\t", "    "), false)
	}
	write(rows-2, f.name, true)
	return grid
}

var mirroredRunes = map[rune]rune{
	'┌': '┐', '┐': '┌', '└': '┘', '┘': '└',
	'(': ')', ')': '(', '[': ']', ']': '[', '{': '}', '}': '{',
	'<': '>', '>': '<', '/': '\\', '\\': '/',
}

// composite draws every face of the shelf into a cols x rows grid of
// terminal cells, back to front. owner records which page is on top in
// each cell, -1 where there is none.
func composite(s *shelf, dir book.Direction, cols, rows int) (lines []string, owner [][]int) {
	grid := make([][]rune, rows)
	owner = make([][]int, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
		owner[r] = make([]int, cols)
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}

	bounds := book.Size{Width: float64(cols) * charWidth, Height: float64(rows) * charHeight}
	for _, f := range byDepth(s.faces) {
		p := place(f, bounds, dir)
		texCols := int(math.Round(p.width / charWidth))
		texRows := int(math.Round(p.height / charHeight))
		if texCols < 1 || texRows < 1 {
			continue
		}
		tex := texture(f, texCols, texRows)
		top := int(math.Round(p.y / charHeight))
		for c := 0; c < cols; c++ {
			u, ok := p.project((float64(c) + 0.5) * charWidth)
			if !ok {
				continue
			}
			tc := int(u * float64(texCols))
			for tr := 0; tr < texRows; tr++ {
				r := top + tr
				if r < 0 || r >= rows {
					continue
				}
				ch := tex[tr][tc]
				if p.scaleX < 0 {
					if m, ok := mirroredRunes[ch]; ok {
						ch = m
					}
				}
				grid[r][c] = ch
				owner[r][c] = f.index
			}
		}
	}

	lines = make([]string, rows)
	for r := range grid {
		lines[r] = string(grid[r])
	}
	return lines, owner
}

// faceAt returns the index of the page drawn on top at cell (c, r).
func faceAt(s *shelf, dir book.Direction, cols, rows, c, r int) int {
	_, owner := composite(s, dir, cols, rows)
	if r < 0 || r >= len(owner) || c < 0 || c >= len(owner[r]) {
		return -1
	}
	return owner[r][c]
}
