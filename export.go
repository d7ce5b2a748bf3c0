package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/sync/errgroup"

	"folio/book"
)

const exportFontSize = 12.0

func parseExportFont() (*truetype.Font, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return ttfFont, nil
}

// newFontFace returns a face for one drawing context; faces are not safe
// to share between goroutines.
func newFontFace(ttfFont *truetype.Font) font.Face {
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    exportFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// snapshot copies the faces so a frame can override poses without
// touching the live shelf.
func snapshot(faces []*pageFace) []*pageFace {
	out := make([]*pageFace, len(faces))
	for i, f := range faces {
		c := *f
		out[i] = &c
	}
	return out
}

// drawSpread paints the faces back to front, each scaled about its
// anchor edge the way the terminal compositor does it.
func drawSpread(dc *gg.Context, faces []*pageFace, bounds book.Size, dir book.Direction, face font.Face) {
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(face)
	for _, f := range byDepth(faces) {
		drawFacePNG(dc, f, bounds, dir)
	}
}

func drawFacePNG(dc *gg.Context, f *pageFace, bounds book.Size, dir book.Direction) {
	p := place(f, bounds, dir)
	if math.Abs(p.scaleX) < minFaceScale {
		return
	}
	dc.Push()
	defer dc.Pop()
	dc.ScaleAbout(p.scaleX, 1, p.anchorX, p.y+p.height/2)

	// Pages darken as they turn away from the reader.
	shade := 0.7 + 0.3*math.Abs(p.scaleX)
	dc.SetRGB(shade, shade, shade*0.95)
	dc.DrawRectangle(p.x, p.y, p.width, p.height)
	dc.Fill()
	dc.SetLineWidth(1.0)
	dc.SetColor(color.Black)
	dc.DrawRectangle(p.x, p.y, p.width, p.height)
	dc.Stroke()
	if f.blank {
		return
	}

	dc.DrawRectangle(p.x, p.y, p.width, p.height)
	dc.Clip()
	cols := int((p.width - 2*charWidth) / charWidth)
	if cols < 1 {
		return
	}
	textX := p.x + charWidth
	textY := p.y + charHeight
	dc.DrawString(runewidth.Truncate(f.title, cols, "…"), textX, textY)
	lines := f.lines
	if f.scroll < len(lines) {
		lines = lines[f.scroll:]
	}
	for i, line := range lines {
		y := textY + float64(i+2)*charHeight
		if y > p.y+p.height-2*charHeight {
			break
		}
		dc.DrawString(runewidth.Truncate(line, cols, "…"), textX, y)
	}
	dc.DrawStringAnchored(f.name, p.x+p.width-charWidth, p.y+p.height-charHeight/2, 1, 0)
}

func (m *model) exportSpreadPNG(filename string) error {
	s := m.session
	bounds := s.shelf.bounds
	ttfFont, err := parseExportFont()
	if err != nil {
		return err
	}
	dc := gg.NewContext(int(bounds.Width), int(bounds.Height))
	drawSpread(dc, s.shelf.faces, bounds, s.book.Direction(), newFontFace(ttfFont))
	return dc.SavePNG(filename)
}

// exportTurnFrames renders the next forward turn as a numbered PNG
// sequence in dir and returns the number of frames written.
func (m *model) exportTurnFrames(ctx context.Context, dir string, frames int) (int, error) {
	s := m.session
	_, leaf := s.book.CurrentSpread()
	if leaf == nil {
		return 0, fmt.Errorf("nothing left to turn")
	}
	if frames < 1 {
		frames = defaultExportFrames
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}
	ttfFont, err := parseExportFont()
	if err != nil {
		return 0, err
	}

	bounds := s.shelf.bounds
	direction := s.book.Direction()
	base := snapshot(s.shelf.faces)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for k := 0; k <= frames; k++ {
		p := float64(k) / float64(frames)
		faces := snapshot(base)
		front, back := book.LeafPoses(p, direction, leaf.Index(), s.book.PagesCount())
		if i := leaf.FrontPage(); i < len(faces) {
			faces[i].pose = front
		}
		if i := leaf.BackPage(); i < len(faces) {
			faces[i].pose = back
		}
		filename := filepath.Join(dir, fmt.Sprintf("frame_%03d.png", k))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dc := gg.NewContext(int(bounds.Width), int(bounds.Height))
			drawSpread(dc, faces, bounds, direction, newFontFace(ttfFont))
			return dc.SavePNG(filename)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return frames + 1, nil
}

// exportVisualTXT writes the spread exactly as the terminal shows it.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	width := m.width
	if width < 1 {
		width = 80 // Default minimum width
	}
	height := m.viewHeight()

	s := m.session
	lines, _ := composite(s.shelf, s.book.Direction(), width, height)
	for _, line := range lines {
		fmt.Fprintln(file, line)
	}
	return nil
}
