package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"folio/book"
)

// pageFace is one page of the loaded book and the book.Face the engine
// poses.
type pageFace struct {
	index  int
	name   string
	title  string
	lines  []string
	scroll int
	blank  bool
	size   book.Size
	pose   book.Pose
}

func (f *pageFace) SetSize(s book.Size) { f.size = s }
func (f *pageFace) SetPose(p book.Pose) { f.pose = p }

// shelf is the container a book is rendered into.
type shelf struct {
	bounds   book.Size
	faces    []*pageFace
	handlers book.PointerHandlers
	debug    *book.DebugState
}

func (s *shelf) Bounds() book.Size { return s.bounds }

func (s *shelf) Faces() []book.Face {
	faces := make([]book.Face, len(s.faces))
	for i, f := range s.faces {
		faces[i] = f
	}
	return faces
}

func (s *shelf) BindPointer(h book.PointerHandlers) { s.handlers = h }

func (s *shelf) StampMeta(i int, meta book.PageSemantics) {
	if i >= 0 && i < len(s.faces) {
		s.faces[i].name = meta.Name
		s.faces[i].title = meta.Title
	}
}

func (s *shelf) ShowDebug(d book.DebugState) { s.debug = &d }

// resolveShelf loads the book at path. A path that does not exist
// resolves to no shelf at all; the engine reports it when rendering.
func resolveShelf(path string, bounds book.Size) (*shelf, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pages [][]string
	if info.IsDir() {
		pages, err = loadPageDir(path)
	} else {
		pages, err = loadPageFile(path)
	}
	if err != nil {
		return nil, err
	}

	s := &shelf{bounds: bounds}
	for i, lines := range pages {
		s.faces = append(s.faces, &pageFace{index: i, lines: lines})
	}
	// Every leaf needs a back.
	if len(s.faces)%2 == 1 {
		s.faces = append(s.faces, &pageFace{index: len(s.faces), blank: true})
	}
	return s, nil
}

// loadPageDir reads every regular file in dir as one page, in name order.
func loadPageDir(dir string) ([][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var pages [][]string
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}
		pages = append(pages, splitLines(string(data)))
	}
	return pages, nil
}

// loadPageFile splits a text file into pages on form feeds or lines
// holding only "---".
func loadPageFile(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var pages [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			pages = append(pages, current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		for {
			before, after, found := strings.Cut(line, "\f")
			if !found {
				break
			}
			if before != "" {
				current = append(current, before)
			}
			flush()
			line = after
		}
		if line != "" || len(current) > 0 {
			current = append(current, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return pages, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// pageSemantics names pages by number and titles them by their first
// non-empty line.
func (s *shelf) pageSemantics(i int) (book.PageSemantics, bool) {
	if i < 0 || i >= len(s.faces) || s.faces[i].blank {
		return book.PageSemantics{}, false
	}
	meta := book.PageSemantics{Name: fmt.Sprintf("%d", i+1)}
	for _, line := range s.faces[i].lines {
		if t := strings.TrimSpace(line); t != "" {
			meta.Title = t
			break
		}
	}
	return meta, true
}

// scroll moves the text of page i by delta lines.
func (s *shelf) scroll(i, delta int) {
	if i < 0 || i >= len(s.faces) {
		return
	}
	f := s.faces[i]
	f.scroll += delta
	if last := len(f.lines) - 1; f.scroll > last {
		f.scroll = last
	}
	if f.scroll < 0 {
		f.scroll = 0
	}
}

// visibleText joins the text of the given 1-based page numbers.
func (s *shelf) visibleText(pages []int) string {
	var parts []string
	for _, n := range pages {
		if n < 1 || n > len(s.faces) || s.faces[n-1].blank {
			continue
		}
		parts = append(parts, strings.Join(s.faces[n-1].lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
