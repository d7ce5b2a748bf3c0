package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"folio/book"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	writeFile(t, path, "Cover\r\nby someone\n---\nChapter one\n\nIt begins.\fChapter two\n  ---  \n\n---\nEnd\n")

	pages, err := loadPageFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"Cover", "by someone"},
		{"Chapter one", "", "It begins."},
		{"Chapter two"},
		{"End"},
	}
	if !reflect.DeepEqual(pages, want) {
		t.Errorf("pages = %q, want %q", pages, want)
	}
}

func TestLoadPageDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "02.txt"), "Second\n")
	writeFile(t, filepath.Join(dir, "01.txt"), "First\nline two\n")
	writeFile(t, filepath.Join(dir, ".hidden"), "skip me")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	pages, err := loadPageDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"First", "line two"}, {"Second"}}
	if !reflect.DeepEqual(pages, want) {
		t.Errorf("pages = %q, want %q", pages, want)
	}
}

func TestResolveShelfPadsOddBooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	writeFile(t, path, "One\n---\nTwo\n---\nThree\n")

	s, err := resolveShelf(path, book.Size{Width: 640, Height: 368})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.faces) != 4 {
		t.Fatalf("faces = %d, want 4", len(s.faces))
	}
	if !s.faces[3].blank || s.faces[2].blank {
		t.Error("only the padding page should be blank")
	}
	for i, f := range s.faces {
		if f.index != i {
			t.Errorf("face %d has index %d", i, f.index)
		}
	}
	if s.Bounds() != (book.Size{Width: 640, Height: 368}) {
		t.Errorf("Bounds() = %v", s.Bounds())
	}
}

func TestResolveShelfMissing(t *testing.T) {
	s, err := resolveShelf(filepath.Join(t.TempDir(), "nope"), book.Size{})
	if s != nil || err != nil {
		t.Errorf("resolveShelf(missing) = %v, %v; want nil, nil", s, err)
	}
}

func TestPageSemantics(t *testing.T) {
	s := &shelf{faces: []*pageFace{
		{index: 0, lines: []string{"", "  Title line  ", "body"}},
		{index: 1, blank: true},
	}}
	meta, ok := s.pageSemantics(0)
	if !ok || meta.Name != "1" || meta.Title != "Title line" {
		t.Errorf("pageSemantics(0) = %+v, %v", meta, ok)
	}
	if _, ok := s.pageSemantics(1); ok {
		t.Error("blank pages have no semantics")
	}
	if _, ok := s.pageSemantics(2); ok {
		t.Error("out of range pages have no semantics")
	}
}

func TestScrollClamps(t *testing.T) {
	s := &shelf{faces: []*pageFace{{lines: []string{"a", "b", "c"}}}}
	s.scroll(0, 10)
	if got := s.faces[0].scroll; got != 2 {
		t.Errorf("scroll past end = %d, want 2", got)
	}
	s.scroll(0, -10)
	if got := s.faces[0].scroll; got != 0 {
		t.Errorf("scroll past start = %d, want 0", got)
	}
	s.scroll(5, 1)
}

func TestVisibleText(t *testing.T) {
	s := &shelf{faces: []*pageFace{
		{lines: []string{"one"}},
		{lines: []string{"two", "more"}},
		{blank: true},
	}}
	if got, want := s.visibleText([]int{2, 3, 9}), "two\nmore"; got != want {
		t.Errorf("visibleText = %q, want %q", got, want)
	}
	if got, want := s.visibleText([]int{1, 2}), "one\n\ntwo\nmore"; got != want {
		t.Errorf("visibleText = %q, want %q", got, want)
	}
}
