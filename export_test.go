package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/book"
)

func TestExportSpreadPNG(t *testing.T) {
	s, _ := newTestSession(t, book.LTR)
	m := newModel(s, defaultConfig(), testCols, testRows+1)

	filename := filepath.Join(t.TempDir(), "spread.png")
	if err := m.exportSpreadPNG(filename); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != testCols*charWidth || b.Dy() != testRows*charHeight {
		t.Errorf("image is %dx%d", b.Dx(), b.Dy())
	}
}

func TestExportTurnFrames(t *testing.T) {
	s, _ := newTestSession(t, book.LTR)
	m := newModel(s, defaultConfig(), testCols, testRows+1)

	dir := filepath.Join(t.TempDir(), "turn")
	n, err := m.exportTurnFrames(context.Background(), dir, 4)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("frames = %d, want 5", n)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 || entries[0].Name() != "frame_000.png" || entries[4].Name() != "frame_004.png" {
		t.Errorf("unexpected files: %v", entries)
	}
	if s.shelf.faces[0].pose != book.RestingFrontPose(book.LTR, 0, 4) {
		t.Error("exporting frames moved the live page")
	}
}

func TestExportTurnFramesAtEnd(t *testing.T) {
	s, clock := newTestSession(t, book.LTR)
	for s.book.Next() != nil {
		settle(s, clock)
	}
	m := newModel(s, defaultConfig(), testCols, testRows+1)
	if _, err := m.exportTurnFrames(context.Background(), t.TempDir(), 4); err == nil {
		t.Error("expected an error with every leaf turned")
	}
}

func TestExportVisualTXT(t *testing.T) {
	s, _ := newTestSession(t, book.LTR)
	m := newModel(s, defaultConfig(), testCols, testRows+1)

	filename := filepath.Join(t.TempDir(), "spread.txt")
	if err := m.exportVisualTXT(filename); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != testRows {
		t.Errorf("lines = %d, want %d", len(lines), testRows)
	}
	if !strings.Contains(string(data), "One") {
		t.Error("export is missing the cover")
	}
}
