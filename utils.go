package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// yankVisible copies the text of the visible pages to the clipboard.
func (m *model) yankVisible() error {
	s := m.session
	if len(s.visible) == 0 {
		return fmt.Errorf("no visible pages")
	}
	text := s.shelf.visibleText(s.visible)
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("visible pages are blank")
	}
	return clipboard.WriteAll(text)
}

func pageList(pages []int) string {
	if len(pages) == 0 {
		return "-"
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, "-")
}

// viewHeight is the number of rows left for the book.
func (m *model) viewHeight() int {
	height := m.height - 1 // Leave room for status line
	if m.showDebug && m.session.shelf.debug != nil {
		height -= debugHeight
	}
	if height < 1 {
		height = 1
	}
	return height
}
