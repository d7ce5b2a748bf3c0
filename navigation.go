package main

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"folio/book"
)

// handleTurn asks the book to turn a page forward or back. The keys
// follow the screen, so in a right-to-left book "right" turns back.
func (m *model) handleTurn(key string) tea.Cmd {
	b := m.session.book
	forward := key == "l" || key == "right" || key == " " || key == "pgdown"
	if b.Direction() == book.RTL && (key == "left" || key == "right") {
		forward = !forward
	}
	var ok bool
	if forward {
		ok = b.Next() != nil
	} else {
		ok = b.Prev() != nil
	}
	if !ok {
		return nil
	}
	return m.startTicking()
}

func (m *model) handleJumpInput(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeReading
		m.jumpText = ""
	case tea.KeyEnter:
		m.mode = ModeReading
		text := m.jumpText
		m.jumpText = ""
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > m.session.book.PagesCount() {
			m.errorMessage = fmt.Sprintf("No page %q", text)
			return
		}
		m.session.book.JumpToPage(n - 1)
	case tea.KeyBackspace:
		if len(m.jumpText) > 0 {
			m.jumpText = m.jumpText[:len(m.jumpText)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' {
				m.jumpText += string(r)
			}
		}
	}
}
