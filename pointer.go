package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cellCenter converts a terminal cell to surface units.
func cellCenter(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * charWidth, (float64(y) + 0.5) * charHeight
}

func (t *pointerTracker) record(x float64, at time.Time) {
	t.samples = append(t.samples, sample{x: x, at: at})
	cutoff := at.Add(-velocityWindow)
	i := 0
	for i < len(t.samples)-2 && t.samples[i].at.Before(cutoff) {
		i++
	}
	t.samples = t.samples[i:]
}

// velocity is the horizontal release velocity in surface units per
// second over the recent samples.
func (t *pointerTracker) velocity() float64 {
	if len(t.samples) < 2 {
		return 0
	}
	first, last := t.samples[0], t.samples[len(t.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.x - first.x) / dt
}

// handleMouse feeds mouse input to the book's gesture handlers. Drags
// that move mostly vertically scroll the page under the pointer instead.
func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	s := m.session
	h := s.shelf.handlers
	if h.DragStart == nil {
		return nil
	}
	now := s.clock()
	x, y := cellCenter(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft:
		if m.pointer.pressed {
			return m.handleDrag(msg, x, y, now)
		}
		m.pointer = pointerTracker{pressed: true, lastX: msg.X, lastY: msg.Y}
		m.pointer.record(x, now)
		h.TouchStart(x, y)
		h.DragStart(x)
	case tea.MouseMotion:
		if m.pointer.pressed {
			return m.handleDrag(msg, x, y, now)
		}
	case tea.MouseRelease:
		if !m.pointer.pressed {
			return nil
		}
		m.pointer.record(x, now)
		h.DragEnd(m.pointer.velocity())
		m.pointer = pointerTracker{}
		return m.startTicking()
	case tea.MouseWheelUp:
		m.scrollAt(msg.X, msg.Y, -1)
	case tea.MouseWheelDown:
		m.scrollAt(msg.X, msg.Y, 1)
	}
	return nil
}

func (m *model) handleDrag(msg tea.MouseMsg, x, y float64, now time.Time) tea.Cmd {
	h := m.session.shelf.handlers
	dy := msg.Y - m.pointer.lastY
	m.pointer.lastX, m.pointer.lastY = msg.X, msg.Y
	m.pointer.record(x, now)
	if !h.TouchMove(x, y) {
		if dy != 0 {
			m.scrollAt(msg.X, msg.Y, -dy)
		}
		return nil
	}
	m.pointer.captured = true
	h.DragUpdate(x)
	return m.startTicking()
}

func (m *model) scrollAt(x, y, delta int) {
	s := m.session
	if i := faceAt(s.shelf, s.book.Direction(), m.width, m.viewHeight(), x, y); i >= 0 {
		s.shelf.scroll(i, delta)
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// startTicking starts the frame loop unless it is already running.
func (m *model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}
