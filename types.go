package main

import (
	"time"

	"folio/book"
)

type model struct {
	width          int
	height         int
	session        *session
	config         *Config
	mode           Mode
	help           bool
	showDebug      bool
	ticking        bool
	jumpText       string
	pointer        pointerTracker
	errorMessage   string
	successMessage string
}

// session is the engine-facing state. The book calls back into it, so it
// lives behind a pointer while the model is copied by bubbletea.
type session struct {
	path    string
	book    *book.Book
	shelf   *shelf
	visible []int
	notice  string
	clock   func() time.Time
}

type frameMsg time.Time

type sample struct {
	x  float64
	at time.Time
}

type pointerTracker struct {
	pressed  bool
	lastX    int
	lastY    int
	captured bool
	samples  []sample
}
