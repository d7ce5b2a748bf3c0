package main

import "time"

type Mode int

const (
	ModeReading Mode = iota
	ModeJumpInput
)

const (
	// Pixel size of a terminal cell, used to map the terminal to the
	// surface units the book lays itself out in.
	charWidth  = 8.0
	charHeight = 16.0

	frameInterval  = time.Second / 60
	velocityWindow = 100 * time.Millisecond

	defaultExportFrames = 24
	minFaceScale        = 1e-3
)
