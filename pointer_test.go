package main

import (
	"math"
	"testing"
	"time"
)

func TestPointerVelocity(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var p pointerTracker
	if v := p.velocity(); v != 0 {
		t.Errorf("empty tracker velocity = %v", v)
	}

	p.record(500, t0)
	p.record(400, t0.Add(50*time.Millisecond))
	p.record(300, t0.Add(100*time.Millisecond))
	if v := p.velocity(); math.Abs(v+2000) > 1e-6 {
		t.Errorf("velocity = %v, want -2000", v)
	}

	// Old samples fall out of the window.
	p.record(300, t0.Add(400*time.Millisecond))
	if len(p.samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(p.samples))
	}
	if v := p.velocity(); v != 0 {
		t.Errorf("velocity after a pause = %v, want 0", v)
	}
}

func TestPointerVelocitySameInstant(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var p pointerTracker
	p.record(10, t0)
	p.record(90, t0)
	if v := p.velocity(); v != 0 {
		t.Errorf("velocity = %v, want 0", v)
	}
}

func TestCellCenter(t *testing.T) {
	x, y := cellCenter(2, 3)
	if x != 20 || y != 56 {
		t.Errorf("cellCenter(2, 3) = %v, %v", x, y)
	}
}
