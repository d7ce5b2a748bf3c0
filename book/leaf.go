package book

import (
	"math"
	"time"
)

// Turn is the direction a leaf moves in.
type Turn int

const (
	TurnNone Turn = iota
	TurnForward
	TurnBackward
)

func (t Turn) String() string {
	switch t {
	case TurnForward:
		return "forward"
	case TurnBackward:
		return "backward"
	}
	return "none"
}

// Face is a renderable page surface owned by the host.
type Face interface {
	SetSize(Size)
	SetPose(Pose)
}

type animation struct {
	task     *Task
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

type flipRequest struct {
	task     *Task
	velocity float64
}

// Leaf is one sheet of the book with a front and a back face. Its flip
// position is 0 when it lies on the starting side and 1 when fully
// turned.
type Leaf struct {
	index      int
	leafCount  int
	totalPages int
	dir        Direction

	front Face
	back  Face

	position float64
	running  *animation
	queue    []flipRequest
	// deferred is the task of the tracking call the throttle holds back.
	deferred *Task

	settleVelocity float64
	trackVelocity  float64
	throttle       *Throttle
	clock          func() time.Time
	onTurned       func(*Leaf, Turn)
}

// Index is the 0-based position of the leaf in the book.
func (l *Leaf) Index() int { return l.index }

// FrontPage and BackPage are the 0-based indices of the leaf's faces.
func (l *Leaf) FrontPage() int { return l.index * 2 }
func (l *Leaf) BackPage() int  { return l.index*2 + 1 }

// Position is the current flip position in [0,1].
func (l *Leaf) Position() float64 { return l.position }

func (l *Leaf) IsTurned() bool  { return l.position == 1 }
func (l *Leaf) IsTurning() bool { return l.position != 0 }
func (l *Leaf) IsCover() bool   { return l.index == 0 || l.index == l.leafCount-1 }

// Target returns the position the in-flight animation is heading to.
func (l *Leaf) Target() (float64, bool) {
	if l.running == nil {
		return 0, false
	}
	return l.running.task.target, true
}

// Animating reports whether an animation is running or queued.
func (l *Leaf) Animating() bool {
	return l.running != nil || len(l.queue) > 0
}

// FlipToPosition animates the leaf to target at the given angular
// velocity in degrees per second; zero selects the settle velocity.
//
// A request for the target the leaf will end up at (the last queued
// request, or the running one when nothing is queued) returns that
// request's task. Otherwise the request waits for the ones before it to
// finish, and resolves at once if the leaf is already at target by then.
func (l *Leaf) FlipToPosition(target, velocity float64) *Task {
	target = clamp01(target)
	if velocity <= 0 {
		velocity = l.settleVelocity
	}
	if t := l.pendingTask(target); t != nil {
		return t
	}
	if l.running == nil {
		if l.position == target {
			return settledTask(target)
		}
		t := newTask(target)
		l.start(t, velocity, l.clock())
		return t
	}
	t := newTask(target)
	l.queue = append(l.queue, flipRequest{task: t, velocity: velocity})
	return t
}

// EfficientFlipToPosition is FlipToPosition for continuous tracking.
// Calls within one tracking interval collapse to the latest; zero
// velocity selects the tracking velocity, fast enough to follow the
// pointer rather than ease.
//
// Callers whose requests collapse share one task. It completes when the
// flip that finally ran completes, or at once when the pending call is
// dropped by cancelTracking.
func (l *Leaf) EfficientFlipToPosition(target, velocity float64) *Task {
	if velocity <= 0 {
		velocity = l.trackVelocity
	}
	target = clamp01(target)
	if l.deferred == nil {
		l.deferred = newTask(target)
	} else {
		l.deferred.target = target
	}
	shared := l.deferred
	l.throttle.Call(l.clock(), func() {
		if l.deferred == shared {
			l.deferred = nil
		}
		l.FlipToPosition(target, velocity).Then(shared.resolve)
	})
	return shared
}

// cancelTracking drops a pending tracking call and completes its task.
func (l *Leaf) cancelTracking() {
	l.throttle.Cancel()
	if d := l.deferred; d != nil {
		l.deferred = nil
		d.resolve()
	}
}

// pendingTask returns the request a new one for target can join: the
// last request the leaf will carry out, if it has that target.
func (l *Leaf) pendingTask(target float64) *Task {
	if n := len(l.queue); n > 0 {
		if last := l.queue[n-1].task; last.target == target {
			return last
		}
		return nil
	}
	if l.running != nil && l.running.task.target == target {
		return l.running.task
	}
	return nil
}

func (l *Leaf) start(t *Task, velocity float64, now time.Time) {
	seconds := math.Abs(t.target-l.position) * 180 / velocity
	l.running = &animation{
		task:     t,
		from:     l.position,
		to:       t.target,
		start:    now,
		duration: time.Duration(math.Round(seconds * float64(time.Second))),
	}
}

// startNext starts the oldest queued request. Requests whose target the
// leaf already sits on resolve without animating.
func (l *Leaf) startNext(now time.Time) {
	for l.running == nil && len(l.queue) > 0 {
		r := l.queue[0]
		l.queue = l.queue[1:]
		if l.position == r.task.target {
			r.task.resolve()
			continue
		}
		l.start(r.task, r.velocity, now)
	}
}

// step advances the leaf by one frame and reports whether it needs
// another one.
func (l *Leaf) step(now time.Time) bool {
	l.throttle.Flush(now)
	a := l.running
	if a == nil {
		return l.throttle.Pending()
	}
	elapsed := now.Sub(a.start)
	if elapsed < 0 {
		return true
	}
	progress := 1.0
	if a.duration > 0 {
		progress = math.Min(float64(elapsed)/float64(a.duration), 1)
	}
	pos := clamp01(a.from + progress*(a.to-a.from))
	l.applyPoses(pos)
	l.setPosition(pos)
	if progress < 1 {
		return true
	}

	// The next request starts before continuations of this one run so
	// that anything they request queues behind it.
	l.running = nil
	l.startNext(now)
	a.task.resolve()
	return l.running != nil || l.throttle.Pending()
}

func (l *Leaf) applyPoses(p float64) {
	front, back := LeafPoses(p, l.dir, l.index, l.totalPages)
	if l.front != nil {
		l.front.SetPose(front)
	}
	if l.back != nil {
		l.back.SetPose(back)
	}
}

func (l *Leaf) setPosition(p float64) {
	l.position = clamp01(p)
	if l.onTurned == nil {
		return
	}
	switch l.position {
	case 1:
		l.onTurned(l, TurnForward)
	case 0:
		l.onTurned(l, TurnBackward)
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
