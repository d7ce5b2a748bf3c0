package book

// Task is the completion of a flip request. Several callers may hold the
// same Task when their requests were coalesced.
type Task struct {
	target float64
	done   chan struct{}
	then   []func()
}

func newTask(target float64) *Task {
	return &Task{target: target, done: make(chan struct{})}
}

// settledTask is returned for requests that had nothing to do.
func settledTask(target float64) *Task {
	t := newTask(target)
	close(t.done)
	return t
}

// Target is the flip position the task animates to.
func (t *Task) Target() float64 {
	return t.target
}

// Done is closed once the leaf has reached the target.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Settled reports whether the task has completed.
func (t *Task) Settled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Then registers fn to run on the frame loop when the task completes.
// If it already has, fn runs immediately.
func (t *Task) Then(fn func()) {
	if t.Settled() {
		fn()
		return
	}
	t.then = append(t.then, fn)
}

func (t *Task) resolve() {
	if t.Settled() {
		return
	}
	close(t.done)
	then := t.then
	t.then = nil
	for _, fn := range then {
		fn()
	}
}
