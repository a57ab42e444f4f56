package animated

import "time"

// DefaultFrameInterval is the step used by FrameLoop.Step (60 frames per second).
const DefaultFrameInterval = time.Second / 60

// FrameID identifies a pending frame request.
type FrameID uint64

// FrameSource supplies per-tick callbacks to drivers. The host owns it:
// the graph only requests and cancels frames.
type FrameSource interface {
	// Now returns the current frame timestamp.
	Now() time.Duration
	// RequestFrame schedules fn for the next tick.
	RequestFrame(fn func(now time.Duration)) FrameID
	// CancelFrame drops a pending request. Unknown IDs are ignored.
	CancelFrame(id FrameID)
}

// FrameLoop is a FrameSource advanced explicitly by its owner, typically
// once per host frame. Callbacks requested while a step runs are deferred
// to the following step.
//
// There is no global animation thread: users call Advance themselves.
type FrameLoop struct {
	now     time.Duration
	nextID  FrameID
	order   []FrameID
	pending map[FrameID]func(time.Duration)
}

// NewFrameLoop creates a loop at time zero with no pending requests.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{pending: make(map[FrameID]func(time.Duration))}
}

// Now returns the loop's current timestamp.
func (l *FrameLoop) Now() time.Duration {
	return l.now
}

// RequestFrame schedules fn for the next Advance.
func (l *FrameLoop) RequestFrame(fn func(now time.Duration)) FrameID {
	l.nextID++
	id := l.nextID
	l.pending[id] = fn
	l.order = append(l.order, id)
	return id
}

// CancelFrame drops a pending request, including one due in the step
// currently running.
func (l *FrameLoop) CancelFrame(id FrameID) {
	delete(l.pending, id)
}

// Pending returns the number of outstanding requests.
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}

// Advance moves time forward by dt and runs every request made before the
// call, in request order. It returns the number of callbacks run.
func (l *FrameLoop) Advance(dt time.Duration) int {
	l.now += dt
	batch := l.order
	l.order = nil
	ran := 0
	for _, id := range batch {
		fn, ok := l.pending[id]
		if !ok {
			continue
		}
		delete(l.pending, id)
		fn(l.now)
		ran++
	}
	return ran
}

// Step advances by DefaultFrameInterval.
func (l *FrameLoop) Step() int {
	return l.Advance(DefaultFrameInterval)
}

// RunUntilIdle steps until no requests remain or maxFrames steps have run.
// It returns the number of steps taken.
func (l *FrameLoop) RunUntilIdle(maxFrames int) int {
	steps := 0
	for steps < maxFrames && len(l.pending) > 0 {
		l.Step()
		steps++
	}
	return steps
}

// frames is the process-wide default frame source used by drivers whose
// config does not carry one.
var frames FrameSource = NewFrameLoop()

// SetFrameSource replaces the default frame source. Returns the previous
// source so callers can restore it during cleanup.
func SetFrameSource(fs FrameSource) FrameSource {
	prev := frames
	frames = fs
	return prev
}

// Frames returns the default frame source.
func Frames() FrameSource { return frames }

func frameSourceOr(fs FrameSource) FrameSource {
	if fs != nil {
		return fs
	}
	return frames
}
