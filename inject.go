package animated

import "time"

// Inject queues synthetic events for delivery through Handle, one per
// frame of fs (the default frame source when nil). Events queued while a
// delivery is pending are appended to it.
func (e *Event) Inject(fs FrameSource, events ...map[string]any) {
	e.queue = append(e.queue, events...)
	if e.scheduled || len(e.queue) == 0 {
		return
	}
	e.scheduled = true
	fs = frameSourceOr(fs)
	var deliver func(time.Duration)
	deliver = func(time.Duration) {
		ev := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.Handle(ev)
		if len(e.queue) == 0 {
			e.scheduled = false
			return
		}
		fs.RequestFrame(deliver)
	}
	fs.RequestFrame(deliver)
}

// InjectDrag queues a drag gesture from `from` to `to` spread over frames
// events (at least 2). Each event carries the pan gesture fields dx, dy
// (relative to from) and moveX, moveY (absolute).
func (e *Event) InjectDrag(fs FrameSource, from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	events := make([]map[string]any, frames)
	for i := range frames {
		t := float64(i) / float64(frames-1)
		x := from.X + (to.X-from.X)*t
		y := from.Y + (to.Y-from.Y)*t
		events[i] = map[string]any{
			"dx":    x - from.X,
			"dy":    y - from.Y,
			"moveX": x,
			"moveY": y,
		}
	}
	e.Inject(fs, events...)
}

// Pending returns the number of injected events not yet delivered.
func (e *Event) Pending() int { return len(e.queue) }
