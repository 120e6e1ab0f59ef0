package scrollview

// InjectBegan queues a touch-down at the given screen coordinates. Queued
// events are consumed one per Poll, in order, replacing real input for that
// tick.
func (d *TouchDispatcher) InjectBegan(id TouchID, x, y float64) {
	d.inject(TouchBegan, id, x, y)
}

// InjectMoved queues a move for a touch that is down.
func (d *TouchDispatcher) InjectMoved(id TouchID, x, y float64) {
	d.inject(TouchMoved, id, x, y)
}

// InjectEnded queues a touch-up.
func (d *TouchDispatcher) InjectEnded(id TouchID, x, y float64) {
	d.inject(TouchEnded, id, x, y)
}

// InjectCancelled queues a cancellation.
func (d *TouchDispatcher) InjectCancelled(id TouchID, x, y float64) {
	d.inject(TouchCancelled, id, x, y)
}

func (d *TouchDispatcher) inject(phase TouchPhase, id TouchID, x, y float64) {
	d.injectQueue = append(d.injectQueue, TouchEvent{Phase: phase, Touch: Touch{ID: id, X: x, Y: y}})
}

// InjectTap queues a down followed by an up at the same point. Consumes two
// ticks.
func (d *TouchDispatcher) InjectTap(id TouchID, x, y float64) {
	d.InjectBegan(id, x, y)
	d.InjectEnded(id, x, y)
}

// InjectDrag queues a full drag: down at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate ticks, and up at (toX, toY).
// The total sequence consumes frames ticks. Minimum frames is 2.
func (d *TouchDispatcher) InjectDrag(id TouchID, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectBegan(id, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		d.InjectMoved(id, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	d.InjectEnded(id, toX, toY)
}

// InjectPinch queues a two-finger pinch around (cx, cy): both fingers go down
// at distance fromDist apart on a horizontal line, move alternately to
// toDist over steps moves each, then lift. Finger IDs are id and id+1.
func (d *TouchDispatcher) InjectPinch(id TouchID, cx, cy, fromDist, toDist float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	a, b := id, id+1
	half := fromDist / 2
	d.InjectBegan(a, cx-half, cy)
	d.InjectBegan(b, cx+half, cy)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		h := (fromDist + (toDist-fromDist)*t) / 2
		d.InjectMoved(a, cx-h, cy)
		d.InjectMoved(b, cx+h, cy)
	}
	h := toDist / 2
	d.InjectEnded(b, cx+h, cy)
	d.InjectEnded(a, cx-h, cy)
}

// Pending returns the number of queued injected events.
func (d *TouchDispatcher) Pending() int {
	return len(d.injectQueue)
}

// processInjected pops one queued event and dispatches it.
// Returns true if an event was consumed (real input should be skipped).
func (d *TouchDispatcher) processInjected() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	ev := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]
	d.Dispatch(ev)
	return true
}
