package scrollview

import "testing"

// recordingListener records every callback and claims touches when accept
// is set.
type recordingListener struct {
	accept bool
	events []TouchEvent
}

func (l *recordingListener) TouchBegan(t Touch) bool {
	l.events = append(l.events, TouchEvent{Phase: TouchBegan, Touch: t})
	return l.accept
}

func (l *recordingListener) TouchMoved(t Touch) {
	l.events = append(l.events, TouchEvent{Phase: TouchMoved, Touch: t})
}

func (l *recordingListener) TouchEnded(t Touch) {
	l.events = append(l.events, TouchEvent{Phase: TouchEnded, Touch: t})
}

func (l *recordingListener) TouchCancelled(t Touch) {
	l.events = append(l.events, TouchEvent{Phase: TouchCancelled, Touch: t})
}

func (l *recordingListener) phases() []TouchPhase {
	out := make([]TouchPhase, len(l.events))
	for i, e := range l.events {
		out[i] = e.Phase
	}
	return out
}

func equalPhases(a, b []TouchPhase) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestDispatcher() (*Node, *TouchDispatcher) {
	root := NewContainer("root")
	return root, NewTouchDispatcher(root)
}

func attachedNode(root *Node, name string) *Node {
	n := NewContainer(name)
	root.AddChild(n)
	return n
}

func TestDispatchLastListenerFirst(t *testing.T) {
	root, d := newTestDispatcher()
	bottom := &recordingListener{accept: true}
	top := &recordingListener{accept: true}
	d.AddListener(attachedNode(root, "bottom"), bottom)
	d.AddListener(attachedNode(root, "top"), top)

	d.Dispatch(TouchEvent{Phase: TouchBegan, Touch: Touch{ID: 1, X: 5, Y: 5}})
	d.Dispatch(TouchEvent{Phase: TouchMoved, Touch: Touch{ID: 1, X: 6, Y: 5}})
	d.Dispatch(TouchEvent{Phase: TouchEnded, Touch: Touch{ID: 1, X: 6, Y: 5}})

	if len(bottom.events) != 0 {
		t.Errorf("bottom saw %v", bottom.phases())
	}
	want := []TouchPhase{TouchBegan, TouchMoved, TouchEnded}
	if !equalPhases(top.phases(), want) {
		t.Errorf("top saw %v, want %v", top.phases(), want)
	}
}

func TestDispatchFallsThroughWhenRefused(t *testing.T) {
	root, d := newTestDispatcher()
	bottom := &recordingListener{accept: true}
	top := &recordingListener{accept: false}
	d.AddListener(attachedNode(root, "bottom"), bottom)
	d.AddListener(attachedNode(root, "top"), top)

	d.Dispatch(TouchEvent{Phase: TouchBegan, Touch: Touch{ID: 1}})
	d.Dispatch(TouchEvent{Phase: TouchMoved, Touch: Touch{ID: 1, X: 3}})

	if !equalPhases(top.phases(), []TouchPhase{TouchBegan}) {
		t.Errorf("top saw %v", top.phases())
	}
	if !equalPhases(bottom.phases(), []TouchPhase{TouchBegan, TouchMoved}) {
		t.Errorf("bottom saw %v", bottom.phases())
	}
}

func TestDispatchSkipsHiddenAndDetached(t *testing.T) {
	root, d := newTestDispatcher()
	hidden := &recordingListener{accept: true}
	detached := &recordingListener{accept: true}
	hn := attachedNode(root, "hidden")
	hn.Visible = false
	d.AddListener(hn, hidden)
	d.AddListener(NewContainer("detached"), detached)

	d.Dispatch(TouchEvent{Phase: TouchBegan, Touch: Touch{ID: 1}})
	if len(hidden.events) != 0 || len(detached.events) != 0 {
		t.Errorf("hidden=%v detached=%v", hidden.phases(), detached.phases())
	}
}

func TestUnclaimedMovesAreDropped(t *testing.T) {
	root, d := newTestDispatcher()
	l := &recordingListener{accept: true}
	d.AddListener(attachedNode(root, "n"), l)
	d.Dispatch(TouchEvent{Phase: TouchMoved, Touch: Touch{ID: 9}})
	d.Dispatch(TouchEvent{Phase: TouchEnded, Touch: Touch{ID: 9}})
	if len(l.events) != 0 {
		t.Errorf("unclaimed touch delivered: %v", l.phases())
	}
}

func TestListenerHandleRemove(t *testing.T) {
	root, d := newTestDispatcher()
	l := &recordingListener{accept: true}
	h := d.AddListener(attachedNode(root, "n"), l)
	d.Dispatch(TouchEvent{Phase: TouchBegan, Touch: Touch{ID: 1}})
	h.Remove()
	h.Remove()
	d.Dispatch(TouchEvent{Phase: TouchMoved, Touch: Touch{ID: 1, X: 2}})
	d.Dispatch(TouchEvent{Phase: TouchBegan, Touch: Touch{ID: 2}})

	if d.NumListeners() != 0 {
		t.Errorf("NumListeners = %d", d.NumListeners())
	}
	if !equalPhases(l.phases(), []TouchPhase{TouchBegan}) {
		t.Errorf("removed listener saw %v", l.phases())
	}
}

func TestCancelAll(t *testing.T) {
	root, d := newTestDispatcher()
	l := &recordingListener{accept: true}
	d.AddListener(attachedNode(root, "n"), l)
	d.Dispatch(TouchEvent{Phase: TouchBegan, Touch: Touch{ID: 1, X: 4, Y: 8}})
	d.Dispatch(TouchEvent{Phase: TouchBegan, Touch: Touch{ID: 2}})
	d.CancelAll()

	cancelled := 0
	for _, e := range l.events {
		if e.Phase == TouchCancelled {
			cancelled++
			if e.Touch.ID == 1 && (e.Touch.X != 4 || e.Touch.Y != 8) {
				t.Errorf("cancel position = (%v, %v), want last known (4, 8)", e.Touch.X, e.Touch.Y)
			}
		}
	}
	if cancelled != 2 {
		t.Errorf("cancelled = %d, want 2", cancelled)
	}
	d.CancelAll()
	if len(l.events) != 4 {
		t.Errorf("second CancelAll delivered more events: %d", len(l.events))
	}
}

func TestTouchPhaseString(t *testing.T) {
	tests := map[TouchPhase]string{
		TouchBegan:     "began",
		TouchMoved:     "moved",
		TouchEnded:     "ended",
		TouchCancelled: "cancelled",
	}
	for p, want := range tests {
		if p.String() != want {
			t.Errorf("%d.String() = %q, want %q", p, p.String(), want)
		}
	}
}
