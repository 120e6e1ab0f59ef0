package scrollview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TouchID identifies a touch for its whole lifetime. ID 0 is the mouse when
// mouse emulation is on; real touches use their Ebitengine ID plus one.
type TouchID int

// MouseTouchID is the TouchID used for the emulated mouse touch.
const MouseTouchID TouchID = 0

// TouchPhase is the lifecycle stage of a touch event.
type TouchPhase uint8

const (
	TouchBegan     TouchPhase = iota // finger down
	TouchMoved                       // finger moved while down
	TouchEnded                       // finger lifted
	TouchCancelled                   // touch aborted by the system (focus loss, listener removal)
)

// String returns the phase name.
func (p TouchPhase) String() string {
	switch p {
	case TouchBegan:
		return "began"
	case TouchMoved:
		return "moved"
	case TouchEnded:
		return "ended"
	case TouchCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Touch is a single touch point in screen coordinates.
type Touch struct {
	ID   TouchID
	X, Y float64
}

// Location returns the touch position as a vector.
func (t Touch) Location() Vec2 {
	return Vec2{t.X, t.Y}
}

// TouchEvent pairs a touch with the phase it is in.
type TouchEvent struct {
	Phase TouchPhase
	Touch Touch
}

// TouchListener receives touches one at a time. Returning true from
// TouchBegan claims the touch: its later phases are delivered only to that
// listener and no other listener sees it.
type TouchListener interface {
	TouchBegan(t Touch) bool
	TouchMoved(t Touch)
	TouchEnded(t Touch)
	TouchCancelled(t Touch)
}

type listenerEntry struct {
	node     *Node
	listener TouchListener
	removed  bool
}

// TouchListenerHandle allows removing a registered listener.
type TouchListenerHandle struct {
	entry *listenerEntry
	d     *TouchDispatcher
}

// Remove unregisters the listener. Touches it owned are dropped without
// further callbacks. Safe to call more than once.
func (h *TouchListenerHandle) Remove() {
	if h == nil || h.entry == nil || h.entry.removed {
		return
	}
	h.entry.removed = true
	h.d.compact()
}

// TouchDispatcher turns polled or injected input into touch phases and
// routes them to listeners.
type TouchDispatcher struct {
	root      *Node
	listeners []*listenerEntry
	owners    map[TouchID]*listenerEntry
	positions map[TouchID]Vec2

	// MouseEmulation reports the left mouse button as MouseTouchID.
	MouseEmulation bool

	injectQueue []TouchEvent
	idBuf       []ebiten.TouchID
}

// NewTouchDispatcher creates a dispatcher. Listeners bound to hidden nodes or
// to nodes outside the tree rooted at root are not offered new touches; a nil
// root disables the attachment check.
func NewTouchDispatcher(root *Node) *TouchDispatcher {
	return &TouchDispatcher{
		root:           root,
		owners:         make(map[TouchID]*listenerEntry),
		positions:      make(map[TouchID]Vec2),
		MouseEmulation: true,
	}
}

// AddListener registers l on behalf of node. Later listeners are offered new
// touches first.
func (d *TouchDispatcher) AddListener(node *Node, l TouchListener) *TouchListenerHandle {
	e := &listenerEntry{node: node, listener: l}
	d.listeners = append(d.listeners, e)
	return &TouchListenerHandle{entry: e, d: d}
}

// NumListeners returns the number of registered listeners.
func (d *TouchDispatcher) NumListeners() int {
	return len(d.listeners)
}

func (d *TouchDispatcher) compact() {
	live := d.listeners[:0]
	for _, e := range d.listeners {
		if !e.removed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(d.listeners); i++ {
		d.listeners[i] = nil
	}
	d.listeners = live
	for id, e := range d.owners {
		if e.removed {
			delete(d.owners, id)
		}
	}
}

// Dispatch routes a single event immediately.
func (d *TouchDispatcher) Dispatch(ev TouchEvent) {
	t := ev.Touch
	switch ev.Phase {
	case TouchBegan:
		if _, owned := d.owners[t.ID]; owned {
			return
		}
		d.positions[t.ID] = t.Location()
		for i := len(d.listeners) - 1; i >= 0; i-- {
			e := d.listeners[i]
			if e.removed {
				continue
			}
			if e.node != nil {
				if d.root != nil && !e.node.isAttached(d.root) {
					continue
				}
				if !e.node.isVisibleInTree() {
					continue
				}
			}
			if e.listener.TouchBegan(t) {
				d.owners[t.ID] = e
				return
			}
		}
	case TouchMoved:
		d.positions[t.ID] = t.Location()
		if e := d.owners[t.ID]; e != nil && !e.removed {
			e.listener.TouchMoved(t)
		}
	case TouchEnded, TouchCancelled:
		delete(d.positions, t.ID)
		e := d.owners[t.ID]
		delete(d.owners, t.ID)
		if e == nil || e.removed {
			return
		}
		if ev.Phase == TouchEnded {
			e.listener.TouchEnded(t)
		} else {
			e.listener.TouchCancelled(t)
		}
	}
}

// CancelAll sends TouchCancelled for every claimed touch.
func (d *TouchDispatcher) CancelAll() {
	for id := range d.owners {
		p := d.positions[id]
		d.Dispatch(TouchEvent{Phase: TouchCancelled, Touch: Touch{ID: id, X: p.X, Y: p.Y}})
	}
}

// Poll reads Ebitengine touch and mouse state for this tick and dispatches
// the resulting events. Injected events, when queued, replace real input for
// the tick: one injected event is consumed per call.
func (d *TouchDispatcher) Poll() {
	if d.processInjected() {
		return
	}

	d.idBuf = inpututil.AppendJustPressedTouchIDs(d.idBuf[:0])
	for _, tid := range d.idBuf {
		x, y := ebiten.TouchPosition(tid)
		d.Dispatch(TouchEvent{Phase: TouchBegan, Touch: Touch{ID: TouchID(tid) + 1, X: float64(x), Y: float64(y)}})
	}

	d.idBuf = ebiten.AppendTouchIDs(d.idBuf[:0])
	for _, tid := range d.idBuf {
		id := TouchID(tid) + 1
		x, y := ebiten.TouchPosition(tid)
		p := Vec2{float64(x), float64(y)}
		if last, ok := d.positions[id]; ok && last != p {
			d.Dispatch(TouchEvent{Phase: TouchMoved, Touch: Touch{ID: id, X: p.X, Y: p.Y}})
		}
	}

	d.idBuf = inpututil.AppendJustReleasedTouchIDs(d.idBuf[:0])
	for _, tid := range d.idBuf {
		x, y := inpututil.TouchPositionInPreviousTick(tid)
		d.Dispatch(TouchEvent{Phase: TouchEnded, Touch: Touch{ID: TouchID(tid) + 1, X: float64(x), Y: float64(y)}})
	}

	if d.MouseEmulation {
		d.pollMouse()
	}
}

func (d *TouchDispatcher) pollMouse() {
	mx, my := ebiten.CursorPosition()
	t := Touch{ID: MouseTouchID, X: float64(mx), Y: float64(my)}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		d.Dispatch(TouchEvent{Phase: TouchBegan, Touch: t})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if _, ok := d.positions[MouseTouchID]; ok {
			d.Dispatch(TouchEvent{Phase: TouchEnded, Touch: t})
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if last, ok := d.positions[MouseTouchID]; ok && last != t.Location() {
			d.Dispatch(TouchEvent{Phase: TouchMoved, Touch: t})
		}
	}
}
