package scrollview

import "math"

// GestureState is the phase of the touch gesture a ScrollView is tracking.
type GestureState uint8

const (
	// GestureIdle: no fingers down and no inertia.
	GestureIdle GestureState = iota
	// GestureTouching: one finger down, drag armed, slop not yet crossed.
	GestureTouching
	// GestureDragging: one finger down and moving the content.
	GestureDragging
	// GesturePinching: a second finger joined before the first started
	// dragging. Lasts until every finger is lifted.
	GesturePinching
	// GestureDecelerating: fingers lifted after a drag, inertia running.
	GestureDecelerating
)

// String returns the state name.
func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureTouching:
		return "touching"
	case GestureDragging:
		return "dragging"
	case GesturePinching:
		return "pinching"
	case GestureDecelerating:
		return "decelerating"
	}
	return "unknown"
}

// State returns the current gesture state.
func (v *ScrollView) State() GestureState {
	return v.state
}

// Dragging reports whether a single-finger drag is armed or in progress.
func (v *ScrollView) Dragging() bool {
	return v.state == GestureTouching || v.state == GestureDragging
}

// TouchMoved reports whether the current drag has crossed the slop distance.
func (v *ScrollView) TouchMoved() bool {
	return v.state == GestureDragging
}

// NumTouches returns how many touches the view is tracking.
func (v *ScrollView) NumTouches() int {
	return len(v.touches)
}

func (v *ScrollView) findTouch(id TouchID) int {
	for i := range v.touches {
		if v.touches[i].id == id {
			return i
		}
	}
	return -1
}

func (v *ScrollView) removeTouch(id TouchID) bool {
	i := v.findTouch(id)
	if i < 0 {
		return false
	}
	v.touches = append(v.touches[:i], v.touches[i+1:]...)
	return true
}

// local converts a world point into view space.
func (v *ScrollView) local(p Vec2) Vec2 {
	x, y := v.node.WorldToLocal(p.X, p.Y)
	return Vec2{x, y}
}

// settle picks the resting state once no fingers remain.
func (v *ScrollView) settle() {
	if len(v.touches) > 0 {
		return
	}
	if !v.decelTask.Done() {
		v.state = GestureDecelerating
		return
	}
	v.state = GestureIdle
}

// resetGesture drops tracked touches and stops inertia.
func (v *ScrollView) resetGesture() {
	v.touches = v.touches[:0]
	v.decelTask.Cancel()
	v.state = GestureIdle
}

// TouchBegan implements TouchListener. The touch is refused while the view
// is hidden, while more than two touches are tracked, once a drag has moved,
// or when it lands outside the view frame.
func (v *ScrollView) TouchBegan(t Touch) bool {
	if !v.node.Visible {
		return false
	}
	if len(v.touches) > 2 || v.TouchMoved() || !v.viewRect().Contains(t.X, t.Y) {
		return false
	}
	if v.findTouch(t.ID) < 0 {
		v.touches = append(v.touches, trackedTouch{id: t.ID, pos: t.Location()})
	}

	switch len(v.touches) {
	case 1:
		v.touchPoint = v.local(t.Location())
		v.dragStart = v.clock()
		v.scrollDistance = Vec2{}
		v.touchLength = 0
		v.state = GestureTouching
		v.notifyTask.Cancel()
	case 2:
		a, b := v.local(v.touches[0].pos), v.local(v.touches[1].pos)
		v.touchPoint = Midpoint(a, b)
		v.touchLength = Distance(a, b)
		v.state = GesturePinching
	}
	return true
}

// TouchMoved implements TouchListener.
func (v *ScrollView) TouchMoved(t Touch) {
	if !v.node.Visible {
		return
	}
	i := v.findTouch(t.ID)
	if i < 0 {
		return
	}
	v.touches[i].pos = t.Location()

	switch {
	case len(v.touches) == 1 && v.Dragging():
		v.drag(v.local(v.touches[0].pos))
	case len(v.touches) == 2 && !v.Dragging():
		v.pinch(v.local(v.touches[0].pos), v.local(v.touches[1].pos))
	}
}

func (v *ScrollView) drag(p Vec2) {
	delta := p.Sub(v.touchPoint)

	var dis float64
	switch v.direction {
	case DirectionVertical:
		dis = delta.Y
	case DirectionHorizontal:
		dis = delta.X
	default:
		dis = delta.Len()
	}
	if !v.TouchMoved() && math.Abs(v.pointsToInches(dis)) < MoveInch {
		return
	}
	if !v.TouchMoved() {
		// The crossing move only re-anchors.
		delta = Vec2{}
	}
	v.touchPoint = p
	v.state = GestureDragging

	frame := Rect{Width: v.viewSize.Width, Height: v.viewSize.Height}
	if !frame.Contains(v.touchPoint.X, v.touchPoint.Y) {
		return
	}
	switch v.direction {
	case DirectionVertical:
		delta.X = 0
	case DirectionHorizontal:
		delta.Y = 0
	case DirectionNone:
		delta = Vec2{}
	}
	v.scrollDistance = delta
	v.SetContentOffset(v.ContentOffset().Add(delta), false)
}

// pinch applies half of the change in finger distance to the zoom.
func (v *ScrollView) pinch(a, b Vec2) {
	l := Distance(a, b)
	if v.touchLength < pinchLengthMin {
		v.touchLength = l
		return
	}
	v.SetZoomScale(PinchZoom(v.ZoomScale(), l/v.touchLength), false)
	v.touchLength = l
}

// PinchZoom returns the zoom after a pinch whose finger distance changed by
// ratio (new/old). Half of the relative change is applied, so the response
// is continuous at ratio 1.
func PinchZoom(zoom, ratio float64) float64 {
	if ratio < 1 {
		return zoom * (1 - (1-ratio)*0.5)
	}
	return zoom * (1 + (ratio-1)*0.5)
}

func (v *ScrollView) pointsToInches(d float64) float64 {
	dpi := v.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return d / dpi
}

// TouchEnded implements TouchListener. Lifting the only finger of a moved
// drag starts deceleration.
func (v *ScrollView) TouchEnded(t Touch) {
	if !v.node.Visible {
		return
	}
	if v.findTouch(t.ID) >= 0 {
		if len(v.touches) == 1 && v.TouchMoved() {
			v.startDeceleration()
		}
		v.removeTouch(t.ID)
	}
	v.settle()
}

// TouchCancelled implements TouchListener.
func (v *ScrollView) TouchCancelled(t Touch) {
	if !v.node.Visible {
		return
	}
	v.removeTouch(t.ID)
	v.settle()
}

func (v *ScrollView) startDeceleration() {
	v.decelTask.Cancel()
	v.decelTask = v.scene.scheduler.Schedule(v.node, func(float64) { v.decelerate() })
}

// decelerate runs once per tick while inertia is active.
func (v *ScrollView) decelerate() {
	if v.Dragging() && v.clock().Sub(v.dragStart) < dragGraceInterval {
		v.stopDeceleration()
		return
	}

	raw := v.ContentOffset().Add(v.scrollDistance)
	v.container.SetPosition(raw.X, raw.Y)

	p := raw
	if v.SnapBack {
		lo, hi := v.minInset, v.maxInset
		if !v.bounceable {
			lo, hi = v.MinContainerOffset(), v.MaxContainerOffset()
		}
		p = Vec2{clamp(raw.X, lo.X, hi.X), clamp(raw.Y, lo.Y, hi.Y)}
	}

	v.scrollDistance = v.scrollDistance.Scale(ScrollDeaccelRate)
	v.SetContentOffset(p, false)

	slow := math.Abs(v.scrollDistance.X) <= ScrollDeaccelDist && math.Abs(v.scrollDistance.Y) <= ScrollDeaccelDist
	if slow || p != raw {
		v.stopDeceleration()
		if v.SnapBack {
			v.RelocateContainer(true)
		}
	}
}

func (v *ScrollView) stopDeceleration() {
	v.decelTask.Cancel()
	if v.state == GestureDecelerating {
		v.state = GestureIdle
	}
}
