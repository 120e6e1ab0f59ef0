package scrollview

import (
	"math"
	"time"
)

// Tuning constants shared by every ScrollView.
const (
	// ScrollDeaccelRate is the per-tick velocity multiplier while decelerating.
	ScrollDeaccelRate = 0.95
	// ScrollDeaccelDist is the velocity, in local units per tick, at or below
	// which deceleration stops.
	ScrollDeaccelDist = 1.0
	// BounceDuration is the length in seconds of animated offset and zoom changes.
	BounceDuration = 0.15
	// InsetRatio is the fraction of the view size allowed as overscroll on
	// each side.
	InsetRatio = 0.2
	// MoveInch is the slop distance, in inches, a single touch must travel
	// before it starts dragging.
	MoveInch = 7.0 / 160.0
	// DefaultDPI is the screen density assumed when none is configured.
	DefaultDPI = 160.0

	// DefaultMinScale and DefaultMaxScale bound the zoom scale of a new view.
	DefaultMinScale = 0.5
	DefaultMaxScale = 6.5

	zoomEpsilon       = 0.01
	animZoomEpsilon   = 0.1
	relocateEpsilon   = 0.1
	pinchLengthMin    = 0.001
	dragGraceInterval = 50 * time.Millisecond
)

// Delegate observes a ScrollView. ScrollDidUpdate fires whenever the content
// offset is set and once per frame during animated scrolls; ZoomDidUpdate
// fires when the zoom scale changes.
type Delegate interface {
	ScrollDidUpdate(v *ScrollView)
	ZoomDidUpdate(v *ScrollView)
}

// DelegateFuncs adapts plain functions to Delegate. Nil fields are skipped.
type DelegateFuncs struct {
	OnScroll func(v *ScrollView)
	OnZoom   func(v *ScrollView)
}

// ScrollDidUpdate implements Delegate.
func (f DelegateFuncs) ScrollDidUpdate(v *ScrollView) {
	if f.OnScroll != nil {
		f.OnScroll(v)
	}
}

// ZoomDidUpdate implements Delegate.
func (f DelegateFuncs) ZoomDidUpdate(v *ScrollView) {
	if f.OnZoom != nil {
		f.OnZoom(v)
	}
}

// trackedTouch is a touch the view has accepted, with its last world position.
type trackedTouch struct {
	id  TouchID
	pos Vec2
}

// ScrollView is a clipped viewport onto a single container node that is
// panned with one finger and zoomed with two.
//
// The container's position is the content offset and its uniform scale is
// the zoom scale. Both are expressed in the view node's local space, where
// (0, 0) is the view's top-left corner.
type ScrollView struct {
	scene     *Scene
	node      *Node
	container *Node
	viewSize  Size

	minScale, maxScale float64
	direction          Direction
	bounceable         bool
	clipping           bool
	delegate           Delegate

	// DPI converts touch movement into inches for the drag slop. Defaults to
	// DefaultDPI.
	DPI float64

	// SnapBack, when set, keeps deceleration inside the inset bounds and
	// animates the container back into its bounds once inertia stops. When
	// unset, deceleration overshoots freely and the container stays where it
	// lands.
	SnapBack bool

	minInset, maxInset Vec2

	touchEnabled bool
	listener     *TouchListenerHandle

	// Gesture state; see gesture.go.
	state          GestureState
	touches        []trackedTouch
	touchPoint     Vec2
	touchLength    float64
	scrollDistance Vec2
	dragStart      time.Time
	clock          func() time.Time

	decelTask  *Task
	moveTask   *Task
	notifyTask *Task
	zoomTask   *Task
}

// NewScrollView creates a view of the given size showing container. A nil
// container is replaced by an empty one. The view registers for touches with
// the scene's dispatcher and animates through the scene's scheduler; add
// View() to the scene tree to display it.
func NewScrollView(scene *Scene, viewSize Size, container *Node) *ScrollView {
	if scene == nil {
		panic("scrollview: NewScrollView requires a scene")
	}
	if container == nil {
		container = NewContainer("container")
	}
	v := &ScrollView{
		scene:      scene,
		node:       NewContainer("scrollview"),
		minScale:   DefaultMinScale,
		maxScale:   DefaultMaxScale,
		direction:  DirectionBoth,
		bounceable: true,
		DPI:        DefaultDPI,
		clock:      time.Now,
	}
	v.node.UserData = v
	v.attachContainer(container)
	v.SetViewSize(viewSize)
	v.SetClippingToBounds(true)
	v.SetTouchEnabled(true)
	return v
}

// View returns the view node. Position it and add it to the tree.
func (v *ScrollView) View() *Node {
	return v.node
}

// Container returns the scrollable content node.
func (v *ScrollView) Container() *Node {
	return v.container
}

// SetContainer replaces the content node. The previous container is detached
// and its running actions are cancelled. A nil container is ignored.
func (v *ScrollView) SetContainer(c *Node) {
	if c == nil {
		return
	}
	if old := v.container; old != nil && old != c {
		v.scene.scheduler.CancelAll(old)
		v.node.RemoveChildren()
	}
	v.attachContainer(c)
	v.SetViewSize(v.viewSize)
}

func (v *ScrollView) attachContainer(c *Node) {
	c.SetPivot(0, 0)
	c.SetPosition(0, 0)
	c.SetScale(1, 1)
	v.container = c
	if c.Parent != v.node {
		v.node.AddChild(c)
	}
}

// AddChild adds n to the container, or makes n the view's container child
// when n is the container itself.
func (v *ScrollView) AddChild(n *Node) {
	if n == v.container {
		v.node.AddChild(n)
		return
	}
	v.container.AddChild(n)
}

// ViewSize returns the size of the visible window.
func (v *ScrollView) ViewSize() Size {
	return v.viewSize
}

// SetViewSize resizes the visible window and its clip rectangle.
func (v *ScrollView) SetViewSize(s Size) {
	v.viewSize = s
	v.node.SetContentSize(s)
	v.UpdateInset()
}

// ContentSize returns the container's unscaled content size.
func (v *ScrollView) ContentSize() Size {
	return v.container.ContentSize()
}

// SetContentSize sets the container's unscaled content size.
func (v *ScrollView) SetContentSize(s Size) {
	v.container.SetContentSize(s)
	v.UpdateInset()
}

// Delegate returns the current delegate, or nil.
func (v *ScrollView) Delegate() Delegate {
	return v.delegate
}

// SetDelegate sets the observer notified of scroll and zoom changes. Nil
// disables notifications.
func (v *ScrollView) SetDelegate(d Delegate) {
	v.delegate = d
}

// Direction returns the axes that respond to dragging.
func (v *ScrollView) Direction() Direction {
	return v.direction
}

// SetDirection restricts dragging and relocation to the given axes.
func (v *ScrollView) SetDirection(d Direction) {
	v.direction = d
}

// Bounceable reports whether the offset may leave the container bounds.
func (v *ScrollView) Bounceable() bool {
	return v.bounceable
}

// SetBounceable sets whether offsets outside the container bounds are
// allowed. When false every direct offset set is clamped.
func (v *ScrollView) SetBounceable(b bool) {
	v.bounceable = b
}

// ClippingToBounds reports whether content is clipped to the view.
func (v *ScrollView) ClippingToBounds() bool {
	return v.clipping
}

// SetClippingToBounds enables or disables clipping of the content to the
// view rectangle.
func (v *ScrollView) SetClippingToBounds(clip bool) {
	v.clipping = clip
	v.node.ClipChildren = clip
}

// SetVisible shows or hides the view. Hiding drops any gesture in progress.
func (v *ScrollView) SetVisible(visible bool) {
	if !visible && v.node.Visible {
		v.resetGesture()
	}
	v.node.Visible = visible
}

// Visible reports whether the view node is visible.
func (v *ScrollView) Visible() bool {
	return v.node.Visible
}

// --- Offset ---

// ContentOffset returns the container position in view space.
func (v *ScrollView) ContentOffset() Vec2 {
	return v.container.Position()
}

// MinContainerOffset is the smallest offset that keeps the scaled content
// covering the view: viewSize - contentSize*zoom.
func (v *ScrollView) MinContainerOffset() Vec2 {
	c := v.container
	return Vec2{
		X: v.viewSize.Width - c.Width*c.ScaleX,
		Y: v.viewSize.Height - c.Height*c.ScaleY,
	}
}

// MaxContainerOffset is always the origin.
func (v *ScrollView) MaxContainerOffset() Vec2 {
	return Vec2{}
}

// MinInset returns MinContainerOffset less the overscroll allowance.
func (v *ScrollView) MinInset() Vec2 {
	return v.minInset
}

// MaxInset returns MaxContainerOffset plus the overscroll allowance.
func (v *ScrollView) MaxInset() Vec2 {
	return v.maxInset
}

// UpdateInset recomputes the overscroll bounds from the current content
// size, view size and zoom.
func (v *ScrollView) UpdateInset() {
	if v.container == nil {
		return
	}
	dx, dy := v.viewSize.Width*InsetRatio, v.viewSize.Height*InsetRatio
	maxOff, minOff := v.MaxContainerOffset(), v.MinContainerOffset()
	v.maxInset = Vec2{maxOff.X + dx, maxOff.Y + dy}
	v.minInset = Vec2{minOff.X - dx, minOff.Y - dy}
}

// SetContentOffset moves the container. Unanimated sets are clamped into
// the container bounds when the view is not bounceable and notify the
// delegate once. Animated sets move the container over BounceDuration
// without clamping, notifying every frame and once more on arrival.
func (v *ScrollView) SetContentOffset(offset Vec2, animated bool) {
	if animated {
		v.SetContentOffsetInDuration(offset, BounceDuration)
		return
	}
	if !v.bounceable {
		offset = v.clampToContainer(offset)
	}
	v.container.SetPosition(offset.X, offset.Y)
	v.notifyScroll()
}

// SetContentOffsetInDuration animates the container to offset over dt
// seconds. A running offset animation is replaced.
func (v *ScrollView) SetContentOffsetInDuration(offset Vec2, dt float64) {
	v.moveTask.Cancel()
	v.notifyTask.Cancel()
	sched := v.scene.scheduler
	v.moveTask = sched.RunAction(v.container, Sequence(
		MoveTo(float32(dt), offset.X, offset.Y),
		CallFunc(func(*Node) { v.stoppedAnimatedScroll() }),
	))
	v.notifyTask = sched.Schedule(v.node, func(float64) { v.performedAnimatedScroll() })
}

func (v *ScrollView) performedAnimatedScroll() {
	if v.Dragging() {
		v.notifyTask.Cancel()
		return
	}
	v.notifyScroll()
}

func (v *ScrollView) stoppedAnimatedScroll() {
	v.notifyTask.Cancel()
	v.notifyScroll()
}

func (v *ScrollView) clampToContainer(p Vec2) Vec2 {
	lo, hi := v.MinContainerOffset(), v.MaxContainerOffset()
	return Vec2{clamp(p.X, lo.X, hi.X), clamp(p.Y, lo.Y, hi.Y)}
}

// RelocateContainer moves the container back inside its bounds along the
// active direction axes. Nothing happens when it is already within 0.1 units.
func (v *ScrollView) RelocateContainer(animated bool) {
	lo, hi := v.MinContainerOffset(), v.MaxContainerOffset()
	old := v.container.Position()
	p := old
	if v.direction == DirectionBoth || v.direction == DirectionHorizontal {
		p.X = clamp(p.X, lo.X, hi.X)
	}
	if v.direction == DirectionBoth || v.direction == DirectionVertical {
		p.Y = clamp(p.Y, lo.Y, hi.Y)
	}
	if math.Abs(p.X-old.X) > relocateEpsilon || math.Abs(p.Y-old.Y) > relocateEpsilon {
		v.SetContentOffset(p, animated)
	}
}

// --- Zoom ---

// ZoomScale returns the container's uniform scale.
func (v *ScrollView) ZoomScale() float64 {
	return v.container.ScaleX
}

// SetZoomScale changes the zoom, clamped into [MinScale, MaxScale], keeping
// the pivot point fixed on screen. The pivot is the last pinch midpoint, or
// the view center when no pinch has happened since the last single touch.
// Requests within 0.01 of the current zoom are ignored. Animated requests
// tween over BounceDuration when they differ by more than 0.1.
func (v *ScrollView) SetZoomScale(scale float64, animated bool) {
	if animated {
		v.SetZoomScaleInDuration(scale, BounceDuration)
		return
	}
	v.setZoom(scale)
}

// SetZoomScaleInDuration tweens the zoom to scale over dt seconds. A
// non-positive dt sets it immediately.
func (v *ScrollView) SetZoomScaleInDuration(scale, dt float64) {
	if dt <= 0 {
		v.setZoom(scale)
		return
	}
	cur := v.ZoomScale()
	if math.Abs(cur-scale) <= animZoomEpsilon {
		return
	}
	v.zoomTask.Cancel()
	v.zoomTask = v.scene.scheduler.RunAction(v.node, Tween(float32(dt), cur, scale, v.setZoom))
}

func (v *ScrollView) setZoom(scale float64) {
	cur := v.ZoomScale()
	if math.Abs(cur-scale) <= zoomEpsilon {
		return
	}
	center := v.touchPoint
	if v.touchLength < pinchLengthMin {
		center = Vec2{v.viewSize.Width / 2, v.viewSize.Height / 2}
	}
	newZoom := clamp(scale, v.minScale, v.maxScale)

	// Content point under center, in container units, stays under center.
	off := v.ContentOffset()
	abs := center.Sub(off).Scale(1 / cur)
	offset := center.Sub(abs.Scale(newZoom))

	v.container.SetScale(newZoom, newZoom)
	v.UpdateInset()
	if v.delegate != nil {
		v.delegate.ZoomDidUpdate(v)
	}
	v.SetContentOffset(offset, false)
}

// MinScale returns the lower zoom bound.
func (v *ScrollView) MinScale() float64 {
	return v.minScale
}

// SetMinScale sets the lower zoom bound and re-clamps the current zoom.
func (v *ScrollView) SetMinScale(s float64) {
	v.minScale = s
	v.reclampZoom()
}

// MaxScale returns the upper zoom bound.
func (v *ScrollView) MaxScale() float64 {
	return v.maxScale
}

// SetMaxScale sets the upper zoom bound and re-clamps the current zoom.
func (v *ScrollView) SetMaxScale(s float64) {
	v.maxScale = s
	v.reclampZoom()
}

func (v *ScrollView) reclampZoom() {
	cur := v.ZoomScale()
	if c := clamp(cur, v.minScale, v.maxScale); c != cur {
		v.setZoom(c)
	}
}

// --- Queries ---

// IsNodeVisible reports whether n's bounding box, in container space,
// intersects the visible part of the content.
func (v *ScrollView) IsNodeVisible(n *Node) bool {
	off := v.ContentOffset()
	z := v.ZoomScale()
	r := Rect{
		X:      -off.X / z,
		Y:      -off.Y / z,
		Width:  v.viewSize.Width / z,
		Height: v.viewSize.Height / z,
	}
	return r.Intersects(n.BoundingBox())
}

// viewRect returns the view's frame in world space.
func (v *ScrollView) viewRect() Rect {
	return v.node.WorldBounds()
}

// --- Lifecycle ---

// TouchEnabled reports whether the view listens for touches.
func (v *ScrollView) TouchEnabled() bool {
	return v.touchEnabled
}

// SetTouchEnabled registers or unregisters the view with the touch
// dispatcher. Disabling drops any gesture in progress.
func (v *ScrollView) SetTouchEnabled(enabled bool) {
	if enabled == v.touchEnabled {
		return
	}
	v.touchEnabled = enabled
	if enabled {
		v.listener = v.scene.touches.AddListener(v.node, v)
		return
	}
	v.resetGesture()
	v.listener.Remove()
	v.listener = nil
}

// Pause stops actions on the container and its direct children.
func (v *ScrollView) Pause() {
	v.container.Pause()
	for _, c := range v.container.Children() {
		c.Pause()
	}
}

// Resume undoes Pause.
func (v *ScrollView) Resume() {
	for _, c := range v.container.Children() {
		c.Resume()
	}
	v.container.Resume()
}

// Dispose unregisters the view, cancels its tasks and disposes its nodes,
// container included.
func (v *ScrollView) Dispose() {
	v.SetTouchEnabled(false)
	for _, t := range []*Task{v.decelTask, v.moveTask, v.notifyTask, v.zoomTask} {
		t.Cancel()
	}
	v.scene.scheduler.CancelAll(v.container)
	v.scene.scheduler.CancelAll(v.node)
	v.node.Dispose()
}

func (v *ScrollView) notifyScroll() {
	if v.delegate != nil {
		v.delegate.ScrollDidUpdate(v)
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
