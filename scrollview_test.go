package scrollview

import (
	"testing"
	"time"
)

const (
	testViewSize    = 200.0
	testContentSize = 1000.0
)

// newTestView returns a 200x200 view at the world origin over 1000x1000
// content, attached to a fresh scene.
func newTestView(t *testing.T) (*Scene, *ScrollView) {
	t.Helper()
	scene := NewScene()
	v := NewScrollView(scene, Size{Width: testViewSize, Height: testViewSize}, NewContainer("content"))
	v.SetContentSize(Size{Width: testContentSize, Height: testContentSize})
	scene.Root().AddChild(v.View())
	return scene, v
}

// countingDelegate counts notifications.
type countingDelegate struct {
	scrolls, zooms int
}

func (d *countingDelegate) ScrollDidUpdate(*ScrollView) { d.scrolls++ }
func (d *countingDelegate) ZoomDidUpdate(*ScrollView)   { d.zooms++ }

func stepN(s *Scene, n int, dt float64) {
	for i := 0; i < n; i++ {
		_ = s.Step(dt)
	}
}

func TestNewScrollViewDefaults(t *testing.T) {
	scene, v := newTestView(t)
	if v.ZoomScale() != 1 {
		t.Errorf("ZoomScale = %v", v.ZoomScale())
	}
	if v.MinScale() != DefaultMinScale || v.MaxScale() != DefaultMaxScale {
		t.Errorf("scale bounds = [%v, %v]", v.MinScale(), v.MaxScale())
	}
	if v.Direction() != DirectionBoth {
		t.Errorf("Direction = %v", v.Direction())
	}
	if !v.Bounceable() || !v.ClippingToBounds() || !v.View().ClipChildren {
		t.Error("expected bounceable and clipping by default")
	}
	if !v.TouchEnabled() || scene.Touches().NumListeners() != 1 {
		t.Error("expected touch listener registered")
	}
	if v.State() != GestureIdle || v.DPI != DefaultDPI || v.SnapBack {
		t.Errorf("state=%v dpi=%v snapBack=%v", v.State(), v.DPI, v.SnapBack)
	}
	if v.Container().Parent != v.View() {
		t.Error("container not a child of the view")
	}
	if v.View().UserData != v {
		t.Error("view node UserData should be the ScrollView")
	}
	if v.ViewSize() != (Size{testViewSize, testViewSize}) {
		t.Errorf("ViewSize = %+v", v.ViewSize())
	}
}

func TestNewScrollViewNilScenePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewScrollView(nil, Size{}, nil)
}

func TestNewScrollViewNilContainer(t *testing.T) {
	v := NewScrollView(NewScene(), Size{Width: 10, Height: 10}, nil)
	if v.Container() == nil {
		t.Fatal("nil container")
	}
}

func TestZoomScaleClamped(t *testing.T) {
	_, v := newTestView(t)
	v.SetZoomScale(10, false)
	if v.ZoomScale() != DefaultMaxScale {
		t.Errorf("ZoomScale = %v, want %v", v.ZoomScale(), DefaultMaxScale)
	}
	v.SetZoomScale(0.1, false)
	if v.ZoomScale() != DefaultMinScale {
		t.Errorf("ZoomScale = %v, want %v", v.ZoomScale(), DefaultMinScale)
	}
}

func TestZoomKeepsCenterFixed(t *testing.T) {
	_, v := newTestView(t)
	d := &countingDelegate{}
	v.SetContentOffset(Vec2{-100, -50}, false)
	v.SetDelegate(d)

	// Content point (200, 150) is under the view center before zooming.
	v.SetZoomScale(2, false)

	assertVec(t, "offset", v.ContentOffset(), Vec2{-300, -200})
	wx, wy := v.Container().LocalToWorld(200, 150)
	assertVec(t, "pivot on screen", Vec2{wx, wy}, Vec2{100, 100})
	if d.zooms != 1 || d.scrolls != 1 {
		t.Errorf("zooms=%d scrolls=%d, want 1 each", d.zooms, d.scrolls)
	}
}

func TestZoomIgnoresTinyChange(t *testing.T) {
	_, v := newTestView(t)
	d := &countingDelegate{}
	v.SetDelegate(d)
	v.SetZoomScale(1.005, false)
	if v.ZoomScale() != 1 || d.zooms != 0 {
		t.Errorf("zoom = %v, notifications = %d", v.ZoomScale(), d.zooms)
	}
}

func TestSetMinMaxScaleReclamps(t *testing.T) {
	_, v := newTestView(t)
	v.SetZoomScale(4, false)
	v.SetMaxScale(3)
	if v.ZoomScale() != 3 {
		t.Errorf("ZoomScale = %v, want 3", v.ZoomScale())
	}
	v.SetMaxScale(DefaultMaxScale)
	v.SetZoomScale(1, false)
	v.SetMinScale(2)
	if v.ZoomScale() != 2 {
		t.Errorf("ZoomScale = %v, want 2", v.ZoomScale())
	}
}

func TestContainerOffsetBounds(t *testing.T) {
	_, v := newTestView(t)
	assertVec(t, "min", v.MinContainerOffset(), Vec2{-800, -800})
	assertVec(t, "max", v.MaxContainerOffset(), Vec2{})
	assertVec(t, "max inset", v.MaxInset(), Vec2{40, 40})
	assertVec(t, "min inset", v.MinInset(), Vec2{-840, -840})

	v.SetZoomScale(2, false)
	assertVec(t, "min at zoom 2", v.MinContainerOffset(), Vec2{-1800, -1800})
	assertVec(t, "min inset at zoom 2", v.MinInset(), Vec2{-1840, -1840})

	v.SetViewSize(Size{Width: 400, Height: 100})
	assertVec(t, "max inset after resize", v.MaxInset(), Vec2{80, 20})
}

func TestSetContentOffsetClamp(t *testing.T) {
	tests := []struct {
		name       string
		bounceable bool
		in, want   Vec2
	}{
		{"bounceable passes through", true, Vec2{-900, 50}, Vec2{-900, 50}},
		{"clamped low", false, Vec2{-900, 50}, Vec2{-800, 0}},
		{"inside", false, Vec2{-10, -20}, Vec2{-10, -20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, v := newTestView(t)
			v.SetBounceable(tt.bounceable)
			v.SetContentOffset(tt.in, false)
			assertVec(t, "offset", v.ContentOffset(), tt.want)
		})
	}
}

func TestRelocateContainer(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		from      Vec2
		want      Vec2
	}{
		{"both", DirectionBoth, Vec2{50, -900}, Vec2{0, -800}},
		{"horizontal only", DirectionHorizontal, Vec2{50, -900}, Vec2{0, -900}},
		{"vertical only", DirectionVertical, Vec2{50, -900}, Vec2{50, -800}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, v := newTestView(t)
			v.SetDirection(tt.direction)
			v.SetContentOffset(tt.from, false)
			v.RelocateContainer(false)
			assertVec(t, "offset", v.ContentOffset(), tt.want)
		})
	}
}

func TestRelocateContainerWithinEpsilon(t *testing.T) {
	_, v := newTestView(t)
	v.SetContentOffset(Vec2{0.05, 0}, false)
	d := &countingDelegate{}
	v.SetDelegate(d)
	v.RelocateContainer(false)
	if d.scrolls != 0 {
		t.Errorf("scrolls = %d, want 0", d.scrolls)
	}
}

func TestRelocateContainerAnimated(t *testing.T) {
	scene, v := newTestView(t)
	v.SetContentOffset(Vec2{60, 0}, false)
	v.RelocateContainer(true)
	stepN(scene, 5, 0.05)
	assertVec(t, "offset", v.ContentOffset(), Vec2{})
}

func TestIsNodeVisible(t *testing.T) {
	_, v := newTestView(t)
	near := NewContainer("near")
	near.SetPosition(150, 150)
	near.SetContentSize(Size{Width: 20, Height: 20})
	far := NewContainer("far")
	far.SetPosition(500, 500)
	far.SetContentSize(Size{Width: 20, Height: 20})
	v.AddChild(near)
	v.AddChild(far)

	if !v.IsNodeVisible(near) || v.IsNodeVisible(far) {
		t.Errorf("at origin: near=%v far=%v", v.IsNodeVisible(near), v.IsNodeVisible(far))
	}
	v.SetContentOffset(Vec2{-400, -400}, false)
	if v.IsNodeVisible(near) || !v.IsNodeVisible(far) {
		t.Errorf("scrolled: near=%v far=%v", v.IsNodeVisible(near), v.IsNodeVisible(far))
	}
	v.SetContentOffset(Vec2{}, false)
	v.SetZoomScale(0.5, false)
	// Zoomed out around the view center the visible area is (-100, -100)
	// to (300, 300) in container units.
	if !v.IsNodeVisible(near) || v.IsNodeVisible(far) {
		t.Errorf("zoomed out: near=%v far=%v", v.IsNodeVisible(near), v.IsNodeVisible(far))
	}
}

func TestAnimatedContentOffset(t *testing.T) {
	scene, v := newTestView(t)
	d := &countingDelegate{}
	v.SetDelegate(d)
	v.SetContentOffset(Vec2{-100, 0}, true)
	if v.ContentOffset() != (Vec2{}) {
		t.Fatal("animated offset applied immediately")
	}

	stepN(scene, 4, 0.05)
	if v.ContentOffset() != (Vec2{-100, 0}) {
		t.Fatalf("offset = %+v, want (-100, 0)", v.ContentOffset())
	}
	if d.scrolls < 2 {
		t.Errorf("scrolls = %d, want per-frame notifications", d.scrolls)
	}

	n := d.scrolls
	stepN(scene, 3, 0.05)
	if d.scrolls != n {
		t.Errorf("notified after the animation finished: %d -> %d", n, d.scrolls)
	}
}

func TestAnimatedContentOffsetReplaced(t *testing.T) {
	scene, v := newTestView(t)
	v.SetContentOffset(Vec2{-100, 0}, true)
	stepN(scene, 1, 0.05)
	v.SetContentOffset(Vec2{0, -200}, true)
	stepN(scene, 5, 0.05)
	assertVec(t, "offset", v.ContentOffset(), Vec2{0, -200})
}

func TestAnimatedZoom(t *testing.T) {
	scene, v := newTestView(t)
	v.SetZoomScale(2, true)
	if v.ZoomScale() != 1 {
		t.Fatal("animated zoom applied immediately")
	}
	stepN(scene, 5, 0.05)
	if v.ZoomScale() != 2 {
		t.Errorf("ZoomScale = %v, want 2", v.ZoomScale())
	}
}

func TestAnimatedZoomSmallChangeIgnored(t *testing.T) {
	scene, v := newTestView(t)
	v.SetZoomScale(1.05, true)
	if scene.Scheduler().Len() != 0 {
		t.Errorf("scheduled %d tasks", scene.Scheduler().Len())
	}
	stepN(scene, 5, 0.05)
	if v.ZoomScale() != 1 {
		t.Errorf("ZoomScale = %v, want 1", v.ZoomScale())
	}
}

func TestZoomInDurationNonPositive(t *testing.T) {
	_, v := newTestView(t)
	v.SetZoomScaleInDuration(3, 0)
	if v.ZoomScale() != 3 {
		t.Errorf("ZoomScale = %v, want 3", v.ZoomScale())
	}
}

func TestSetContainer(t *testing.T) {
	_, v := newTestView(t)
	old := v.Container()
	c := NewContainer("next")
	c.SetPosition(5, 5)
	c.SetScale(2, 2)
	c.SetContentSize(Size{Width: 300, Height: 300})

	v.SetContainer(c)
	if v.Container() != c || old.Parent != nil {
		t.Fatal("container not replaced")
	}
	if v.View().NumChildren() != 1 {
		t.Errorf("children = %d", v.View().NumChildren())
	}
	if c.Position() != (Vec2{}) || c.ScaleX != 1 {
		t.Errorf("container not reset: pos=%+v scale=%v", c.Position(), c.ScaleX)
	}
	assertVec(t, "min inset", v.MinInset(), Vec2{-140, -140})

	v.SetContainer(nil)
	if v.Container() != c {
		t.Error("nil container accepted")
	}
}

func TestSetTouchEnabled(t *testing.T) {
	scene, v := newTestView(t)
	v.SetTouchEnabled(false)
	if v.TouchEnabled() || scene.Touches().NumListeners() != 0 {
		t.Error("listener still registered")
	}
	v.SetTouchEnabled(false)
	v.SetTouchEnabled(true)
	if scene.Touches().NumListeners() != 1 {
		t.Errorf("listeners = %d", scene.Touches().NumListeners())
	}
}

func TestScrollViewPauseResume(t *testing.T) {
	_, v := newTestView(t)
	child := NewContainer("child")
	v.AddChild(child)
	v.Pause()
	if !v.Container().IsPaused() || !child.IsPaused() {
		t.Error("not paused")
	}
	v.Resume()
	if v.Container().IsPaused() || child.IsPaused() {
		t.Error("not resumed")
	}
}

func TestScrollViewDispose(t *testing.T) {
	scene, v := newTestView(t)
	v.SetContentOffset(Vec2{-100, 0}, true)
	v.Dispose()
	if scene.Touches().NumListeners() != 0 {
		t.Error("listener still registered")
	}
	if !v.View().IsDisposed() || !v.Container().IsDisposed() {
		t.Error("nodes not disposed")
	}
	stepN(scene, 2, 0.05)
	if scene.Scheduler().Len() != 0 {
		t.Errorf("tasks left: %d", scene.Scheduler().Len())
	}
}

func TestSetVisibleResetsGesture(t *testing.T) {
	scene, v := newTestView(t)
	begin(scene, 1, 100, 100)
	if v.State() != GestureTouching {
		t.Fatalf("state = %v", v.State())
	}
	v.SetVisible(false)
	if v.Visible() || v.State() != GestureIdle || v.NumTouches() != 0 {
		t.Errorf("visible=%v state=%v touches=%d", v.Visible(), v.State(), v.NumTouches())
	}
}

func TestDelegateFuncs(t *testing.T) {
	var scrolls, zooms int
	d := DelegateFuncs{
		OnScroll: func(*ScrollView) { scrolls++ },
		OnZoom:   func(*ScrollView) { zooms++ },
	}
	_, v := newTestView(t)
	v.SetDelegate(d)
	v.SetContentOffset(Vec2{-1, -1}, false)
	v.SetZoomScale(2, false)
	if scrolls != 2 || zooms != 1 {
		t.Errorf("scrolls=%d zooms=%d", scrolls, zooms)
	}

	var empty DelegateFuncs
	empty.ScrollDidUpdate(v)
	empty.ZoomDidUpdate(v)
}

func TestClamp(t *testing.T) {
	tests := []struct{ x, lo, hi, want float64 }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		// Content smaller than the view: the lower bound wins.
		{0, 50, 0, 50},
	}
	for _, tt := range tests {
		if got := clamp(tt.x, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.x, tt.lo, tt.hi, got, tt.want)
		}
	}
}

// fakeClock returns a clock function and a way to advance it.
func fakeClock(v *ScrollView) func(time.Duration) {
	now := time.Unix(1000, 0)
	v.clock = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}
