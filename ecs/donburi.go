package ecs

import (
	"github.com/phanxgames/scrollview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/features/math"
)

// ScrollEventKind tells offset changes from zoom changes.
type ScrollEventKind uint8

const (
	ScrollEventScroll ScrollEventKind = iota
	ScrollEventZoom
)

// ScrollEvent is published for every delegate notification.
type ScrollEvent struct {
	Kind   ScrollEventKind
	Entity donburi.Entity
	Offset math.Vec2
	Zoom   float64
}

// ViewState is the last known offset and zoom of a view.
type ViewState struct {
	Offset math.Vec2
	Zoom   float64
}

// ViewStateComponent holds a ViewState on the delegate's entity.
var ViewStateComponent = donburi.NewComponentType[ViewState]()

// ScrollEventType is the Donburi event type for scroll view changes.
var ScrollEventType = events.NewEventType[ScrollEvent]()

// DonburiDelegate implements scrollview.Delegate on top of a Donburi world.
type DonburiDelegate struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiDelegate creates an entity carrying ViewStateComponent and returns
// a delegate that keeps it current. Events are queued on ScrollEventType and
// delivered by ProcessEvents.
func NewDonburiDelegate(world donburi.World) *DonburiDelegate {
	e := world.Create(ViewStateComponent)
	ViewStateComponent.SetValue(world.Entry(e), ViewState{Zoom: 1})
	return &DonburiDelegate{world: world, entity: e}
}

// Entity returns the entity mirroring the view.
func (d *DonburiDelegate) Entity() donburi.Entity {
	return d.entity
}

// ScrollDidUpdate implements scrollview.Delegate.
func (d *DonburiDelegate) ScrollDidUpdate(v *scrollview.ScrollView) {
	d.publish(ScrollEventScroll, v)
}

// ZoomDidUpdate implements scrollview.Delegate.
func (d *DonburiDelegate) ZoomDidUpdate(v *scrollview.ScrollView) {
	d.publish(ScrollEventZoom, v)
}

func (d *DonburiDelegate) publish(kind ScrollEventKind, v *scrollview.ScrollView) {
	off := v.ContentOffset()
	st := ViewState{Offset: math.NewVec2(off.X, off.Y), Zoom: v.ZoomScale()}
	if d.world.Valid(d.entity) {
		ViewStateComponent.SetValue(d.world.Entry(d.entity), st)
	}
	ScrollEventType.Publish(d.world, ScrollEvent{
		Kind:   kind,
		Entity: d.entity,
		Offset: st.Offset,
		Zoom:   st.Zoom,
	})
}
