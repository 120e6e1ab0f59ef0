// Package ecs bridges scrollview to a [Donburi] world.
//
// [NewDonburiDelegate] returns a scrollview.Delegate that mirrors a view's
// offset and zoom into a [ViewState] component and publishes a [ScrollEvent]
// for every change. Subscribe to [ScrollEventType] in your systems:
//
//	d := ecs.NewDonburiDelegate(world)
//	view.SetDelegate(d)
//	ecs.ScrollEventType.Subscribe(world, onScroll)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
