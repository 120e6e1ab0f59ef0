package scrollview

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Action is a timed or instant operation run on a node by a Scheduler.
// Step advances the action by dt seconds and reports whether it finished.
// Actions are single use.
type Action interface {
	Step(target *Node, dt float64) bool
}

// MoveToAction tweens the target's X and Y to a destination.
type MoveToAction struct {
	To       Vec2
	Duration float32
	Ease     ease.TweenFunc

	tweenX, tweenY *gween.Tween
}

// MoveTo creates an action that moves its target to (x, y) over duration
// seconds with linear easing.
func MoveTo(duration float32, x, y float64) *MoveToAction {
	return &MoveToAction{To: Vec2{x, y}, Duration: duration, Ease: ease.Linear}
}

// Step implements Action. The start position is captured on the first step.
func (a *MoveToAction) Step(target *Node, dt float64) bool {
	if a.tweenX == nil {
		fn := a.Ease
		if fn == nil {
			fn = ease.Linear
		}
		a.tweenX = gween.New(float32(target.X), float32(a.To.X), a.Duration, fn)
		a.tweenY = gween.New(float32(target.Y), float32(a.To.Y), a.Duration, fn)
	}
	x, doneX := a.tweenX.Update(float32(dt))
	y, doneY := a.tweenY.Update(float32(dt))
	if doneX && doneY {
		// Land exactly on the destination rather than the float32 tween value.
		target.X, target.Y = a.To.X, a.To.Y
		return true
	}
	target.X, target.Y = float64(x), float64(y)
	return false
}

// ScaleToAction tweens the target's ScaleX and ScaleY uniformly.
type ScaleToAction struct {
	To       float64
	Duration float32
	Ease     ease.TweenFunc

	tween *gween.Tween
}

// ScaleTo creates an action that scales its target uniformly to s over
// duration seconds with linear easing.
func ScaleTo(duration float32, s float64) *ScaleToAction {
	return &ScaleToAction{To: s, Duration: duration, Ease: ease.Linear}
}

// Step implements Action.
func (a *ScaleToAction) Step(target *Node, dt float64) bool {
	if a.tween == nil {
		fn := a.Ease
		if fn == nil {
			fn = ease.Linear
		}
		a.tween = gween.New(float32(target.ScaleX), float32(a.To), a.Duration, fn)
	}
	v, done := a.tween.Update(float32(dt))
	if done {
		target.SetScale(a.To, a.To)
		return true
	}
	target.SetScale(float64(v), float64(v))
	return false
}

// TweenAction drives an arbitrary float property through a setter.
type TweenAction struct {
	From, To float64
	Duration float32
	Ease     ease.TweenFunc
	Set      func(v float64)

	tween *gween.Tween
}

// Tween creates an action that calls set with values interpolated from from to
// to over duration seconds.
func Tween(duration float32, from, to float64, set func(v float64)) *TweenAction {
	return &TweenAction{From: from, To: to, Duration: duration, Ease: ease.Linear, Set: set}
}

// Step implements Action.
func (a *TweenAction) Step(_ *Node, dt float64) bool {
	if a.tween == nil {
		fn := a.Ease
		if fn == nil {
			fn = ease.Linear
		}
		a.tween = gween.New(float32(a.From), float32(a.To), a.Duration, fn)
	}
	v, done := a.tween.Update(float32(dt))
	if done {
		a.Set(a.To)
		return true
	}
	a.Set(float64(v))
	return false
}

// CallFuncAction invokes a function once and finishes immediately.
type CallFuncAction struct {
	Fn func(target *Node)
}

// CallFunc creates an instant action that calls fn with the action's target.
func CallFunc(fn func(target *Node)) *CallFuncAction {
	return &CallFuncAction{Fn: fn}
}

// Step implements Action.
func (a *CallFuncAction) Step(target *Node, _ float64) bool {
	if a.Fn != nil {
		a.Fn(target)
	}
	return true
}

// SequenceAction runs actions one after another. When an action finishes,
// the next one is started within the same step.
type SequenceAction struct {
	actions []Action
	index   int
}

// Sequence creates an action running the given actions in order.
func Sequence(actions ...Action) *SequenceAction {
	return &SequenceAction{actions: actions}
}

// Step implements Action.
func (a *SequenceAction) Step(target *Node, dt float64) bool {
	for a.index < len(a.actions) {
		if !a.actions[a.index].Step(target, dt) {
			return false
		}
		a.index++
		dt = 0
	}
	return true
}
