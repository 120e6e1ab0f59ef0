// Package scrollview is a touch-driven scroll and zoom viewport widget for
// [Ebitengine], with a runtime sprite-sheet packer, on a small retained-mode
// scene graph.
//
// # Quick start
//
// Create a [Scene], put content in a container, and wrap it in a
// [ScrollView]:
//
//	scene := scrollview.NewScene()
//
//	content := scrollview.NewDrawNode("content")
//	content.Shapes.FillRect(scrollview.Rect{Width: 2000, Height: 2000}, scrollview.ColorBlue)
//
//	view := scrollview.NewScrollView(scene, scrollview.Size{Width: 640, Height: 480}, content)
//	view.SetContentSize(scrollview.Size{Width: 2000, Height: 2000})
//	scene.Root().AddChild(view.View())
//
//	scrollview.Run(scene, scrollview.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root];
// children inherit their parent's transform and alpha. The coordinate system
// has its origin at the top-left with Y pointing down. Node kinds are
// containers ([NewContainer]), sprites ([NewSprite]), recorded rectangles
// ([NewDrawNode]) and text ([NewLabel]).
//
// # Touches
//
// [Scene.Update] polls Ebitengine touches, plus the left mouse button as
// touch [MouseTouchID], and routes them through a [TouchDispatcher]. A
// listener that accepts a touch in TouchBegan owns it until it ends. Input
// can be injected for tests and scripted demos with the Inject methods, one
// event per frame, or from a JSON script via [LoadTestScript].
//
// # Scroll view
//
// A [ScrollView] owns a single container node. The container position is the
// content offset and its uniform scale is the zoom. One finger pans once it
// has moved [MoveInch] inches; two fingers that land before a drag starts
// pinch-zoom around their midpoint. Lifting a moving drag starts inertial
// deceleration at [ScrollDeaccelRate] per tick. Observers implement
// [Delegate].
//
// By default deceleration may carry the content past its bounds and leaves
// it there. Set [ScrollView.SnapBack] to keep it within the overscroll
// insets and animate it back into bounds when it stops.
//
// # Scheduler and actions
//
// Each scene owns a [Scheduler]. [Scheduler.Schedule] registers a per-frame
// callback and [Scheduler.RunAction] runs an [Action] such as [MoveTo],
// [Tween] or a [Sequence]. Both return a [*Task] handle; [Task.Cancel] is
// idempotent. Tasks bound to a paused node do not tick.
//
// # Sprite sheets
//
// A [SpriteSheet] shelf-packs draw nodes and labels into one
// [RenderTexture] when [SpriteSheet.RenderGraphics] is called, then hands out
// [SpriteFrame] rectangles, full size or cut from the center:
//
//	sheet := scrollview.NewSpriteSheet()
//	sheet.AddDrawNode("red", redNode)
//	if err := sheet.RenderGraphics(); err != nil {
//		log.Fatal(err)
//	}
//	frame, err := sheet.SpriteFrameSized("red", scrollview.Size{Width: 100, Height: 100})
//
// # Debug mode
//
// [Scene.SetDebugMode] enables disposed-node checks and tree depth warnings,
// logs packer diagnostics through the standard logger, and prints per-frame
// timings to stderr.
//
// [Ebitengine]: https://ebitengine.org
package scrollview
