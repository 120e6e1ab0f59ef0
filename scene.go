package scrollview

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, the per-frame
// scheduler and the touch dispatcher.
type Scene struct {
	root      *Node
	scheduler *Scheduler
	touches   *TouchDispatcher
	debug     bool

	// ClearColor fills the screen before the tree is drawn. The zero value
	// leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	updateFunc      func() error
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	return &Scene{
		root:          root,
		scheduler:     NewScheduler(),
		touches:       NewTouchDispatcher(root),
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Scheduler returns the scene's per-frame scheduler.
func (s *Scene) Scheduler() *Scheduler {
	return s.scheduler
}

// Touches returns the scene's touch dispatcher.
func (s *Scene) Touches() *TouchDispatcher {
	return s.touches
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are printed, packer diagnostics are
// logged, and per-frame timing stats are written to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	SetDebugLogging(enabled)
}

// Update polls input, then advances scheduled tasks by one tick of 1/TPS
// seconds. Call it from ebiten.Game.Update.
func (s *Scene) Update() error {
	return s.step(1.0/float64(ebiten.TPS()), true)
}

// Step advances the scene by dt seconds without reading real input. Queued
// injected touches are still consumed, one per call.
func (s *Scene) Step(dt float64) error {
	return s.step(dt, false)
}

func (s *Scene) step(dt float64, poll bool) error {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if poll {
		s.touches.Poll()
	} else {
		s.touches.processInjected()
	}

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	s.scheduler.Update(dt)

	if s.debug {
		stats.scheduleTime = time.Since(t0)
		stats.tasks = s.scheduler.Len()
		stats.nodes = countNodes(s.root)
		s.debugLog(stats)
	}

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw renders the tree onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA())
	}
	drawTree(screen, s.root, identityTransform, 1)
	s.flushScreenshots(screen)
}
