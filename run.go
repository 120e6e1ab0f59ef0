package scrollview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/pkg/errors"
)

// RunConfig configures the window and game loop created by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS overlays the current FPS and TPS in the top-left corner.
	ShowFPS bool
	// OnResize is called from Layout whenever the outside size changes,
	// including the first layout.
	OnResize func(width, height int)
	// OnFocusChange is called when the window gains or loses focus. Touches in
	// flight are cancelled before it is called with false.
	OnFocusChange func(focused bool)
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene   *Scene
	cfg     RunConfig
	w, h    int
	focused bool
}

func (g *gameShell) Update() error {
	focused := ebiten.IsFocused()
	if focused != g.focused {
		g.focused = focused
		if !focused {
			g.scene.Touches().CancelAll()
		}
		if g.cfg.OnFocusChange != nil {
			g.cfg.OnFocusChange(focused)
		}
	}
	if !focused {
		return nil
	}
	return g.scene.Update()
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		if g.cfg.OnResize != nil {
			g.cfg.OnResize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs scene until the window is closed or an
// update returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.Errorf("scrollview: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g := &gameShell{scene: scene, cfg: cfg, focused: true}
	if err := ebiten.RunGame(g); err != nil {
		return errors.Wrap(err, "scrollview: run game")
	}
	return nil
}

// DeviceDPI estimates the screen density in dots per inch from the device
// scale factor of the primary monitor, taking 160 DPI as scale 1. Only valid
// while the game loop is running.
func DeviceDPI() float64 {
	m := ebiten.Monitor()
	if m == nil {
		return DefaultDPI
	}
	return DefaultDPI * m.DeviceScaleFactor()
}
