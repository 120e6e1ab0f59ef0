package scrollview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// MaxTextureSize is the largest width or height accepted by NewRenderTexture.
const MaxTextureSize = 4096

// ErrInvalidTextureSize is returned when a render texture cannot be allocated
// at the requested dimensions.
var ErrInvalidTextureSize = errors.New("scrollview: invalid render texture size")

// RenderTexture is a persistent offscreen canvas owned by the caller.
//
// Nodes are composited into it between Begin and End with Visit. Visit uses
// a bottom-left origin for placement, the way a GL framebuffer does: a node
// whose bounding box starts at Y=0 touches the bottom edge of the texture.
// Node content itself is drawn upright.
type RenderTexture struct {
	image     *ebiten.Image
	w, h      int
	capturing bool
}

// NewRenderTexture creates an offscreen canvas of the given size.
func NewRenderTexture(w, h int) (*RenderTexture, error) {
	if w <= 0 || h <= 0 || w > MaxTextureSize || h > MaxTextureSize {
		return nil, errors.Wrapf(ErrInvalidTextureSize, "%dx%d", w, h)
	}
	return &RenderTexture{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}, nil
}

// Image returns the underlying *ebiten.Image.
func (rt *RenderTexture) Image() *ebiten.Image {
	return rt.image
}

// Width returns the texture width in pixels.
func (rt *RenderTexture) Width() int {
	return rt.w
}

// Height returns the texture height in pixels.
func (rt *RenderTexture) Height() int {
	return rt.h
}

// Clear fills the texture with transparent black.
func (rt *RenderTexture) Clear() {
	rt.image.Clear()
}

// Begin starts a capture pass, clearing previous contents.
func (rt *RenderTexture) Begin() {
	rt.image.Clear()
	rt.capturing = true
}

// Capturing reports whether Begin has been called without a matching End.
func (rt *RenderTexture) Capturing() bool {
	return rt.capturing
}

// Visit renders n and its subtree into the texture. n's own parent chain is
// ignored; its local transform is interpreted in bottom-left texture space.
// Panics if called outside Begin/End.
func (rt *RenderTexture) Visit(n *Node) {
	if !rt.capturing {
		panic("scrollview: RenderTexture.Visit called outside Begin/End")
	}
	bb := n.BoundingBox()
	dy := float64(rt.h) - bb.MaxY() - bb.Y
	drawTree(rt.image, n, [6]float64{1, 0, 0, 1, 0, dy}, 1)
}

// End finishes the capture pass.
func (rt *RenderTexture) End() {
	rt.capturing = false
}

// NewSpriteNode creates a sprite node displaying the whole texture.
func (rt *RenderTexture) NewSpriteNode(name string) *Node {
	return NewSprite(name, rt.image, Rect{})
}

// Dispose deallocates the underlying image. The RenderTexture should not be
// used after calling Dispose.
func (rt *RenderTexture) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
}
