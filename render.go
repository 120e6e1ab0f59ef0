package scrollview

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawTree walks the node tree depth-first in child order and draws every
// visible node onto target. Children of a ClipChildren node are drawn into a
// sub-image covering the node's screen-space bounds.
func drawTree(target *ebiten.Image, n *Node, parentTransform [6]float64, parentAlpha float64) {
	if !n.Visible || n.disposed {
		return
	}
	world := multiplyAffine(parentTransform, computeLocalTransform(n))
	alpha := parentAlpha * n.Alpha

	drawNodeImage(target, n, world, alpha)

	if len(n.children) == 0 {
		return
	}
	childTarget := target
	if n.ClipChildren {
		clip := clipRect(world, n, target.Bounds())
		if clip.Empty() {
			return
		}
		childTarget = target.SubImage(clip).(*ebiten.Image)
	}
	for _, child := range n.children {
		drawTree(childTarget, child, world, alpha)
	}
}

// clipRect returns the integer screen rectangle covering n's content bounds,
// limited to bounds.
func clipRect(world [6]float64, n *Node, bounds image.Rectangle) image.Rectangle {
	r := transformRect(world, Rect{Width: n.Width, Height: n.Height})
	ir := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.MaxX())), int(math.Ceil(r.MaxY())),
	)
	return ir.Intersect(bounds)
}

// nodeImage returns the image a node renders, or nil for containers and
// empty drawables.
func nodeImage(n *Node) *ebiten.Image {
	switch n.Type {
	case NodeTypeSprite:
		if n.Image == nil {
			return nil
		}
		if n.SourceRect.IsZero() {
			return n.Image
		}
		r := n.SourceRect
		return n.Image.SubImage(image.Rect(
			int(r.X), int(r.Y), int(r.MaxX()), int(r.MaxY()),
		)).(*ebiten.Image)
	case NodeTypeDraw:
		if n.Shapes == nil {
			return nil
		}
		return n.Shapes.Image()
	case NodeTypeLabel:
		if n.Label == nil {
			return nil
		}
		return n.Label.Image()
	}
	return nil
}

func drawNodeImage(target *ebiten.Image, n *Node, world [6]float64, alpha float64) {
	img := nodeImage(n)
	if img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(world)
	n.Color.scale(&op.ColorScale, alpha)
	target.DrawImage(img, &op)
}
