package scrollview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// shapeRect is one recorded rectangle.
type shapeRect struct {
	rect        Rect
	fill        Color
	borderWidth float64
	border      Color
}

// DrawNode records simple vector shapes and rasterizes them on demand into a
// cached image. The owning node's content size grows to cover every shape,
// measured from the local origin.
type DrawNode struct {
	owner  *Node
	rects  []shapeRect
	image  *ebiten.Image
	dirty  bool
	extent Size
}

// NewDrawNode creates a node whose Shapes field is ready for drawing.
func NewDrawNode(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeDraw}
	nodeDefaults(n)
	n.Shapes = &DrawNode{owner: n, dirty: true}
	return n
}

// DrawRect records a filled rectangle with an optional border. A border width
// of zero draws no border. The border is drawn inside r.
func (d *DrawNode) DrawRect(r Rect, fill Color, borderWidth float64, border Color) {
	d.rects = append(d.rects, shapeRect{rect: r, fill: fill, borderWidth: borderWidth, border: border})
	d.extent.Width = math.Max(d.extent.Width, r.MaxX())
	d.extent.Height = math.Max(d.extent.Height, r.MaxY())
	if d.owner != nil {
		d.owner.Width = d.extent.Width
		d.owner.Height = d.extent.Height
	}
	d.dirty = true
}

// FillRect records a filled rectangle without a border.
func (d *DrawNode) FillRect(r Rect, fill Color) {
	d.DrawRect(r, fill, 0, Color{})
}

// Clear removes every recorded shape.
func (d *DrawNode) Clear() {
	d.rects = d.rects[:0]
	d.extent = Size{}
	if d.owner != nil {
		d.owner.Width, d.owner.Height = 0, 0
	}
	d.dirty = true
}

// Len returns the number of recorded shapes.
func (d *DrawNode) Len() int {
	return len(d.rects)
}

// Image returns the rasterized shapes, re-rendering if shapes changed since
// the last call. Returns nil when nothing has been drawn.
func (d *DrawNode) Image() *ebiten.Image {
	if !d.dirty && d.image != nil {
		return d.image
	}
	w := int(math.Ceil(d.extent.Width))
	h := int(math.Ceil(d.extent.Height))
	if w <= 0 || h <= 0 {
		return nil
	}
	if d.image != nil {
		b := d.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			d.image.Deallocate()
			d.image = ebiten.NewImage(w, h)
		} else {
			d.image.Clear()
		}
	} else {
		d.image = ebiten.NewImage(w, h)
	}
	for _, s := range d.rects {
		r := s.rect
		if s.fill.A > 0 {
			vector.DrawFilledRect(d.image, float32(r.X), float32(r.Y),
				float32(r.Width), float32(r.Height), s.fill.RGBA(), false)
		}
		if s.borderWidth > 0 && s.border.A > 0 {
			half := s.borderWidth / 2
			vector.StrokeRect(d.image, float32(r.X+half), float32(r.Y+half),
				float32(r.Width-s.borderWidth), float32(r.Height-s.borderWidth),
				float32(s.borderWidth), s.border.RGBA(), false)
		}
	}
	d.dirty = false
	return d.image
}

func (d *DrawNode) release() {
	if d.image != nil {
		d.image.Deallocate()
		d.image = nil
	}
	d.owner = nil
}
