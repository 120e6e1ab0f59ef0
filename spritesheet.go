package scrollview

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// MaxAtlasWidth is the row width at which the sprite sheet packer wraps.
const MaxAtlasWidth = 4000

// atlasPadding separates packed items horizontally and vertically.
const atlasPadding = 1

var (
	// ErrEmptySheet is returned by RenderGraphics when nothing was added.
	ErrEmptySheet = errors.New("scrollview: sprite sheet is empty")
	// ErrAtlasTooLarge is returned when the packed layout does not fit in a
	// single texture.
	ErrAtlasTooLarge = errors.New("scrollview: packed atlas exceeds maximum texture size")
	// ErrAtlasAllocation is returned when the atlas texture cannot be created.
	ErrAtlasAllocation = errors.New("scrollview: atlas allocation failed")

	// ErrNotRendered is returned by frame lookups before RenderGraphics succeeds.
	ErrNotRendered = errors.New("scrollview: sprite sheet not rendered")
	// ErrSpriteNotFound is returned for keys missing from the rendered atlas.
	ErrSpriteNotFound = errors.New("scrollview: sprite not found")
	// ErrSpriteTooLarge is returned when a requested frame size exceeds the
	// packed rectangle.
	ErrSpriteTooLarge = errors.New("scrollview: requested sprite size too large")
)

// SpriteKey identifies a graphic within a SpriteSheet.
type SpriteKey string

// Graphic is a node the packer can render: either a DrawNode or a Label node.
type Graphic struct {
	node *Node
}

// Node returns the wrapped node.
func (g Graphic) Node() *Node {
	return g.node
}

// IsLabel reports whether g wraps a label.
func (g Graphic) IsLabel() bool {
	return g.node != nil && g.node.Type == NodeTypeLabel
}

// SpriteFrame is a rectangle on an atlas texture.
type SpriteFrame struct {
	Texture *ebiten.Image
	Rect    Rect
}

// Image returns the frame's sub-image of the atlas.
func (f SpriteFrame) Image() *ebiten.Image {
	r := f.Rect
	return f.Texture.SubImage(image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.MaxX())), int(math.Round(r.MaxY())),
	)).(*ebiten.Image)
}

// NewSprite creates a sprite node displaying the frame.
func (f SpriteFrame) NewSprite(name string) *Node {
	return NewSprite(name, f.Texture, f.Rect)
}

// SpriteSheet packs drawn shapes and labels into one atlas texture at
// runtime and hands out frames for them.
//
// Add every graphic, call RenderGraphics, then query frames. Graphics added
// after a render only appear once RenderGraphics runs again, which re-packs
// every key from scratch.
type SpriteSheet struct {
	draws  []sheetEntry
	labels []sheetEntry
	keys   map[SpriteKey]struct{}

	rects    map[SpriteKey]Rect
	atlas    *RenderTexture
	rendered bool
}

type sheetEntry struct {
	key     SpriteKey
	graphic Graphic
}

// NewSpriteSheet creates an empty sprite sheet.
func NewSpriteSheet() *SpriteSheet {
	return &SpriteSheet{
		keys:  make(map[SpriteKey]struct{}),
		rects: make(map[SpriteKey]Rect),
	}
}

// AddDrawNode registers a DrawNode under key. It returns false, changing
// nothing, when key is already used or n is not a DrawNode.
func (s *SpriteSheet) AddDrawNode(key SpriteKey, n *Node) bool {
	if n == nil || n.Type != NodeTypeDraw || s.has(key) {
		return false
	}
	s.keys[key] = struct{}{}
	s.draws = append(s.draws, sheetEntry{key, Graphic{n}})
	return true
}

// AddLabel registers a Label node under key. It returns false, changing
// nothing, when key is already used or n is not a Label.
func (s *SpriteSheet) AddLabel(key SpriteKey, n *Node) bool {
	if n == nil || n.Type != NodeTypeLabel || s.has(key) {
		return false
	}
	s.keys[key] = struct{}{}
	s.labels = append(s.labels, sheetEntry{key, Graphic{n}})
	return true
}

func (s *SpriteSheet) has(key SpriteKey) bool {
	_, ok := s.keys[key]
	return ok
}

// Graphic returns the graphic registered under key.
func (s *SpriteSheet) Graphic(key SpriteKey) (Graphic, bool) {
	for _, list := range [][]sheetEntry{s.draws, s.labels} {
		for _, e := range list {
			if e.key == key {
				return e.graphic, true
			}
		}
	}
	return Graphic{}, false
}

// Len returns the number of registered graphics.
func (s *SpriteSheet) Len() int {
	return len(s.draws) + len(s.labels)
}

// Rendered reports whether a RenderGraphics call has succeeded.
func (s *SpriteSheet) Rendered() bool {
	return s.rendered
}

// Atlas returns the texture of the last successful render, or nil.
func (s *SpriteSheet) Atlas() *ebiten.Image {
	if s.atlas == nil {
		return nil
	}
	return s.atlas.Image()
}

// packLayout is the result of shelf packing, in top-down layout space.
type packLayout struct {
	rects         map[SpriteKey]Rect
	order         []sheetEntry
	width, height int
}

// pack lays entries out left to right in rows no wider than MaxAtlasWidth,
// draw nodes first, labels after, each in insertion order.
func (s *SpriteSheet) pack() packLayout {
	l := packLayout{rects: make(map[SpriteKey]Rect, s.Len())}
	var x, rowTop float64
	highestY := 0
	right := 0.0

	for _, list := range [][]sheetEntry{s.draws, s.labels} {
		for _, e := range list {
			sz := e.graphic.node.BoundingBox().Size()
			if x+sz.Width > MaxAtlasWidth {
				x = 0
				rowTop = float64(highestY)
			}
			if rowTop+sz.Height > float64(highestY) {
				highestY = int(rowTop + sz.Height + atlasPadding)
			}
			r := Rect{X: x, Y: rowTop, Width: sz.Width, Height: sz.Height}
			l.rects[e.key] = r
			l.order = append(l.order, e)
			right = math.Max(right, r.MaxX())
			x += sz.Width + atlasPadding
		}
	}
	l.width = int(math.Ceil(right))
	l.height = highestY
	return l
}

// RenderGraphics packs every registered graphic into a new atlas. On success
// the atlas and rectangles of any previous render are replaced; on failure
// they are left untouched and the error wraps ErrEmptySheet,
// ErrAtlasTooLarge or ErrAtlasAllocation.
//
// Rectangles are reported in image space, top-left origin: the layout is
// computed top-down, rendered into a bottom-left origin texture, and every
// rectangle is then mirrored vertically (y' = atlasHeight - maxY).
func (s *SpriteSheet) RenderGraphics() error {
	if err := s.renderGraphics(); err != nil {
		logf("render graphics: %v", err)
		return err
	}
	return nil
}

func (s *SpriteSheet) renderGraphics() error {
	if s.Len() == 0 {
		return ErrEmptySheet
	}
	l := s.pack()
	if l.width > MaxTextureSize || l.height > MaxTextureSize {
		return errors.Wrapf(ErrAtlasTooLarge, "%dx%d", l.width, l.height)
	}
	rt, err := NewRenderTexture(l.width, l.height)
	if err != nil {
		return errors.Wrap(ErrAtlasAllocation, err.Error())
	}

	rt.Begin()
	for _, e := range l.order {
		n := e.graphic.node
		r := l.rects[e.key]
		oldX, oldY := n.X, n.Y
		bb := n.BoundingBox()
		n.SetPosition(n.X+r.X-bb.X, n.Y+r.Y-bb.Y)
		rt.Visit(n)
		n.SetPosition(oldX, oldY)
	}
	rt.End()

	flipped := make(map[SpriteKey]Rect, len(l.rects))
	for k, r := range l.rects {
		flipped[k] = Rect{X: r.X, Y: float64(l.height) - r.MaxY(), Width: r.Width, Height: r.Height}
	}

	s.rects = flipped
	s.atlas = rt
	s.rendered = true
	logf("packed %d sprites into %dx%d atlas", len(flipped), l.width, l.height)
	return nil
}

// SpriteFrame returns the full packed rectangle for key.
func (s *SpriteSheet) SpriteFrame(key SpriteKey) (SpriteFrame, error) {
	if !s.rendered {
		return SpriteFrame{}, ErrNotRendered
	}
	r, ok := s.rects[key]
	if !ok {
		return SpriteFrame{}, errors.Wrapf(ErrSpriteNotFound, "%q", string(key))
	}
	return SpriteFrame{Texture: s.atlas.Image(), Rect: r}, nil
}

// SpriteFrameSized returns a size-sized rectangle centered in key's packed
// rectangle. It fails with ErrSpriteTooLarge when size exceeds the packed
// rectangle on either axis.
func (s *SpriteSheet) SpriteFrameSized(key SpriteKey, size Size) (SpriteFrame, error) {
	if !s.rendered {
		logf("sprites not rendered yet")
		return SpriteFrame{}, ErrNotRendered
	}
	r, ok := s.rects[key]
	if !ok {
		logf("sprite %q not found", string(key))
		return SpriteFrame{}, errors.Wrapf(ErrSpriteNotFound, "%q", string(key))
	}
	if size.Width > r.Width || size.Height > r.Height {
		logf("requested size %gx%g too big for sprite %q (%gx%g)",
			size.Width, size.Height, string(key), r.Width, r.Height)
		return SpriteFrame{}, errors.Wrapf(ErrSpriteTooLarge, "%q: %gx%g > %gx%g",
			string(key), size.Width, size.Height, r.Width, r.Height)
	}
	c := r.Center()
	return SpriteFrame{
		Texture: s.atlas.Image(),
		Rect:    Rect{X: c.X - size.Width/2, Y: c.Y - size.Height/2, Width: size.Width, Height: size.Height},
	}, nil
}

// RectOnTexture returns key's rectangle on the atlas. The rectangle is only
// known after a successful render.
func (s *SpriteSheet) RectOnTexture(key SpriteKey) (Rect, bool) {
	r, ok := s.rects[key]
	if !ok {
		logf("key for sprite %q not found", string(key))
	}
	return r, ok
}

// Dispose releases the atlas texture. Frames handed out earlier become
// invalid.
func (s *SpriteSheet) Dispose() {
	if s.atlas != nil {
		s.atlas.Dispose()
		s.atlas = nil
	}
	s.rects = make(map[SpriteKey]Rect)
	s.rendered = false
}
