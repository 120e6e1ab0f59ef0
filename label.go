package scrollview

import (
	"bytes"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/pkg/errors"
)

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, errors.Wrap(err, "scrollview: parse TTF data")
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// Label is a single run of text rendered into a cached image. The owning
// node's content size is the measured text size.
type Label struct {
	owner   *Node
	content string
	font    *TTFFont
	color   Color
	image   *ebiten.Image
	dirty   bool
}

// NewLabel creates a text node. font may be nil, in which case the label has
// zero size and draws nothing until SetFont is called.
func NewLabel(name, content string, font *TTFFont) *Node {
	n := &Node{Name: name, Type: NodeTypeLabel}
	nodeDefaults(n)
	n.Label = &Label{owner: n, content: content, font: font, color: ColorWhite, dirty: true}
	n.Label.measure()
	return n
}

// Text returns the label content.
func (l *Label) Text() string {
	return l.content
}

// SetText replaces the label content.
func (l *Label) SetText(s string) {
	if s == l.content {
		return
	}
	l.content = s
	l.dirty = true
	l.measure()
}

// SetFont replaces the font.
func (l *Label) SetFont(f *TTFFont) {
	l.font = f
	l.dirty = true
	l.measure()
}

// SetColor sets the fill color of the glyphs.
func (l *Label) SetColor(c Color) {
	l.color = c
	l.dirty = true
}

func (l *Label) measure() {
	if l.owner == nil {
		return
	}
	if l.font == nil || l.content == "" {
		l.owner.Width, l.owner.Height = 0, 0
		return
	}
	w, h := l.font.MeasureString(l.content)
	l.owner.Width, l.owner.Height = math.Ceil(w), math.Ceil(h)
}

// Image returns the rendered text, re-rendering when content, font or color
// changed. Returns nil for an empty label.
func (l *Label) Image() *ebiten.Image {
	if !l.dirty && l.image != nil {
		return l.image
	}
	if l.font == nil || l.owner == nil || l.owner.Width <= 0 || l.owner.Height <= 0 {
		return nil
	}
	w, h := int(l.owner.Width), int(l.owner.Height)
	if l.image != nil {
		b := l.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			l.image.Deallocate()
			l.image = ebiten.NewImage(w, h)
		} else {
			l.image.Clear()
		}
	} else {
		l.image = ebiten.NewImage(w, h)
	}
	op := &text.DrawOptions{}
	l.color.scale(&op.ColorScale, 1)
	op.LineSpacing = l.font.lh
	text.Draw(l.image, l.content, l.font.face, op)
	l.dirty = false
	return l.image
}

func (l *Label) release() {
	if l.image != nil {
		l.image.Deallocate()
		l.image = nil
	}
	l.owner = nil
}
