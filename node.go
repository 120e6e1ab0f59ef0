package scrollview

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter; the scene graph is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for every
// node kind; Type selects what Draw renders.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). The node's origin is its top-left corner shifted by
	// the pivot; PivotX/PivotY are in local units, not normalized.
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Content size in local units. Drives BoundingBox and clipping.
	Width, Height float64

	// Visibility
	Alpha   float64
	Visible bool
	Color   Color

	// ClipChildren restricts drawing of descendants to the node's
	// (0, 0, Width, Height) rectangle in screen space.
	ClipChildren bool

	// Sprite fields (NodeTypeSprite). A zero SourceRect draws the whole image.
	Image      *ebiten.Image
	SourceRect Rect

	// DrawNode fields (NodeTypeDraw)
	Shapes *DrawNode

	// Label fields (NodeTypeLabel)
	Label *Label

	// Metadata
	UserData any

	paused   bool
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that renders img. A zero src draws the
// whole image; otherwise only the src sub-rectangle (in image pixels).
// The node's content size is the size of the drawn region.
func NewSprite(name string, img *ebiten.Image, src Rect) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img, SourceRect: src}
	nodeDefaults(n)
	if src.IsZero() && img != nil {
		b := img.Bounds()
		n.Width, n.Height = float64(b.Dx()), float64(b.Dy())
	} else {
		n.Width, n.Height = src.Width, src.Height
	}
	return n
}

// SetContentSize sets the node's local Width and Height.
func (n *Node) SetContentSize(s Size) {
	n.Width = s.Width
	n.Height = s.Height
}

// ContentSize returns the node's local Width and Height.
func (n *Node) ContentSize() Size {
	return Size{n.Width, n.Height}
}

// Position returns the node's local position.
func (n *Node) Position() Vec2 {
	return Vec2{n.X, n.Y}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scrollview: cannot add nil child")
	}
	if debugEnabled {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("scrollview: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if debugEnabled {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scrollview: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.Parent = nil
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Pause ---

// Pause stops scheduled tasks and actions targeting this node from ticking.
// Children are not affected.
func (n *Node) Pause() {
	n.paused = true
}

// Resume undoes Pause.
func (n *Node) Resume() {
	n.paused = false
}

// IsPaused reports whether the node is paused.
func (n *Node) IsPaused() bool {
	return n.paused
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Image = nil
	if n.Shapes != nil {
		n.Shapes.release()
		n.Shapes = nil
	}
	if n.Label != nil {
		n.Label.release()
		n.Label = nil
	}
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// isAttached reports whether n is root or a descendant of root.
func (n *Node) isAttached(root *Node) bool {
	return isAncestor(root, n)
}

// isVisibleInTree reports whether n and every ancestor is Visible.
func (n *Node) isVisibleInTree() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}
