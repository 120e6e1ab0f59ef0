package scrollview

import "testing"

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("c")
	if n.ScaleX != 1 || n.ScaleY != 1 || n.Alpha != 1 || !n.Visible {
		t.Errorf("defaults: %+v", n)
	}
	if n.Type != NodeTypeContainer || n.ID == 0 {
		t.Errorf("type/id: %v %v", n.Type, n.ID)
	}
}

func TestNewSpriteSize(t *testing.T) {
	sp := NewSprite("s", nil, Rect{X: 4, Y: 4, Width: 30, Height: 20})
	if sp.Width != 30 || sp.Height != 20 {
		t.Errorf("size = %vx%v", sp.Width, sp.Height)
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	a.AddChild(c)
	b.AddChild(c)
	if c.Parent != b || a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Errorf("reparent failed: parent=%v a=%d b=%d", c.Parent, a.NumChildren(), b.NumChildren())
	}
	if b.ChildAt(0) != c {
		t.Error("ChildAt(0) mismatch")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewContainer("p").AddChild(nil) }},
		{"cycle", func() {
			p := NewContainer("p")
			c := NewContainer("c")
			p.AddChild(c)
			c.AddChild(p)
		}},
		{"self", func() {
			p := NewContainer("p")
			p.AddChild(p)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChild(t *testing.T) {
	p := NewContainer("p")
	c1 := NewContainer("c1")
	c2 := NewContainer("c2")
	p.AddChild(c1)
	p.AddChild(c2)
	p.RemoveChild(c1)
	if c1.Parent != nil || p.NumChildren() != 1 || p.ChildAt(0) != c2 {
		t.Error("RemoveChild failed")
	}
	c2.RemoveFromParent()
	if p.NumChildren() != 0 {
		t.Error("RemoveFromParent failed")
	}
	c2.RemoveFromParent() // no-op
}

func TestRemoveChildren(t *testing.T) {
	p := NewContainer("p")
	kids := []*Node{NewContainer("a"), NewContainer("b")}
	for _, k := range kids {
		p.AddChild(k)
	}
	p.RemoveChildren()
	if p.NumChildren() != 0 {
		t.Fatalf("children = %d", p.NumChildren())
	}
	for _, k := range kids {
		if k.Parent != nil || k.IsDisposed() {
			t.Errorf("%s: parent=%v disposed=%v", k.Name, k.Parent, k.IsDisposed())
		}
	}
}

func TestDisposeRecursive(t *testing.T) {
	root := NewContainer("root")
	p := NewContainer("p")
	c := NewDrawNode("c")
	root.AddChild(p)
	p.AddChild(c)
	p.Dispose()
	if !p.IsDisposed() || !c.IsDisposed() {
		t.Error("subtree not disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node still attached")
	}
	if c.Shapes != nil {
		t.Error("draw node shapes not released")
	}
	p.Dispose() // idempotent
}

func TestPauseResume(t *testing.T) {
	n := NewContainer("n")
	n.Pause()
	if !n.IsPaused() {
		t.Error("expected paused")
	}
	n.Resume()
	if n.IsPaused() {
		t.Error("expected resumed")
	}
}

func TestVisibleInTree(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	if !leaf.isVisibleInTree() {
		t.Error("expected visible")
	}
	mid.Visible = false
	if leaf.isVisibleInTree() {
		t.Error("hidden ancestor should hide leaf")
	}
	if !leaf.isAttached(root) || leaf.isAttached(NewContainer("other")) {
		t.Error("isAttached mismatch")
	}
}
