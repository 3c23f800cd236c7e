package overlay

import (
	"math"
	"testing"
)

var screen = Container{Left: 0, Top: 0, Width: 200, Height: 100}

func newEnabled(g Geometry) *Controller {
	c := NewController(g)
	c.SetEnabled(true)
	return c
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDrag_MovesByPercentDelta(t *testing.T) {
	c := newEnabled(Geometry{X: 50, Y: 80, Width: 40})

	if !c.PointerDown(Body, Pointer{X: 100, Y: 50}, screen) {
		t.Fatal("press ignored")
	}
	if c.State() != Dragging || !c.Geometry().IsDragging {
		t.Fatalf("state = %v", c.State())
	}
	c.PointerMove(Pointer{X: 120, Y: 40}, screen) // +10%, -10%
	g := c.Geometry()
	if !near(g.X, 60) || !near(g.Y, 70) {
		t.Fatalf("geometry after move = %+v", g)
	}
	c.PointerUp()
	if c.State() != Idle || c.Geometry().IsDragging {
		t.Fatal("expected idle after release")
	}

	// second gesture continues from the committed position
	c.PointerDown(Body, Pointer{X: 0, Y: 0}, screen)
	c.PointerMove(Pointer{X: 20, Y: 0}, screen)
	if g := c.Geometry(); !near(g.X, 70) || !near(g.Y, 70) {
		t.Fatalf("second drag = %+v", g)
	}
}

func TestDrag_ClampsHugeDeltas(t *testing.T) {
	c := newEnabled(DefaultGeometry())
	c.PointerDown(Body, Pointer{X: 100, Y: 50}, screen)
	for _, p := range []Pointer{{X: 1e9, Y: 1e9}, {X: -1e9, Y: -1e9}, {X: 1e9, Y: -1e9}} {
		c.PointerMove(p, screen)
		g := c.Geometry()
		if g.X < 0 || g.X > 100 || g.Y < 0 || g.Y > 100 {
			t.Fatalf("out of bounds geometry %+v", g)
		}
	}
}

func TestDrag_IgnoredOutsideOverlayPlacement(t *testing.T) {
	c := NewController(DefaultGeometry())
	if c.PointerDown(Body, Pointer{X: 10, Y: 10}, screen) {
		t.Fatal("press accepted while disabled")
	}
	if c.PointerMove(Pointer{X: 50, Y: 50}, screen) {
		t.Fatal("move accepted while idle")
	}
}

func TestGesture_MutualExclusion(t *testing.T) {
	c := newEnabled(DefaultGeometry())
	c.PointerDown(LeftHandle, Pointer{X: 60}, screen)
	if c.PointerDown(Body, Pointer{X: 10, Y: 10}, screen) {
		t.Fatal("second gesture accepted")
	}
	if c.State() != ResizingLeft {
		t.Fatalf("state = %v", c.State())
	}
}

func TestResizeRight_ClampsWidth(t *testing.T) {
	c := newEnabled(Geometry{X: 50, Y: 50, Width: 40})
	c.PointerDown(RightHandle, Pointer{X: 140}, screen)

	c.PointerMove(Pointer{X: 160}, screen) // +10%
	if g := c.Geometry(); !near(g.Width, 50) || !near(g.X, 50) {
		t.Fatalf("after +10%% = %+v", g)
	}
	c.PointerMove(Pointer{X: 1e6}, screen)
	if g := c.Geometry(); g.Width != MaxWidth {
		t.Fatalf("width = %v, want %v", g.Width, MaxWidth)
	}
	c.PointerMove(Pointer{X: -1e6}, screen)
	if g := c.Geometry(); g.Width != MinWidth {
		t.Fatalf("width = %v, want %v", g.Width, MinWidth)
	}
	c.PointerUp()
	if g := c.Geometry(); g.IsResizing || g.ResizeEdge != EdgeNone {
		t.Fatalf("resize flags left set: %+v", g)
	}
}

func TestResizeLeft_KeepsRightEdge(t *testing.T) {
	for _, dx := range []float64{-30, -10, -1, 0, 5, 20, 35} {
		c := newEnabled(Geometry{X: 50, Y: 50, Width: 40})
		c.PointerDown(LeftHandle, Pointer{X: 60}, screen)
		c.PointerMove(Pointer{X: 60 + dx*2}, screen) // dx percent of a 200-wide container

		g := c.Geometry()
		wantWidth := clamp(40-dx, MinWidth, MaxWidth)
		if !near(g.Width, wantWidth) {
			t.Fatalf("dx=%v width = %v, want %v", dx, g.Width, wantWidth)
		}
		if !near(g.Right(), 70) {
			t.Fatalf("dx=%v right edge = %v, want 70", dx, g.Right())
		}
	}
}

func TestResizeLeft_ClampsPositionOnceWidthMaxes(t *testing.T) {
	c := newEnabled(Geometry{X: 50, Y: 50, Width: 40})
	c.PointerDown(LeftHandle, Pointer{X: 60}, screen)
	c.PointerMove(Pointer{X: -1e6}, screen)

	g := c.Geometry()
	if g.Width != MaxWidth {
		t.Fatalf("width = %v", g.Width)
	}
	if g.X < g.Width/2 || g.X > 100-g.Width/2 {
		t.Fatalf("x = %v outside [%v,%v]", g.X, g.Width/2, 100-g.Width/2)
	}
}

func TestMouseAndTouchProduceSameGeometry(t *testing.T) {
	run := func(src Source) Geometry {
		c := newEnabled(DefaultGeometry())
		c.PointerDown(Body, Pointer{Source: src, X: 30, Y: 20}, screen)
		c.PointerMove(Pointer{Source: src, X: 70, Y: 35}, screen)
		c.PointerUp()
		c.PointerDown(RightHandle, Pointer{Source: src, X: 150}, screen)
		c.PointerMove(Pointer{Source: src, X: 130}, screen)
		c.PointerUp()
		return c.Geometry()
	}
	if m, tch := run(Mouse), run(Touch); m != tch {
		t.Fatalf("mouse %+v != touch %+v", m, tch)
	}
}

func TestNewController_ClampsInitialGeometry(t *testing.T) {
	g := NewController(Geometry{X: -5, Y: 150, Width: 5}).Geometry()
	if g.X != 0 || g.Y != 100 || g.Width != MinWidth {
		t.Fatalf("unexpected clamp %+v", g)
	}
}

func TestSetEnabled_FalseEndsGesture(t *testing.T) {
	c := newEnabled(DefaultGeometry())
	c.PointerDown(Body, Pointer{X: 10, Y: 10}, screen)
	c.SetEnabled(false)
	if c.Active() {
		t.Fatal("gesture still active")
	}
}

func TestZeroSizedContainerIgnored(t *testing.T) {
	c := newEnabled(DefaultGeometry())
	if c.PointerDown(Body, Pointer{X: 1, Y: 1}, Container{}) {
		t.Fatal("press on empty container accepted")
	}
	if c.PointerDown(RightHandle, Pointer{X: 1}, Container{}) {
		t.Fatal("resize on empty container accepted")
	}
}
