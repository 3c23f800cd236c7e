// Package overlay tracks the position and width of the free-floating caption
// box. Coordinates are percentages of the container: x and y anchor the box
// centre in [0,100], width is kept in [MinWidth,MaxWidth].
package overlay

import "math"

const (
	MinWidth = 20.0
	MaxWidth = 90.0
)

// Edge names the resize handle a gesture started on.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "none"
	}
}

// State is the gesture the controller is in.
type State int

const (
	Idle State = iota
	Dragging
	ResizingLeft
	ResizingRight
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case ResizingLeft:
		return "resizing-left"
	case ResizingRight:
		return "resizing-right"
	default:
		return "idle"
	}
}

// Geometry is the overlay box as seen by rendering.
type Geometry struct {
	X          float64
	Y          float64
	Width      float64
	IsDragging bool
	IsResizing bool
	ResizeEdge Edge
}

// Right returns the x coordinate of the box's right edge.
func (g Geometry) Right() float64 { return g.X + g.Width/2 }

// Left returns the x coordinate of the box's left edge.
func (g Geometry) Left() float64 { return g.X - g.Width/2 }

// Clamped returns g with position in [0,100] and width in [MinWidth,MaxWidth].
func (g Geometry) Clamped() Geometry {
	g.X = clamp(g.X, 0, 100)
	g.Y = clamp(g.Y, 0, 100)
	g.Width = clamp(g.Width, MinWidth, MaxWidth)
	return g
}

// DefaultGeometry places the box near the bottom centre.
func DefaultGeometry() Geometry {
	return Geometry{X: 50, Y: 80, Width: 40}
}

// Container is the on-screen rectangle pointer coordinates are relative to,
// in device units (pixels or terminal cells).
type Container struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Percent translates a device point into container percentages.
func (c Container) Percent(x, y float64) (float64, float64, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return 0, 0, false
	}
	return (x - c.Left) / c.Width * 100, (y - c.Top) / c.Height * 100, true
}

// Source is the input device a pointer event came from.
type Source int

const (
	Mouse Source = iota
	Touch
)

// Pointer is a device-space pointer or touch position.
type Pointer struct {
	Source Source
	X      float64
	Y      float64
}

// Target is the part of the overlay a gesture starts on.
type Target int

const (
	Body Target = iota
	LeftHandle
	RightHandle
)

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
