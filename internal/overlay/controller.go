package overlay

// Controller is the drag and resize state machine for the overlay box. At
// most one gesture is in progress; a press while another gesture runs is
// ignored. Every update leaves the geometry clamped.
type Controller struct {
	geom    Geometry
	state   State
	enabled bool
	source  Source

	// drag baseline, in container percentages
	startX, startY float64
	lastX, lastY   float64

	// resize snapshot
	startPointerX  float64
	startWidth     float64
	containerWidth float64
	initialX       float64
}

func NewController(g Geometry) *Controller {
	g = g.Clamped()
	g.IsDragging, g.IsResizing, g.ResizeEdge = false, false, EdgeNone
	return &Controller{geom: g, lastX: g.X, lastY: g.Y}
}

// Geometry returns the current box geometry.
func (c *Controller) Geometry() Geometry { return c.geom }

func (c *Controller) State() State { return c.state }

// Active reports whether a gesture is in progress. Text selection and
// highlight side effects are suppressed while it is.
func (c *Controller) Active() bool { return c.state != Idle }

func (c *Controller) Enabled() bool { return c.enabled }

// SetEnabled switches gesture handling on while captions are in overlay
// placement. Disabling ends any gesture in progress.
func (c *Controller) SetEnabled(on bool) {
	if !on && c.state != Idle {
		c.PointerUp()
	}
	c.enabled = on
}

// PointerDown starts a drag on the body or a resize on an edge handle. It
// returns false when the press is ignored.
func (c *Controller) PointerDown(target Target, p Pointer, box Container) bool {
	if !c.enabled || c.state != Idle {
		return false
	}

	switch target {
	case Body:
		px, py, ok := box.Percent(p.X, p.Y)
		if !ok {
			return false
		}
		c.startX, c.startY = px, py
		c.lastX, c.lastY = c.geom.X, c.geom.Y
		c.state = Dragging
		c.geom.IsDragging = true
	case LeftHandle, RightHandle:
		if box.Width <= 0 {
			return false
		}
		c.startPointerX = p.X
		c.startWidth = c.geom.Width
		c.containerWidth = box.Width
		c.initialX = c.geom.X
		c.geom.IsResizing = true
		if target == LeftHandle {
			c.state, c.geom.ResizeEdge = ResizingLeft, EdgeLeft
		} else {
			c.state, c.geom.ResizeEdge = ResizingRight, EdgeRight
		}
	default:
		return false
	}
	c.source = p.Source
	return true
}

// PointerMove updates the geometry for the gesture in progress. box is only
// consulted while dragging; a resize keeps the container width it started
// with.
func (c *Controller) PointerMove(p Pointer, box Container) bool {
	switch c.state {
	case Dragging:
		px, py, ok := box.Percent(p.X, p.Y)
		if !ok {
			return false
		}
		c.geom.X = clamp(c.lastX+(px-c.startX), 0, 100)
		c.geom.Y = clamp(c.lastY+(py-c.startY), 0, 100)
		return true
	case ResizingRight:
		c.geom.Width = clamp(c.startWidth+c.deltaWidth(p.X), MinWidth, MaxWidth)
		return true
	case ResizingLeft:
		width := clamp(c.startWidth-c.deltaWidth(p.X), MinWidth, MaxWidth)
		right := c.initialX + c.startWidth/2
		c.geom.Width = width
		c.geom.X = clamp(right-width/2, width/2, 100-width/2)
		return true
	}
	return false
}

// PointerUp ends the gesture in progress. A finished drag becomes the
// baseline for the next one.
func (c *Controller) PointerUp() bool {
	switch c.state {
	case Dragging:
		c.lastX, c.lastY = c.geom.X, c.geom.Y
		c.geom.IsDragging = false
	case ResizingLeft, ResizingRight:
		c.startPointerX, c.startWidth, c.containerWidth, c.initialX = 0, 0, 0, 0
		c.geom.IsResizing = false
		c.geom.ResizeEdge = EdgeNone
		c.lastX, c.lastY = c.geom.X, c.geom.Y
	default:
		return false
	}
	c.state = Idle
	return true
}

// GestureSource returns the device of the current or last gesture.
func (c *Controller) GestureSource() Source { return c.source }

func (c *Controller) deltaWidth(pointerX float64) float64 {
	return (pointerX - c.startPointerX) / c.containerWidth * 100
}
