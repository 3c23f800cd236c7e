package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aschmelyun/captioncraft/internal/overlay"
)

var overlayBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("8")).
	Padding(0, 1)

var activeOverlayBox = overlayBox.BorderForeground(lipgloss.Color("3"))

// RenderLine draws a styled caption line for the terminal. A positive width
// wraps the line and aligns it to the writing direction.
func RenderLine(l Line, width int) string {
	var b strings.Builder
	for _, seg := range l.Segments {
		st := lipgloss.NewStyle().Bold(l.Style.Bold).Underline(seg.Underline)
		if seg.Color != "" {
			st = st.Foreground(lipgloss.Color(seg.Color))
		}
		b.WriteString(st.Render(spaceOut(seg.Content, l.Style.Spacing)))
	}
	out := b.String()
	if width <= 0 {
		return out
	}
	align := lipgloss.Left
	if l.Style.Direction == "rtl" {
		align = lipgloss.Right
	}
	return lipgloss.NewStyle().Width(width).Align(align).Render(out)
}

func spaceOut(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	gap := strings.Repeat(" ", n)
	var b strings.Builder
	for i, r := range []rune(s) {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Rect is a drawn region in terminal cells.
type Rect struct {
	Left, Top, Width, Height int
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Hit maps a cell to the overlay part under it: the first and last columns
// are the resize handles, everything else is the body.
func (r Rect) Hit(x, y int) (overlay.Target, bool) {
	if r.Empty() || x < r.Left || x >= r.Left+r.Width || y < r.Top || y >= r.Top+r.Height {
		return overlay.Body, false
	}
	switch x {
	case r.Left:
		return overlay.LeftHandle, true
	case r.Left + r.Width - 1:
		return overlay.RightHandle, true
	}
	return overlay.Body, true
}

// OverlayWidth converts a width percentage into box columns for a canvas of
// the given width.
func OverlayWidth(g overlay.Geometry, canvasWidth int) int {
	w := int(math.Round(g.Width / 100 * float64(canvasWidth)))
	if w < 4 {
		w = 4
	}
	if w > canvasWidth {
		w = canvasWidth
	}
	return w
}

// PlaceOverlay draws lines inside the overlay box, positioned on a
// width×height canvas by the geometry's centre anchor. The box is kept on
// the canvas. It returns the canvas and the box's region.
func PlaceOverlay(lines []Line, g overlay.Geometry, width, height int) (string, Rect) {
	if width <= 0 || height <= 0 {
		return "", Rect{}
	}
	outer := OverlayWidth(g, width)
	inner := outer - 4
	if inner < 1 {
		inner = 1
	}

	rendered := make([]string, 0, len(lines))
	for _, l := range lines {
		rendered = append(rendered, RenderLine(l, inner))
	}
	if len(rendered) == 0 {
		rendered = append(rendered, strings.Repeat(" ", inner))
	}

	style := overlayBox
	if g.IsDragging || g.IsResizing {
		style = activeOverlayBox
	}
	box := style.Width(inner + 2).Render(strings.Join(rendered, "\n"))
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)

	left := clampInt(int(math.Round(g.X/100*float64(width)-float64(bw)/2)), 0, width-bw)
	top := clampInt(int(math.Round(g.Y/100*float64(height)-float64(bh)/2)), 0, height-bh)

	rows := make([]string, height)
	pad := strings.Repeat(" ", left)
	for i, row := range strings.Split(box, "\n") {
		if top+i < height {
			rows[top+i] = pad + row
		}
	}
	return strings.Join(rows, "\n"), Rect{Left: left, Top: top, Width: bw, Height: bh}
}

func clampInt(x, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
