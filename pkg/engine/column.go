package engine

import (
	"image/color"
	"math"

	"skyline/pkg/heightfield"
)

// Column paints one screen column from traversal events. Events arrive
// near to far, so the first surface to reach a row owns it: yMax is the
// topmost row painted so far and only rows above it are still open.
type Column struct {
	frame   *Frame
	x       int
	horizon float64
	focal   float64
	eye     float64
	yMax    int

	Events int
	Leaves int
	Pruned int
}

// NewColumn prepares column x of frame for the given camera
func NewColumn(frame *Frame, x int, cam *Camera) *Column {
	return newColumn(frame, x, cam.HorizonRow(), cam.ColumnFocal(x), cam.Position.Y)
}

func newColumn(frame *Frame, x int, horizon, focal, eye float64) *Column {
	return &Column{
		frame:   frame,
		x:       x,
		horizon: horizon,
		focal:   focal,
		eye:     eye,
		yMax:    frame.Height(),
	}
}

// Top returns the topmost painted row, Height when nothing was painted
func (c *Column) Top() int {
	return c.yMax
}

// project returns the screen row of height h at ray distance t > 0
func (c *Column) project(t, h float64) float64 {
	return c.horizon - (h-c.eye)*c.focal/t
}

// row converts a projected row to a pixel row, clamped to [-1, Height]
func (c *Column) row(y float64) int {
	h := float64(c.frame.Height())
	if math.IsNaN(y) || y > h {
		return c.frame.Height()
	}
	if y < -1 {
		return -1
	}
	return int(math.Floor(y))
}

// Visit implements heightfield.Visitor
func (c *Column) Visit(ev heightfield.Event) heightfield.Action {
	c.Events++
	if c.yMax <= 0 {
		if ev.Interior {
			c.Pruned++
		}
		return heightfield.Stop
	}

	if ev.Interior {
		return c.visitInterior(ev)
	}

	c.Leaves++
	top := c.project(ev.Distance, ev.Height)
	if ev.Entry > 0 {
		top = math.Min(top, c.project(ev.Entry, ev.Height))
	}

	y := max(c.row(top), 0)
	if y < c.yMax {
		c.frame.FillSpan(c.x, y, c.yMax, c.shade(ev))
		c.yMax = y
	}
	return heightfield.Continue
}

// visitInterior prunes a node whose bound cannot rise above the painted
// part of the column anywhere inside the node
func (c *Column) visitInterior(ev heightfield.Event) heightfield.Action {
	if ev.Distance <= 0 {
		c.Pruned++
		return heightfield.Stop
	}

	// Below the eye the bound looks highest at the far edge, above the eye
	// at the near edge.
	var top float64
	if ev.Height <= c.eye {
		top = c.project(ev.Distance, ev.Height)
	} else {
		if ev.Entry <= 0 {
			return heightfield.Continue
		}
		top = c.project(ev.Entry, ev.Height)
	}

	if c.row(top) >= c.yMax {
		c.Pruned++
		return heightfield.Stop
	}
	return heightfield.Continue
}

// shade returns the event colour, or a grey level derived from the raw
// height when the field has no ColorMapper
func (c *Column) shade(ev heightfield.Event) color.RGBA {
	if ev.Colored {
		return ev.Color
	}
	g := uint8(int(math.Abs(ev.Height)) & 0xFF)
	return color.RGBA{R: g, G: g, B: g, A: 0xFF}
}
