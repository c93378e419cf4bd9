package heightfield

import "image/color"

// Action is returned by a Visitor to steer the hierarchical traversal
type Action int

const (
	// Continue descends into the children of an interior node
	Continue Action = iota
	// Stop prunes the subtree below an interior node
	Stop
)

// Event is one surface crossing reported by a traversal
type Event struct {
	Distance float64 // parametric exit time of the crossed cell
	Entry    float64 // parametric entry time of the crossed cell
	Height   float64 // exact height at a leaf, upper bound at an interior node
	Interior bool    // raised at an interior node rather than a leaf

	Color   color.RGBA
	Colored bool // Color was produced by the field's ColorMapper

	Level int
	X, Y  int
}

// Visitor receives traversal events. The returned Action is honoured for
// interior events of the hierarchical traversal and ignored everywhere else.
type Visitor interface {
	Visit(ev Event) Action
}

// VisitorFunc adapts a function to the Visitor interface
type VisitorFunc func(ev Event) Action

// Visit calls f(ev)
func (f VisitorFunc) Visit(ev Event) Action {
	return f(ev)
}

// Sampler produces the finest-level height of cell (x, y)
type Sampler interface {
	Sample(x, y int) float64
}

// SamplerFunc adapts a function to the Sampler interface
type SamplerFunc func(x, y int) float64

// Sample calls f(x, y)
func (f SamplerFunc) Sample(x, y int) float64 {
	return f(x, y)
}

// ColorMapper maps a height to a colour
type ColorMapper interface {
	Color(height float64) color.RGBA
}

// ColorFunc adapts a function to the ColorMapper interface
type ColorFunc func(height float64) color.RGBA

// Color calls f(height)
func (f ColorFunc) Color(height float64) color.RGBA {
	return f(height)
}
