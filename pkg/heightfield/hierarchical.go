package heightfield

import (
	"cmp"
	"slices"
)

// child is one of the four quadrants of a node, as a cell offset and a
// direction from the parent centre.
type child struct {
	dx, dy int
	offset Vec2
}

// quadrants lists the children winding around the node from the -x,-z corner.
var quadrants = [4]child{
	{dx: 0, dy: 0, offset: Vec2{X: -1, Z: -1}},
	{dx: 1, dy: 0, offset: Vec2{X: 1, Z: -1}},
	{dx: 1, dy: 1, offset: Vec2{X: 1, Z: 1}},
	{dx: 0, dy: 1, offset: Vec2{X: -1, Z: 1}},
}

// childOrder sorts the quadrants near-to-far along dir. The quadrant lying
// furthest against the direction of travel is entered first, so the sort key
// is the ascending dot product of the offset with dir. Equal keys keep the
// winding order.
func childOrder(dir Vec2) [4]child {
	order := quadrants
	slices.SortStableFunc(order[:], func(a, b child) int {
		return cmp.Compare(a.offset.Dot(dir), b.offset.Dot(dir))
	})
	return order
}

// hierarchical carries the per-ray state of one descent
type hierarchical struct {
	hf      *HeightField
	ray     Ray2
	visitor Visitor
	order   [4]child
	leaf    int
}

// TraverseHierarchical walks the pyramid coarse to fine along ray. Every
// interior node the ray crosses raises an Interior event carrying the node's
// upper-bound height; returning Stop from the visitor skips everything below
// it. Children are visited near-to-far, so leaf events arrive in front-to-back
// order for the first-hit-wins horizon test. Leaves entirely behind the ray
// origin (entry time <= 0) are not reported.
//
// A ray with a zero-length direction produces no events.
func (hf *HeightField) TraverseHierarchical(ray Ray2, visitor Visitor) {
	if ray.degenerate() {
		return
	}

	h := hierarchical{
		hf:      hf,
		ray:     ray,
		visitor: visitor,
		order:   childOrder(ray.Direction),
		leaf:    hf.pyramid.Levels() - 1,
	}
	h.visit(0, 0, 0)
}

func (h *hierarchical) visit(depth, x, y int) {
	local := Ray2{
		Origin:    h.ray.Origin.Sub(h.hf.CellCenter(depth, x, y)),
		Direction: h.ray.Direction,
	}
	tMin, tMax, ok := SlabTest(local, h.hf.cellSize(depth))
	if !ok {
		return
	}

	ev := Event{
		Distance: tMax,
		Entry:    tMin,
		Height:   h.hf.pyramid.at(depth, x, y),
		Level:    depth,
		X:        x,
		Y:        y,
	}

	if depth == h.leaf {
		// behind the origin
		if tMin <= 0 {
			return
		}
		h.hf.color(&ev)
		h.visitor.Visit(ev)
		return
	}

	ev.Interior = true
	if h.visitor.Visit(ev) == Stop {
		return
	}

	for _, c := range h.order {
		h.visit(depth+1, x<<1+c.dx, y<<1+c.dy)
	}
}
