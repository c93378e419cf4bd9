package heightfield

import "math"

// TraverseGrid marches ray through the finest level one cell at a time
// (Amanatides-Woo). Every cell the ray passes through in front of its origin
// is reported, in strictly increasing Distance; the visitor cannot stop the
// walk early, it ends when the ray leaves the grid.
//
// Distance is the time at which the ray leaves the cell and Entry the time it
// enters it, both measured along ray like the hierarchical traversal. The
// cell holding the ray origin is not reported. At an interior lattice corner
// the walk steps diagonally, so the two cells meeting the ray only at that
// corner are skipped. A ray meeting the grid at a single point, or one with a
// zero-length direction, produces no events.
func (hf *HeightField) TraverseGrid(ray Ray2, visitor Visitor) {
	if ray.degenerate() {
		return
	}

	tMin, tMax, ok := SlabTest(ray, hf.Extent())
	if !ok || tMax < 0 || tMax <= tMin {
		return
	}

	// Entry point into the grid, or the origin when already inside
	t0 := 0.0
	if tMin >= 0 {
		t0 = tMin
	}
	entry := ray.At(t0)

	n := hf.Size()
	leaf := hf.pyramid.Levels() - 1
	half := hf.Extent() / 2

	// Position in cell units from the grid corner
	fx := (entry.X + half) / hf.blockSize
	fz := (entry.Z + half) / hf.blockSize
	mapX := clampCell(int(math.Floor(fx)), n)
	mapZ := clampCell(int(math.Floor(fz)), n)

	stepX, deltaX, sideX := axisStep(ray.Direction.X, fx, mapX, hf.blockSize)
	stepZ, deltaZ, sideZ := axisStep(ray.Direction.Z, fz, mapZ, hf.blockSize)

	emit := func(enter float64) {
		ev := Event{
			Distance: t0 + math.Min(sideX, sideZ),
			Entry:    t0 + enter,
			Height:   hf.pyramid.at(leaf, mapX, mapZ),
			Level:    leaf,
			X:        mapX,
			Y:        mapZ,
		}
		hf.color(&ev)
		visitor.Visit(ev)
	}

	if tMin > 0 {
		emit(0)
	}

	for {
		var enter float64
		switch {
		case sideX < sideZ:
			enter = sideX
			mapX += stepX
			sideX += deltaX
			if mapX < 0 || mapX >= n {
				return
			}
		case sideZ < sideX:
			enter = sideZ
			mapZ += stepZ
			sideZ += deltaZ
			if mapZ < 0 || mapZ >= n {
				return
			}
		default:
			// exact corner: step diagonally
			enter = sideX
			mapX += stepX
			mapZ += stepZ
			sideX += deltaX
			sideZ += deltaZ
			if mapX < 0 || mapX >= n || mapZ < 0 || mapZ >= n {
				return
			}
		}
		emit(enter)
	}
}

// axisStep returns the cell step, the time to cross one full cell and the
// time to reach the next grid line along one axis. pos is the position in
// cell units and cell the cell it lies in.
func axisStep(dir, pos float64, cell int, blockSize float64) (step int, delta, side float64) {
	switch {
	case dir > 0:
		delta = blockSize / dir
		return 1, delta, (float64(cell+1) - pos) * delta
	case dir < 0:
		delta = -blockSize / dir
		return -1, delta, (pos - float64(cell)) * delta
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}

func clampCell(c, n int) int {
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}
