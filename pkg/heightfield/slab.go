package heightfield

import "math"

// SlabTest intersects ray with the axis-aligned square [-size/2, size/2]^2
// centred on the origin of the ray's frame. Callers move the square by
// translating the ray origin. It returns the parametric entry and exit times;
// tMin may be negative when the origin is inside or past the square.
func SlabTest(ray Ray2, size float64) (tMin, tMax float64, ok bool) {
	half := size / 2

	minX, maxX, ok := slab(ray.Origin.X, ray.Direction.X, half)
	if !ok {
		return 0, 0, false
	}
	minZ, maxZ, ok := slab(ray.Origin.Z, ray.Direction.Z, half)
	if !ok {
		return 0, 0, false
	}

	tMin = math.Max(minX, minZ)
	tMax = math.Min(maxX, maxZ)
	if tMax < tMin {
		return 0, 0, false
	}
	return tMin, tMax, true
}

// slab returns the interval of t for which origin+t*dir lies in [-half, half].
// A zero direction is tested against the slab directly: 0/0 would otherwise
// turn an origin lying exactly on a plane into NaN.
func slab(origin, dir, half float64) (float64, float64, bool) {
	if dir == 0 {
		if origin < -half || origin > half {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}

	t1 := (-half - origin) / dir
	t2 := (half - origin) / dir
	return math.Min(t1, t2), math.Max(t1, t2), true
}
