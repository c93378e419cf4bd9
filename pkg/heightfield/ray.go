package heightfield

import "math"

// Vec2 is a point or direction in the ground plane. Z is the world depth axis.
type Vec2 struct {
	X, Z float64
}

// Add adds two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Z: v.Z + other.Z}
}

// Sub subtracts a vector from another
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Z: v.Z - other.Z}
}

// Mul multiplies a vector by a scalar
func (v Vec2) Mul(scalar float64) Vec2 {
	return Vec2{X: v.X * scalar, Z: v.Z * scalar}
}

// Dot calculates the dot product of two vectors
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Z*other.Z
}

// Length returns the length of the vector
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// Normalize returns a unit vector, or v unchanged when it has zero length
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Z: v.Z / l}
}

// Ray2 is a ray in the ground plane. The direction does not have to be unit
// length for intersection tests, but distances are only world lengths when it
// is.
type Ray2 struct {
	Origin    Vec2
	Direction Vec2
}

// At returns the point reached after travelling t along the ray
func (r Ray2) At(t float64) Vec2 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// degenerate reports a zero-length direction, which the traversals treat as
// undefined input.
func (r Ray2) degenerate() bool {
	return r.Direction.X == 0 && r.Direction.Z == 0
}
