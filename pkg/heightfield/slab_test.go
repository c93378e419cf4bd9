package heightfield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlabTestHit(t *testing.T) {
	ray := Ray2{Origin: Vec2{X: -10, Z: 0}, Direction: Vec2{X: 1, Z: 0}}

	tMin, tMax, ok := SlabTest(ray, 2)
	require.True(t, ok)
	require.Equal(t, 9.0, tMin)
	require.Equal(t, 11.0, tMax)
}

func TestSlabTestMiss(t *testing.T) {
	ray := Ray2{Origin: Vec2{X: -10, Z: 5}, Direction: Vec2{X: 1, Z: 0}}

	_, _, ok := SlabTest(ray, 2)
	require.False(t, ok)
}

func TestSlabTestOriginOnPlane(t *testing.T) {
	// z sits exactly on the upper slab plane with no z motion
	ray := Ray2{Origin: Vec2{X: -10, Z: 1}, Direction: Vec2{X: 1, Z: 0}}

	tMin, tMax, ok := SlabTest(ray, 2)
	require.True(t, ok)
	require.False(t, math.IsNaN(tMin))
	require.Equal(t, 9.0, tMin)
	require.Equal(t, 11.0, tMax)
}

func TestSlabTestDiagonal(t *testing.T) {
	ray := Ray2{Origin: Vec2{X: -10, Z: -10}, Direction: Vec2{X: 1, Z: 1}}

	tMin, tMax, ok := SlabTest(ray, 2)
	require.True(t, ok)
	require.Equal(t, 9.0, tMin)
	require.Equal(t, 11.0, tMax)
}

func TestSlabTestDiagonalMiss(t *testing.T) {
	// passes the square's corner on the outside
	ray := Ray2{Origin: Vec2{X: -10, Z: -7}, Direction: Vec2{X: 1, Z: 1}}

	_, _, ok := SlabTest(ray, 2)
	require.False(t, ok)
}

func TestSlabTestLeavesSignToCaller(t *testing.T) {
	inside := Ray2{Origin: Vec2{X: 0, Z: 0}, Direction: Vec2{X: 1, Z: 0}}
	tMin, tMax, ok := SlabTest(inside, 2)
	require.True(t, ok)
	require.Equal(t, -1.0, tMin)
	require.Equal(t, 1.0, tMax)

	behind := Ray2{Origin: Vec2{X: 10, Z: 0}, Direction: Vec2{X: 1, Z: 0}}
	tMin, tMax, ok = SlabTest(behind, 2)
	require.True(t, ok)
	require.Equal(t, -11.0, tMin)
	require.Equal(t, -9.0, tMax)
}

func TestSlabTestUnnormalisedDirection(t *testing.T) {
	ray := Ray2{Origin: Vec2{X: -10, Z: 0}, Direction: Vec2{X: 2, Z: 0}}

	tMin, tMax, ok := SlabTest(ray, 2)
	require.True(t, ok)
	require.Equal(t, 4.5, tMin)
	require.Equal(t, 5.5, tMax)
}
