package heightfield

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireIncreasing(t *testing.T, events []Event) {
	t.Helper()
	for i := 1; i < len(events); i++ {
		require.Greater(t, events[i].Distance, events[i-1].Distance, "event %d", i)
	}
}

func TestGridFlatFieldRow(t *testing.T) {
	hf := flatField(t, 5, 1, 0)
	ray := Ray2{Origin: Vec2{X: -100, Z: 0.5}, Direction: Vec2{X: 1}}

	var events []Event
	hf.TraverseGrid(ray, collect(&events, Continue))

	require.Len(t, events, 16)
	for i, ev := range events {
		require.Equal(t, i, ev.X)
		require.Equal(t, 8, ev.Y)
		require.Zero(t, ev.Height)
		require.False(t, ev.Interior)
		require.Equal(t, 4, ev.Level)
	}
	requireIncreasing(t, events)
	require.Equal(t, 92.0, events[0].Entry)
	require.Equal(t, 93.0, events[0].Distance)
	require.Equal(t, 108.0, events[15].Distance)
}

func TestGridFlatFieldThroughCentre(t *testing.T) {
	hf := flatField(t, 5, 1, 0)
	ray := Ray2{Origin: Vec2{X: -100, Z: -100}, Direction: Vec2{X: 1, Z: 1}.Normalize()}

	var events []Event
	hf.TraverseGrid(ray, collect(&events, Continue))

	// the diagonal passes exactly through cell corners and visits the
	// diagonal cells only
	require.Len(t, events, 16)
	for i, ev := range events {
		require.Equal(t, i, ev.X)
		require.Equal(t, i, ev.Y)
		require.Zero(t, ev.Height)
	}
	requireIncreasing(t, events)
}

func TestGridAxisAlignedColumn(t *testing.T) {
	hf := flatField(t, 5, 1, 0)
	ray := Ray2{Origin: Vec2{X: 0.5, Z: 100}, Direction: Vec2{Z: -1}}

	var events []Event
	hf.TraverseGrid(ray, collect(&events, Continue))

	require.Len(t, events, 16)
	for i, ev := range events {
		require.Equal(t, 8, ev.X)
		require.Equal(t, 15-i, ev.Y)
	}
	requireIncreasing(t, events)
}

func TestGridStartsInside(t *testing.T) {
	hf := flatField(t, 3, 1, 0)
	ray := Ray2{Origin: Vec2{X: 0.5, Z: 0.5}, Direction: Vec2{X: 1}}

	var events []Event
	hf.TraverseGrid(ray, collect(&events, Continue))

	// the cell holding the origin is not reported
	require.Len(t, events, 1)
	require.Equal(t, 3, events[0].X)
	require.Equal(t, 2, events[0].Y)
	require.Equal(t, 0.5, events[0].Entry)
	require.Equal(t, 1.5, events[0].Distance)
}

func TestGridMisses(t *testing.T) {
	hf := flatField(t, 4, 1, 0)

	rays := []Ray2{
		{Origin: Vec2{X: -100, Z: 50}, Direction: Vec2{X: 1}},
		{Origin: Vec2{X: -100, Z: 0}, Direction: Vec2{X: -1}},
		{Origin: Vec2{X: 0, Z: 0}},
	}
	for _, ray := range rays {
		var events []Event
		hf.TraverseGrid(ray, collect(&events, Continue))
		require.Empty(t, events)
	}
}

func TestGridIgnoresGrazedCorner(t *testing.T) {
	// 4x4 field: the ray touches only the outer corner (-2, 2)
	hf := flatField(t, 3, 1, 0)
	ray := Ray2{Origin: Vec2{X: -4, Z: 0}, Direction: Vec2{X: 1, Z: 1}.Normalize()}

	tMin, tMax, ok := SlabTest(ray, hf.Extent())
	require.True(t, ok)
	require.Equal(t, tMin, tMax)

	var events []Event
	hf.TraverseGrid(ray, collect(&events, Continue))
	require.Empty(t, events)
}

func TestGridReportsSampledHeights(t *testing.T) {
	hf, err := New(4, 2, SamplerFunc(func(x, y int) float64 {
		return float64(10*y + x)
	}), nil)
	require.NoError(t, err)

	ray := Ray2{Origin: Vec2{X: -20, Z: 3}, Direction: Vec2{X: 1}}
	var events []Event
	hf.TraverseGrid(ray, collect(&events, Continue))

	require.Len(t, events, 8)
	for i, ev := range events {
		require.Equal(t, float64(10*5+i), ev.Height)
	}
}

func TestGridStaysInBounds(t *testing.T) {
	hf := randomField(t, 6, 1.5, 5)
	n := hf.Size()
	reach := hf.Extent()
	rng := rand.New(rand.NewSource(21))

	for i := 0; i < 500; i++ {
		angle := rng.Float64() * 2 * math.Pi
		ray := Ray2{
			Origin: Vec2{
				X: (rng.Float64()*2 - 1) * reach,
				Z: (rng.Float64()*2 - 1) * reach,
			},
			Direction: Vec2{X: math.Cos(angle), Z: math.Sin(angle)},
		}

		var events []Event
		hf.TraverseGrid(ray, collect(&events, Continue))

		for _, ev := range events {
			require.GreaterOrEqual(t, ev.X, 0)
			require.Less(t, ev.X, n)
			require.GreaterOrEqual(t, ev.Y, 0)
			require.Less(t, ev.Y, n)
			require.Positive(t, ev.Distance)
		}
		requireIncreasing(t, events)
	}
}
