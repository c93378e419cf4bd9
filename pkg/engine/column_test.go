package engine

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"skyline/pkg/heightfield"
)

var red = color.RGBA{R: 0xFF, A: 0xFF}

// testColumn returns a single-column frame with horizon 50, eye height 10
// and a focal length of 50 pixels
func testColumn() (*Column, *Frame) {
	frame := NewFrame(1, 100)
	return newColumn(frame, 0, 50, 50, 10), frame
}

func leaf(entry, distance, height float64) heightfield.Event {
	return heightfield.Event{Entry: entry, Distance: distance, Height: height, Color: red, Colored: true}
}

func interior(entry, distance, height float64) heightfield.Event {
	return heightfield.Event{Entry: entry, Distance: distance, Height: height, Interior: true}
}

func TestColumnPaintsNearestFirst(t *testing.T) {
	col, frame := testColumn()
	require.Equal(t, 100, col.Top())

	// ground at distance 25..50 covers rows 60..70
	require.Equal(t, heightfield.Continue, col.Visit(leaf(25, 50, 0)))
	require.Equal(t, 60, col.Top())
	require.Equal(t, red, frame.At(0, 60))
	require.Equal(t, red, frame.At(0, 99))
	require.Equal(t, color.RGBA{}, frame.At(0, 59))

	// farther ground only adds rows above
	green := color.RGBA{G: 0xFF, A: 0xFF}
	ev := leaf(50, 100, 0)
	ev.Color = green
	col.Visit(ev)
	require.Equal(t, 55, col.Top())
	require.Equal(t, green, frame.At(0, 55))
	require.Equal(t, red, frame.At(0, 60))

	// a hidden leaf paints nothing
	col.Visit(leaf(100, 200, -50))
	require.Equal(t, 55, col.Top())
	require.Equal(t, 3, col.Leaves)
}

func TestColumnLeafAboveEyeUsesEntry(t *testing.T) {
	col, _ := testColumn()

	// height 20 is above the eye: the near edge projects highest
	col.Visit(leaf(50, 100, 20))
	require.Equal(t, 40, col.Top())
}

func TestColumnInteriorPruning(t *testing.T) {
	col, _ := testColumn()
	col.Visit(leaf(50, 100, 0))
	require.Equal(t, 55, col.Top())

	// bound below the eye reaches row 52 at the far edge
	require.Equal(t, heightfield.Continue, col.Visit(interior(10, 100, 5)))
	// bound reaching only row 55 cannot show
	require.Equal(t, heightfield.Stop, col.Visit(interior(10, 100, 0)))
	// bound above the eye with the camera inside the node
	require.Equal(t, heightfield.Continue, col.Visit(interior(-5, 100, 20)))
	// bound above the eye seen from outside
	require.Equal(t, heightfield.Continue, col.Visit(interior(100, 200, 20)))
	// node behind the camera
	require.Equal(t, heightfield.Stop, col.Visit(interior(-20, -5, 1000)))

	require.Equal(t, 2, col.Pruned)
}

func TestColumnStopsWhenFull(t *testing.T) {
	col, frame := testColumn()

	col.Visit(leaf(1, 2, 1000))
	require.Equal(t, 0, col.Top())
	require.Equal(t, red, frame.At(0, 0))

	require.Equal(t, heightfield.Stop, col.Visit(interior(10, 20, -100)))
	require.Equal(t, heightfield.Stop, col.Visit(leaf(10, 20, -100)))
	require.Equal(t, heightfield.Stop, col.Visit(leaf(20, 30, -100)))

	// only the skipped subtree counts as pruned
	require.Equal(t, 1, col.Pruned)
	require.Equal(t, 1, col.Leaves)
	require.Equal(t, 4, col.Events)
}

func TestColumnGreyscaleFallback(t *testing.T) {
	col, frame := testColumn()

	col.Visit(heightfield.Event{Entry: 25, Distance: 50, Height: 300})
	require.Equal(t, color.RGBA{R: 44, G: 44, B: 44, A: 0xFF}, frame.At(0, 99))
}
