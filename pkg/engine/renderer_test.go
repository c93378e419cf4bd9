package engine

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"skyline/pkg/config"
	"skyline/pkg/heightfield"
)

var (
	skyBlue   = color.RGBA{R: 0x87, G: 0xB5, B: 0xE0, A: 0xFF}
	grassTone = color.RGBA{R: 0x3F, G: 0x7A, B: 0x35, A: 0xFF}
)

func renderConfig(traversal string, workers int) config.RenderConfig {
	return config.RenderConfig{Traversal: traversal, Workers: workers, SkyColor: "#87b5e0"}
}

func flatGreenField(t *testing.T) *heightfield.HeightField {
	t.Helper()

	hf, err := heightfield.New(5, 10,
		heightfield.SamplerFunc(func(x, y int) float64 { return 0 }),
		heightfield.ColorFunc(func(h float64) color.RGBA { return grassTone }))
	require.NoError(t, err)
	return hf
}

func bumpyField(t *testing.T) *heightfield.HeightField {
	t.Helper()

	hf, err := heightfield.New(6, 8,
		heightfield.SamplerFunc(func(x, y int) float64 { return float64((x*7+y*13)%11) * 6 }),
		nil)
	require.NoError(t, err)
	return hf
}

func TestRenderFlatField(t *testing.T) {
	for _, mode := range []string{config.TraversalHierarchical, config.TraversalGrid} {
		t.Run(mode, func(t *testing.T) {
			cam := testCamera(64, 48, 60, 100, 20, 0)
			r, err := NewRenderer(flatGreenField(t), cam, renderConfig(mode, 3), quietLogger())
			require.NoError(t, err)

			stats := r.Render()
			require.Equal(t, mode, stats.Traversal)
			require.Equal(t, 64, stats.Columns)
			require.Positive(t, stats.Leaves)

			frame := r.Frame()
			require.Equal(t, skyBlue, frame.At(32, 0))
			require.Equal(t, skyBlue, frame.At(32, 20))
			require.Equal(t, grassTone, frame.At(32, 47))
			require.Equal(t, grassTone, frame.At(32, 35))
		})
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	cam := testCamera(40, 30, 60, 150, 60, 35)
	r, err := NewRenderer(bumpyField(t), cam, renderConfig(config.TraversalHierarchical, 4), quietLogger())
	require.NoError(t, err)

	r.Render()
	first := append([]uint8(nil), r.Frame().Image().Pix...)
	r.Render()
	require.Equal(t, first, r.Frame().Image().Pix)
}

func TestTraversalsRenderAlike(t *testing.T) {
	field := bumpyField(t)
	cam := testCamera(80, 60, 60, 220, 70, 20)

	hier, err := NewRenderer(field, cam, renderConfig(config.TraversalHierarchical, 2), quietLogger())
	require.NoError(t, err)
	grid, err := NewRenderer(field, cam, renderConfig(config.TraversalGrid, 5), quietLogger())
	require.NoError(t, err)

	hs := hier.Render()
	gs := grid.Render()
	require.Positive(t, hs.Pruned)
	// the grid walk has no subtrees to skip
	require.Zero(t, gs.Pruned)

	diff := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			if hier.Frame().At(x, y) != grid.Frame().At(x, y) {
				diff++
			}
		}
	}
	require.LessOrEqual(t, diff, 80*60*3/100)
}

func TestRendererTraversalSelection(t *testing.T) {
	cam := testCamera(8, 8, 60, 100, 20, 0)
	r, err := NewRenderer(flatGreenField(t), cam, renderConfig("GRID", 1), quietLogger())
	require.NoError(t, err)
	require.Equal(t, config.TraversalGrid, r.Traversal())

	require.Equal(t, config.TraversalHierarchical, r.ToggleTraversal())
	require.Equal(t, config.TraversalGrid, r.ToggleTraversal())
	require.Error(t, r.SetTraversal("octree"))
	require.Equal(t, config.TraversalGrid, r.Traversal())

	_, err = NewRenderer(flatGreenField(t), cam, renderConfig("octree", 1), quietLogger())
	require.Error(t, err)

	bad := renderConfig(config.TraversalGrid, 1)
	bad.SkyColor = "blue"
	_, err = NewRenderer(flatGreenField(t), cam, bad, quietLogger())
	require.Error(t, err)
}

func TestRendererMoreWorkersThanColumns(t *testing.T) {
	cam := testCamera(3, 10, 60, 100, 20, 0)
	r, err := NewRenderer(flatGreenField(t), cam, renderConfig(config.TraversalHierarchical, 16), quietLogger())
	require.NoError(t, err)

	require.Equal(t, 3, r.Render().Columns)
}

func TestRendererSetField(t *testing.T) {
	cam := testCamera(16, 12, 60, 100, 20, 0)
	r, err := NewRenderer(flatGreenField(t), cam, renderConfig(config.TraversalGrid, 2), quietLogger())
	require.NoError(t, err)
	r.Render()
	require.Equal(t, grassTone, r.Frame().At(8, 11))

	r.SetField(bumpyField(t))
	r.Render()
	require.NotEqual(t, grassTone, r.Frame().At(8, 11))
}
