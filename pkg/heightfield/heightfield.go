package heightfield

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBlockSize is returned for a non-positive or non-finite cell size
var ErrInvalidBlockSize = errors.New("block size must be positive")

// HeightField is a square grid of ground heights indexed by a max pyramid.
// The finest level covers Size() x Size() cells of BlockSize() world units,
// centred on the world origin; cell x runs along world X and cell y along
// world Z.
//
// Traversals only read the field and may run concurrently. Write and Refresh
// must be synchronised by the caller.
type HeightField struct {
	pyramid   *Pyramid[float64]
	blockSize float64
	colors    ColorMapper
}

// New builds a height field with numLevels pyramid levels. The sampler is
// called exactly once for each finest-level cell, then coarser levels are
// folded upward so every cell holds the max of its four children. colors
// may be nil.
func New(numLevels int, blockSize float64, sampler Sampler, colors ColorMapper) (*HeightField, error) {
	if !(blockSize > 0) || math.IsInf(blockSize, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlockSize, blockSize)
	}

	pyramid, err := NewPyramid(numLevels, 0.0)
	if err != nil {
		return nil, err
	}

	hf := &HeightField{
		pyramid:   pyramid,
		blockSize: blockSize,
		colors:    colors,
	}

	leaf := numLevels - 1
	side := pyramid.Side(leaf)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			pyramid.put(leaf, x, y, sampler.Sample(x, y))
		}
	}

	for level := leaf - 1; level >= 0; level-- {
		side := pyramid.Side(level)
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				pyramid.put(level, x, y, hf.childMax(level, x, y))
			}
		}
	}

	return hf, nil
}

// childMax returns the max of the four children of an interior cell
func (hf *HeightField) childMax(level, x, y int) float64 {
	xx, yy := x<<1, y<<1
	child := level + 1
	h1 := hf.pyramid.at(child, xx, yy)
	h2 := hf.pyramid.at(child, xx+1, yy)
	h3 := hf.pyramid.at(child, xx+1, yy+1)
	h4 := hf.pyramid.at(child, xx, yy+1)
	return math.Max(math.Max(h1, h2), math.Max(h3, h4))
}

// Levels returns the number of pyramid levels
func (hf *HeightField) Levels() int {
	return hf.pyramid.Levels()
}

// Size returns the number of finest-level cells along one edge
func (hf *HeightField) Size() int {
	return hf.pyramid.Side(hf.pyramid.Levels() - 1)
}

// BlockSize returns the world edge length of one finest-level cell
func (hf *HeightField) BlockSize() float64 {
	return hf.blockSize
}

// Extent returns the world edge length of the whole field
func (hf *HeightField) Extent() float64 {
	return float64(hf.Size()) * hf.blockSize
}

// Pyramid exposes the underlying index for inspection
func (hf *HeightField) Pyramid() *Pyramid[float64] {
	return hf.pyramid
}

// Read returns the stored value of a cell at any level
func (hf *HeightField) Read(level, x, y int) (float64, error) {
	return hf.pyramid.Get(level, x, y)
}

// Write stores a value at any level without touching ancestors. Call Refresh
// after writing a leaf to restore the max invariant.
func (hf *HeightField) Write(level, x, y int, value float64) error {
	return hf.pyramid.Set(level, x, y, value)
}

// Refresh re-derives every ancestor of finest-level cell (x, y)
func (hf *HeightField) Refresh(x, y int) error {
	leaf := hf.pyramid.Levels() - 1
	if _, err := hf.pyramid.index(leaf, x, y); err != nil {
		return err
	}
	for level := leaf - 1; level >= 0; level-- {
		x, y = x>>1, y>>1
		hf.pyramid.put(level, x, y, hf.childMax(level, x, y))
	}
	return nil
}

// color maps a height through the field's ColorMapper, if any
func (hf *HeightField) color(ev *Event) {
	if hf.colors == nil {
		return
	}
	ev.Color = hf.colors.Color(ev.Height)
	ev.Colored = true
}

// CellCenter returns the world position of the centre of a cell at a level
func (hf *HeightField) CellCenter(level, x, y int) Vec2 {
	side := hf.cellSize(level)
	half := hf.Extent() / 2
	return Vec2{
		X: -half + (float64(x)+0.5)*side,
		Z: -half + (float64(y)+0.5)*side,
	}
}

// cellSize returns the world edge length of one cell at a level
func (hf *HeightField) cellSize(level int) float64 {
	leaf := hf.pyramid.Levels() - 1
	return float64(int(1)<<(leaf-level)) * hf.blockSize
}
