package heightfield

import (
	"errors"
	"fmt"
)

// MaxLevels is the deepest pyramid this package will allocate. Level 13 is a
// 4096x4096 finest grid, roughly 22M cells in total.
const MaxLevels = 13

var (
	// ErrIndexOutOfRange is returned for a level or cell outside the pyramid
	ErrIndexOutOfRange = errors.New("pyramid index out of range")

	// ErrNoLevels is returned when a pyramid is requested with zero levels
	ErrNoLevels = errors.New("pyramid needs at least one level")

	// ErrTooManyLevels is returned when the level count exceeds MaxLevels
	ErrTooManyLevels = errors.New("pyramid level count exceeds maximum")
)

// Pyramid is a complete quadtree stored level by level in one flat slice.
// Level 0 is the single root cell, level l is a 2^l x 2^l grid.
type Pyramid[V any] struct {
	cells   []V
	offsets []int
}

// NewPyramid allocates a pyramid with numLevels levels, every cell set to fill
func NewPyramid[V any](numLevels int, fill V) (*Pyramid[V], error) {
	if numLevels <= 0 {
		return nil, ErrNoLevels
	}
	if numLevels > MaxLevels {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyLevels, numLevels, MaxLevels)
	}

	offsets := make([]int, numLevels)
	total := 0
	for l := 0; l < numLevels; l++ {
		offsets[l] = total
		total += 1 << (2 * l)
	}

	cells := make([]V, total)
	for i := range cells {
		cells[i] = fill
	}

	return &Pyramid[V]{cells: cells, offsets: offsets}, nil
}

// Levels returns the number of levels
func (p *Pyramid[V]) Levels() int {
	return len(p.offsets)
}

// Side returns the edge length, in cells, of the given level
func (p *Pyramid[V]) Side(level int) int {
	return 1 << level
}

// Offset returns the storage offset of the first cell of a level
func (p *Pyramid[V]) Offset(level int) int {
	return p.offsets[level]
}

// Len returns the total number of cells across all levels
func (p *Pyramid[V]) Len() int {
	return len(p.cells)
}

// index validates (level, x, y) and returns the flat slice position
func (p *Pyramid[V]) index(level, x, y int) (int, error) {
	if level < 0 || level >= len(p.offsets) {
		return 0, fmt.Errorf("%w: level %d not in [0, %d)", ErrIndexOutOfRange, level, len(p.offsets))
	}
	side := 1 << level
	if x < 0 || x >= side || y < 0 || y >= side {
		return 0, fmt.Errorf("%w: cell (%d, %d) not in [0, %d) at level %d", ErrIndexOutOfRange, x, y, side, level)
	}
	return p.offsets[level] + y<<level + x, nil
}

// Get reads one cell
func (p *Pyramid[V]) Get(level, x, y int) (V, error) {
	i, err := p.index(level, x, y)
	if err != nil {
		var zero V
		return zero, err
	}
	return p.cells[i], nil
}

// Set writes one cell. Ancestors are not updated.
func (p *Pyramid[V]) Set(level, x, y int, value V) error {
	i, err := p.index(level, x, y)
	if err != nil {
		return err
	}
	p.cells[i] = value
	return nil
}

// at is the unchecked read used by the traversals once coordinates are
// known to be valid by construction.
func (p *Pyramid[V]) at(level, x, y int) V {
	return p.cells[p.offsets[level]+y<<level+x]
}

func (p *Pyramid[V]) put(level, x, y int, value V) {
	p.cells[p.offsets[level]+y<<level+x] = value
}
