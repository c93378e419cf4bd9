package engine

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"skyline/internal/logger"
	"skyline/pkg/config"
	"skyline/pkg/heightfield"
)

// FrameStats summarises one rendered frame
type FrameStats struct {
	Traversal string        `json:"traversal"`
	Columns   int           `json:"columns"`
	Events    int           `json:"events"`
	Leaves    int           `json:"leaves"`
	Pruned    int           `json:"pruned"`
	Duration  time.Duration `json:"duration_ns"`
}

func (s *FrameStats) merge(c *Column) {
	s.Columns++
	s.Events += c.Events
	s.Leaves += c.Leaves
	s.Pruned += c.Pruned
}

// Renderer casts one ray per screen column through a height field and
// paints the visible spans into a Frame
type Renderer struct {
	field     *heightfield.HeightField
	camera    *Camera
	frame     *Frame
	traversal string
	workers   int
	sky       color.RGBA
	logger    *logger.Logger
	mutex     sync.Mutex
}

// NewRenderer creates a renderer drawing field as seen from camera
func NewRenderer(field *heightfield.HeightField, camera *Camera, cfg config.RenderConfig, log *logger.Logger) (*Renderer, error) {
	sky, err := ParseHexColor(cfg.SkyColor)
	if err != nil {
		return nil, fmt.Errorf("render.sky_color: %w", err)
	}

	r := &Renderer{
		field:   field,
		camera:  camera,
		frame:   NewFrame(camera.Width, camera.Height),
		workers: max(cfg.Workers, 1),
		sky:     sky,
		logger:  log.Named("render"),
	}
	if err := r.SetTraversal(cfg.Traversal); err != nil {
		return nil, err
	}
	return r, nil
}

// SetField swaps the height field drawn by subsequent frames
func (r *Renderer) SetField(field *heightfield.HeightField) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.field = field
}

// SetTraversal selects "hierarchical" or "grid"
func (r *Renderer) SetTraversal(mode string) error {
	mode = strings.ToLower(mode)
	switch mode {
	case config.TraversalHierarchical, config.TraversalGrid:
	default:
		return fmt.Errorf("unknown traversal %q", mode)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.traversal = mode
	return nil
}

// Traversal returns the active traversal mode
func (r *Renderer) Traversal() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.traversal
}

// ToggleTraversal switches between the two traversals and returns the new
// mode
func (r *Renderer) ToggleTraversal() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.traversal == config.TraversalGrid {
		r.traversal = config.TraversalHierarchical
	} else {
		r.traversal = config.TraversalGrid
	}
	return r.traversal
}

// Frame returns the frame painted by the last Render
func (r *Renderer) Frame() *Frame {
	return r.frame
}

// Render draws a complete frame. The camera must not change while a frame
// is in flight.
func (r *Renderer) Render() FrameStats {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	start := time.Now()
	width := r.frame.Width()
	if width == 0 {
		return FrameStats{Traversal: r.traversal}
	}

	// Use goroutines for parallel column casting
	var wg sync.WaitGroup
	numGoroutines := min(r.workers, width)
	colsPerGoroutine := width / numGoroutines
	partial := make([]FrameStats, numGoroutines)

	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)

		// Calculate column range for this goroutine
		startCol := g * colsPerGoroutine
		endCol := startCol + colsPerGoroutine
		if g == numGoroutines-1 {
			endCol = width // Make sure to cover all columns
		}

		go func(g, startCol, endCol int) {
			defer wg.Done()
			for x := startCol; x < endCol; x++ {
				partial[g].merge(r.renderColumn(x))
			}
		}(g, startCol, endCol)
	}
	wg.Wait()

	stats := FrameStats{Traversal: r.traversal}
	for _, p := range partial {
		stats.Columns += p.Columns
		stats.Events += p.Events
		stats.Leaves += p.Leaves
		stats.Pruned += p.Pruned
	}
	stats.Duration = time.Since(start)

	instrumentFrame(stats)
	r.logger.Debugf("%s frame: %d events, %d leaves, %d pruned in %s",
		stats.Traversal, stats.Events, stats.Leaves, stats.Pruned, stats.Duration)
	return stats
}

// renderColumn clears column x to the sky and paints the terrain over it
func (r *Renderer) renderColumn(x int) *Column {
	r.frame.ClearColumn(x, r.sky)

	col := NewColumn(r.frame, x, r.camera)
	ray := r.camera.ColumnRay(x)
	if r.traversal == config.TraversalGrid {
		r.field.TraverseGrid(ray, col)
	} else {
		r.field.TraverseHierarchical(ray, col)
	}
	return col
}
