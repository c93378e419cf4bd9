package engine

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"skyline/internal/util"
)

// Frame is the RGBA target a renderer paints columns into. Distinct columns
// may be filled from different goroutines.
type Frame struct {
	img *image.RGBA
}

// NewFrame allocates a frame of the given size
func NewFrame(width, height int) *Frame {
	return &Frame{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the frame width in pixels
func (f *Frame) Width() int {
	return f.img.Rect.Dx()
}

// Height returns the frame height in pixels
func (f *Frame) Height() int {
	return f.img.Rect.Dy()
}

// Image exposes the backing image
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// ClearColumn fills one column with c
func (f *Frame) ClearColumn(x int, c color.RGBA) {
	f.FillSpan(x, 0, f.Height(), c)
}

// FillSpan paints rows [y0, y1) of column x
func (f *Frame) FillSpan(x, y0, y1 int, c color.RGBA) {
	if x < 0 || x >= f.Width() {
		return
	}
	y0 = util.ClampInt(y0, 0, f.Height())
	y1 = util.ClampInt(y1, 0, f.Height())
	for y := y0; y < y1; y++ {
		i := f.img.PixOffset(x, y)
		f.img.Pix[i+0] = c.R
		f.img.Pix[i+1] = c.G
		f.img.Pix[i+2] = c.B
		f.img.Pix[i+3] = c.A
	}
}

// At returns the colour of one pixel
func (f *Frame) At(x, y int) color.RGBA {
	return f.img.RGBAAt(x, y)
}

// WritePNG encodes the frame to path, creating the parent directory
func (f *Frame) WritePNG(path string) error {
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, f.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return file.Close()
}
