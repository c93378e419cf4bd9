package engine

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"skyline/internal/util"
	"skyline/pkg/config"
)

// ErrEmptyGradient is returned when a gradient has no stops
var ErrEmptyGradient = errors.New("gradient needs at least one colour stop")

type gradientStop struct {
	height float64
	color  color.RGBA
}

// Gradient is a heightfield.ColorMapper interpolating linearly between
// colour stops sorted by height. Heights outside the stops take the colour
// of the nearest end.
type Gradient struct {
	stops []gradientStop
}

// NewGradient parses configured colour stops
func NewGradient(stops []config.ColorStop) (*Gradient, error) {
	if len(stops) == 0 {
		return nil, ErrEmptyGradient
	}

	g := &Gradient{stops: make([]gradientStop, 0, len(stops))}
	for i, s := range stops {
		c, err := ParseHexColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("colour stop %d: %w", i, err)
		}
		if i > 0 && s.Height < stops[i-1].Height {
			return nil, fmt.Errorf("colour stop %d: height %g below previous stop", i, s.Height)
		}
		g.stops = append(g.stops, gradientStop{height: s.Height, color: c})
	}
	return g, nil
}

// Color implements heightfield.ColorMapper
func (g *Gradient) Color(h float64) color.RGBA {
	first, last := g.stops[0], g.stops[len(g.stops)-1]
	if h <= first.height {
		return first.color
	}
	if h >= last.height {
		return last.color
	}

	for i := 1; i < len(g.stops); i++ {
		hi := g.stops[i]
		if h > hi.height {
			continue
		}
		lo := g.stops[i-1]
		t := util.Map(h, lo.height, hi.height, 0, 1)
		return color.RGBA{
			R: mix(lo.color.R, hi.color.R, t),
			G: mix(lo.color.G, hi.color.G, t),
			B: mix(lo.color.B, hi.color.B, t),
			A: mix(lo.color.A, hi.color.A, t),
		}
	}
	return last.color
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(util.Clamp(util.Lerp(float64(a), float64(b), t)+0.5, 0, 255))
}

// ParseHexColor parses #rgb, #rrggbb or #rrggbbaa
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
