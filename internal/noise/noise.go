package noise

import (
	"math"
)

// NoiseGenerator produces deterministic gradient noise for a seed. It holds
// no mutable state, so one generator may be sampled from many goroutines.
type NoiseGenerator struct {
	seed int64
}

// NewNoiseGenerator creates a new noise generator with the given seed
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	return &NoiseGenerator{seed: seed}
}

// Perlin2D generates 2D Perlin noise. salt offsets the seed so independent
// layers (octaves, ridges) can be drawn from one generator.
func (ng *NoiseGenerator) Perlin2D(x, y float64, salt int64) float64 {
	seed := int(ng.seed + salt)

	// Get grid points
	x0 := math.Floor(x)
	x1 := x0 + 1.0
	y0 := math.Floor(y)
	y1 := y0 + 1.0

	// Smooth interpolation factors
	sx := smoothstep(x - x0)
	sy := smoothstep(y - y0)

	// Get gradients
	g00 := gradient2D(hash(int(x0), int(y0), 0, seed))
	g10 := gradient2D(hash(int(x1), int(y0), 0, seed))
	g01 := gradient2D(hash(int(x0), int(y1), 0, seed))
	g11 := gradient2D(hash(int(x1), int(y1), 0, seed))

	// Calculate dot products
	dp00 := dot2D(g00[0], g00[1], x-x0, y-y0)
	dp10 := dot2D(g10[0], g10[1], x-x1, y-y0)
	dp01 := dot2D(g01[0], g01[1], x-x0, y-y1)
	dp11 := dot2D(g11[0], g11[1], x-x1, y-y1)

	// Interpolate along x, then y
	v0 := lerp(dp00, dp10, sx)
	v1 := lerp(dp01, dp11, sx)
	return lerp(v0, v1, sy)
}

// Ridge2D generates 2D ridge noise in [0, 1] (useful for terrain ridges/mountains)
func (ng *NoiseGenerator) Ridge2D(x, y float64, salt int64) float64 {
	n := math.Abs(ng.Perlin2D(x, y, salt))

	// Invert to turn valleys into ridges, then sharpen
	n = 1.0 - math.Min(n, 1.0)
	return n * n
}

// FBM2D generates 2D Fractal Brownian Motion noise, normalised by the total
// amplitude so the result stays in the range of a single octave.
func (ng *NoiseGenerator) FBM2D(x, y float64, octaves int, lacunarity, gain float64, salt int64) float64 {
	result := 0.0
	amplitude := 1.0
	frequency := 1.0
	total := 0.0

	for i := 0; i < octaves; i++ {
		result += ng.Perlin2D(x*frequency, y*frequency, salt+int64(i)) * amplitude
		total += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}

	if total == 0 {
		return 0
	}
	return result / total
}

// hash combines the coordinates and seed to create a unique hash
func hash(x, y, z, seed int) int {
	h := seed + x*374761393 + y*668265263 + z*374761393
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// gradient2D picks one of eight gradients from a hash
func gradient2D(hash int) [2]float64 {
	switch hash & 7 {
	case 0:
		return [2]float64{1, 0}
	case 1:
		return [2]float64{-1, 0}
	case 2:
		return [2]float64{0, 1}
	case 3:
		return [2]float64{0, -1}
	case 4:
		return [2]float64{1, 1}
	case 5:
		return [2]float64{-1, 1}
	case 6:
		return [2]float64{1, -1}
	default:
		return [2]float64{-1, -1}
	}
}

func dot2D(x1, y1, x2, y2 float64) float64 {
	return x1*x2 + y1*y2
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// smoothstep is the improved Perlin fade: 6t^5 - 15t^4 + 10t^3
func smoothstep(t float64) float64 {
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}
