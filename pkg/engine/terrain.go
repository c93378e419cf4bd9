package engine

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoders for image heightmaps
	_ "image/png"
	"math"
	"os"
	"time"

	"skyline/internal/logger"
	"skyline/internal/noise"
	"skyline/internal/util"
	"skyline/pkg/config"
	"skyline/pkg/heightfield"
)

// NoiseTerrain samples fractal noise with a central valley and ridges
type NoiseTerrain struct {
	gen    *noise.NoiseGenerator
	params config.NoiseConfig
	size   int
	scale  float64
}

// NewNoiseTerrain creates a noise height source for a field of the given
// finest-level size
func NewNoiseTerrain(cfg config.TerrainConfig, seed int64, size int) *NoiseTerrain {
	return &NoiseTerrain{
		gen:    noise.NewNoiseGenerator(seed),
		params: cfg.Noise,
		size:   size,
		scale:  cfg.HeightScale,
	}
}

// Sample implements heightfield.Sampler
func (nt *NoiseTerrain) Sample(x, y int) float64 {
	// Calculate world position
	worldX := float64(x - nt.size/2)
	worldZ := float64(y - nt.size/2)
	p := nt.params

	// Generate elevation using multiple octaves of Perlin noise
	elevation := nt.gen.FBM2D(worldX*p.Scale, worldZ*p.Scale, p.Octaves, p.Lacunarity, p.Persistence, 0)

	// Normalize to 0-1 range
	elevation = (elevation + 1.0) * 0.5

	return nt.applyTerrainFeatures(elevation, worldX, worldZ) * nt.scale
}

// applyTerrainFeatures carves a valley around the centre and raises ridges
func (nt *NoiseTerrain) applyTerrainFeatures(baseElevation, x, z float64) float64 {
	elevation := baseElevation

	// Central depression, cubic falloff out to 40% of the field
	distFromCenter := math.Sqrt(x*x+z*z) / (0.4 * float64(nt.size))
	valleyDepression := math.Max(0, 1.0-distFromCenter)
	elevation -= math.Pow(valleyDepression, 3) * 0.3

	// Add some ridges
	s := nt.params.Scale * 1.5
	elevation += nt.gen.Ridge2D(x*s, z*s, 123) * nt.params.RidgeInfluence

	// Ensure elevation is in 0-1 range
	return util.Clamp(elevation, 0.0, 1.0)
}

// ImageTerrain samples a grayscale heightmap image, stretched over the field
// with nearest-neighbour lookup
type ImageTerrain struct {
	img   image.Image
	size  int
	scale float64
}

// NewImageTerrain wraps a decoded image
func NewImageTerrain(img image.Image, size int, heightScale float64) *ImageTerrain {
	return &ImageTerrain{img: img, size: size, scale: heightScale}
}

// LoadImageTerrain decodes a PNG or JPEG heightmap
func LoadImageTerrain(path string, size int, heightScale float64) (*ImageTerrain, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open heightmap: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode heightmap %s: %w", path, err)
	}
	return NewImageTerrain(img, size, heightScale), nil
}

// Sample implements heightfield.Sampler
func (it *ImageTerrain) Sample(x, y int) float64 {
	b := it.img.Bounds()
	px := b.Min.X + x*b.Dx()/it.size
	py := b.Min.Y + y*b.Dy()/it.size
	g := color.Gray16Model.Convert(it.img.At(px, py)).(color.Gray16)
	return float64(g.Y) / 0xFFFF * it.scale
}

// BuildField creates the height field described by the terrain and colour
// sections of cfg. seed replaces the configured seed; 0 picks one from the
// clock.
func BuildField(cfg *config.Config, seed int64, log *logger.Logger) (*heightfield.HeightField, error) {
	t := cfg.Terrain
	if t.Levels < 1 {
		return nil, heightfield.ErrNoLevels
	}
	size := 1 << (t.Levels - 1)

	var sampler heightfield.Sampler
	switch t.Source {
	case config.SourceImage:
		it, err := LoadImageTerrain(t.ImagePath, size, t.HeightScale)
		if err != nil {
			return nil, err
		}
		sampler = it
		log.Infof("Heightmap %s stretched over %dx%d cells", t.ImagePath, size, size)
	default:
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		sampler = NewNoiseTerrain(t, seed, size)
		log.Infof("Noise terrain %dx%d cells, seed %d", size, size, seed)
	}

	var colors heightfield.ColorMapper
	gradient, err := NewGradient(cfg.Colors)
	switch {
	case err == nil:
		colors = gradient
	case errors.Is(err, ErrEmptyGradient):
		log.Debug("No colour stops, falling back to greyscale")
	default:
		return nil, err
	}

	start := time.Now()
	hf, err := heightfield.New(t.Levels, t.BlockSize, sampler, colors)
	if err != nil {
		return nil, fmt.Errorf("failed to build height field: %w", err)
	}
	log.Debugf("Height field with %d levels built in %s", hf.Levels(), time.Since(start))
	return hf, nil
}
