package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"skyline/pkg/heightfield"
)

// Traversal modes accepted by RenderConfig.Traversal
const (
	TraversalHierarchical = "hierarchical"
	TraversalGrid         = "grid"
)

// Terrain sources accepted by TerrainConfig.Source
const (
	SourceNoise = "noise"
	SourceImage = "image"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the main configuration
type Config struct {
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Screen   ScreenConfig   `yaml:"screen"`
	Render   RenderConfig   `yaml:"render"`
	Colors   []ColorStop    `yaml:"colors"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// TerrainConfig describes the height field and where its heights come from
type TerrainConfig struct {
	Levels      int         `yaml:"levels"`
	BlockSize   float64     `yaml:"block_size"`
	Source      string      `yaml:"source"` // noise, image
	ImagePath   string      `yaml:"image_path"`
	Seed        int64       `yaml:"seed"` // 0 means random
	HeightScale float64     `yaml:"height_scale"`
	Noise       NoiseConfig `yaml:"noise"`
}

// NoiseConfig contains fractal noise parameters
type NoiseConfig struct {
	Scale          float64 `yaml:"scale"`
	Octaves        int     `yaml:"octaves"`
	Persistence    float64 `yaml:"persistence"`
	Lacunarity     float64 `yaml:"lacunarity"`
	RidgeInfluence float64 `yaml:"ridge_influence"`
}

// CameraConfig places the orbiting camera
type CameraConfig struct {
	OrbitRadius  float64 `yaml:"orbit_radius"`
	Height       float64 `yaml:"height"`
	AngleDegrees float64 `yaml:"angle_degrees"`
	OrbitSpeed   float64 `yaml:"orbit_speed"` // degrees per second in the viewer
	FovYDegrees  float64 `yaml:"fov_y_degrees"`
	Horizon      float64 `yaml:"horizon"` // row offset from the screen centre
}

// ScreenConfig is the size of the rendered frame in pixels
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RenderConfig contains renderer configuration
type RenderConfig struct {
	Traversal string `yaml:"traversal"` // hierarchical, grid
	Workers   int    `yaml:"workers"`
	SkyColor  string `yaml:"sky_color"`
}

// ColorStop maps a terrain height to a colour in #rrggbb form
type ColorStop struct {
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"`
}

// GraphicsConfig contains viewer window configuration
type GraphicsConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	VSync     bool `yaml:"vsync"`
	FrameRate int  `yaml:"framerate"`
}

// LogConfig selects the log level and optional log file
type LogConfig struct {
	Level    string `yaml:"level"`
	File     string `yaml:"file"`
	FileOnly bool   `yaml:"file_only"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Levels:      9,
			BlockSize:   8,
			Source:      SourceNoise,
			Seed:        0, // Random seed
			HeightScale: 300,
			Noise: NoiseConfig{
				Scale:          0.02,
				Octaves:        5,
				Persistence:    0.5,
				Lacunarity:     2.0,
				RidgeInfluence: 0.3,
			},
		},
		Camera: CameraConfig{
			OrbitRadius:  1600,
			Height:       500,
			AngleDegrees: 0,
			OrbitSpeed:   10,
			FovYDegrees:  45,
			Horizon:      0,
		},
		Screen: ScreenConfig{
			Width:  320,
			Height: 200,
		},
		Render: RenderConfig{
			Traversal: TraversalHierarchical,
			Workers:   4,
			SkyColor:  "#87b5e0",
		},
		Colors: []ColorStop{
			{Height: 0, Color: "#1d3f6e"},
			{Height: 60, Color: "#c2b280"},
			{Height: 110, Color: "#3f7a35"},
			{Height: 200, Color: "#6b5b4b"},
			{Height: 270, Color: "#f4f4f4"},
		},
		Graphics: GraphicsConfig{
			Width:     960,
			Height:    600,
			VSync:     true,
			FrameRate: 60,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			ListenAddr: ":9090",
		},
	}
}

// LoadConfig loads the configuration from a file. A missing file yields the
// defaults together with a wrapped os.ErrNotExist.
func LoadConfig(filePath string) (*Config, error) {
	// Create default config
	config := DefaultConfig()

	// Read file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return config, fmt.Errorf("error parsing config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	// Convert to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	// Write file
	err = os.WriteFile(filePath, data, 0644)
	if err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks value ranges that would otherwise fail deep inside the
// renderer
func (c *Config) Validate() error {
	t := c.Terrain
	switch {
	case t.Levels < 1 || t.Levels > heightfield.MaxLevels:
		return invalid("terrain.levels must be in [1, %d], got %d", heightfield.MaxLevels, t.Levels)
	case t.BlockSize <= 0:
		return invalid("terrain.block_size must be positive, got %g", t.BlockSize)
	case t.Source != SourceNoise && t.Source != SourceImage:
		return invalid("terrain.source must be %q or %q, got %q", SourceNoise, SourceImage, t.Source)
	case t.Source == SourceImage && t.ImagePath == "":
		return invalid("terrain.image_path is required for the image source")
	case t.Source == SourceNoise && t.Noise.Octaves < 1:
		return invalid("terrain.noise.octaves must be at least 1, got %d", t.Noise.Octaves)
	}

	if c.Camera.FovYDegrees <= 0 || c.Camera.FovYDegrees >= 180 {
		return invalid("camera.fov_y_degrees must be in (0, 180), got %g", c.Camera.FovYDegrees)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return invalid("screen must be at least 1x1, got %dx%d", c.Screen.Width, c.Screen.Height)
	}

	switch strings.ToLower(c.Render.Traversal) {
	case TraversalHierarchical, TraversalGrid:
	default:
		return invalid("render.traversal must be %q or %q, got %q", TraversalHierarchical, TraversalGrid, c.Render.Traversal)
	}
	if c.Render.Workers < 1 {
		return invalid("render.workers must be at least 1, got %d", c.Render.Workers)
	}

	for i := 1; i < len(c.Colors); i++ {
		if c.Colors[i].Height < c.Colors[i-1].Height {
			return invalid("colors must be sorted by height (stop %d)", i)
		}
	}

	if c.Metrics.Enabled && c.Metrics.ListenAddr == "" {
		return invalid("metrics.listen_addr is required when metrics are enabled")
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
