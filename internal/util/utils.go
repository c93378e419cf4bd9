package util

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Lerp performs linear interpolation between a and b with t in [0,1]
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp restricts a value to be between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampInt restricts an integer to be between min and max
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Map remaps a value from one range to another
func Map(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	// Calculate normalized position in input range [0,1]
	t := (value - inMin) / (inMax - inMin)
	// Clamp t to [0,1] to handle values outside the input range
	t = Clamp(t, 0, 1)
	// Apply to output range
	return outMin + t*(outMax-outMin)
}

// Radians converts degrees to radians
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// WrapDegrees folds an angle into [0, 360)
func WrapDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// EnsureParentDir creates the directory that will hold filename
func EnsureParentDir(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
