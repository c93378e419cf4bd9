package util

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampAndMap(t *testing.T) {
	require.Equal(t, 0.0, Clamp(-3, 0, 1))
	require.Equal(t, 1.0, Clamp(7, 0, 1))
	require.Equal(t, 0.25, Clamp(0.25, 0, 1))
	require.Equal(t, 255, ClampInt(300, 0, 255))
	require.Equal(t, 0, ClampInt(-1, 0, 255))

	require.Equal(t, 50.0, Map(5, 0, 10, 0, 100))
	require.Equal(t, 100.0, Map(20, 0, 10, 0, 100))
	require.Equal(t, 3.0, Map(1, 2, 2, 3, 4))
	require.Equal(t, 2.5, Lerp(2, 3, 0.5))
}

func TestAngles(t *testing.T) {
	require.InDelta(t, math.Pi, Radians(180), 1e-12)
	require.Equal(t, 350.0, WrapDegrees(-10))
	require.Equal(t, 20.0, WrapDegrees(740))
	require.Equal(t, 0.0, WrapDegrees(360))
}

func TestFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.png")

	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, EnsureParentDir(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
