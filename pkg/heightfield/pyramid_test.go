package heightfield

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPyramidLayout(t *testing.T) {
	p, err := NewPyramid(4, 0.0)
	require.NoError(t, err)

	require.Equal(t, 4, p.Levels())
	require.Equal(t, 85, p.Len())
	require.Equal(t, 0, p.Offset(0))
	require.Equal(t, 1, p.Offset(1))
	require.Equal(t, 5, p.Offset(2))
	require.Equal(t, 21, p.Offset(3))
	require.Equal(t, 8, p.Side(3))
}

func TestPyramidFill(t *testing.T) {
	p, err := NewPyramid(3, -1)
	require.NoError(t, err)

	v, err := p.Get(2, 3, 3)
	require.NoError(t, err)
	require.Equal(t, -1, v)
}

func TestPyramidReadWriteRoundTrip(t *testing.T) {
	p, err := NewPyramid(3, 0.0)
	require.NoError(t, err)

	require.NoError(t, p.Set(2, 1, 3, 42.5))
	v, err := p.Get(2, 1, 3)
	require.NoError(t, err)
	require.Equal(t, 42.5, v)

	// neighbours and ancestors are untouched
	v, err = p.Get(2, 3, 1)
	require.NoError(t, err)
	require.Zero(t, v)
	v, err = p.Get(0, 0, 0)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestPyramidIndexOutOfRange(t *testing.T) {
	p, err := NewPyramid(3, 0.0)
	require.NoError(t, err)

	cases := []struct {
		name        string
		level, x, y int
	}{
		{name: "level too deep", level: 3},
		{name: "negative level", level: -1},
		{name: "x past edge", level: 1, x: 2},
		{name: "y past edge", level: 2, y: 4},
		{name: "negative x", level: 2, x: -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := p.Get(c.level, c.x, c.y)
			require.ErrorIs(t, err, ErrIndexOutOfRange)

			err = p.Set(c.level, c.x, c.y, 1)
			require.ErrorIs(t, err, ErrIndexOutOfRange)
		})
	}
}

func TestPyramidLevelLimits(t *testing.T) {
	_, err := NewPyramid(0, 0.0)
	require.ErrorIs(t, err, ErrNoLevels)

	_, err = NewPyramid(-2, 0.0)
	require.ErrorIs(t, err, ErrNoLevels)

	_, err = NewPyramid(MaxLevels+1, 0.0)
	require.ErrorIs(t, err, ErrTooManyLevels)
}
