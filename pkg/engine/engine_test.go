package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"skyline/internal/logger"
)

func TestToggleDebugSwitchesWholeTree(t *testing.T) {
	root := quietLogger()
	viewer := root.Named("viewer")

	require.Equal(t, logger.DEBUG, toggleDebug(viewer))
	require.Equal(t, logger.DEBUG, root.Level())

	require.Equal(t, logger.INFO, toggleDebug(viewer))
	require.Equal(t, logger.INFO, root.Named("render").Level())
}
