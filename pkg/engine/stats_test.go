package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

func TestWriteStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	stats := FrameStats{Traversal: "hierarchical", Columns: 320, Events: 9000, Leaves: 8000, Pruned: 12, Duration: 3 * time.Millisecond}

	require.NoError(t, WriteStats(path, stats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded FrameStats
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.Equal(t, stats, loaded)
	require.Contains(t, string(data), `"duration_ns": 3000000`)
}
