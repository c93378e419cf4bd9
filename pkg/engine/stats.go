package engine

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"

	"skyline/internal/util"
)

// WriteStats stores frame statistics as indented JSON
func WriteStats(path string, stats FrameStats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing stats: %w", err)
	}
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("error writing stats file: %w", err)
	}
	return nil
}
