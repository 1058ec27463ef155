package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/qawash/internal/logger"
	"github.com/mrlokans/qawash/internal/utils"
)

// Clean removes every generated artifact in dir and returns the removed paths.
func Clean(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() || !utils.IsGenerated(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		logger.Infof("Removed %s", path)
		removed = append(removed, path)
	}
	return removed, nil
}
