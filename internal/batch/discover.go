package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mrlokans/qawash/internal/formats"
	"github.com/mrlokans/qawash/internal/utils"
)

// editorLockPrefix marks the lock files office suites leave next to open workbooks.
const editorLockPrefix = "~$"

// Discover lists the source files to wash.
//
// With an explicit name only that file is returned; the extension may be
// omitted. Otherwise every file in dir with a matching extension is returned,
// sorted by name, except names containing "_" (snapshots of an earlier run),
// generated artifacts and editor lock files.
func Discover(dir string, format formats.Input, explicit string) ([]string, error) {
	if explicit != "" {
		path, err := resolveExplicit(dir, format, explicit)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !format.Matches(name) ||
			strings.Contains(name, "_") ||
			strings.HasPrefix(name, editorLockPrefix) ||
			utils.IsGenerated(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func resolveExplicit(dir string, format formats.Input, name string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if isFile(path) {
		return path, nil
	}
	if !format.Matches(path) {
		for _, ext := range format.Extensions() {
			if isFile(path + ext) {
				return path + ext, nil
			}
		}
	}
	return "", fmt.Errorf("input file %s: %w", name, os.ErrNotExist)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
