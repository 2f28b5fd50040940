// Package frames renames extracted frame files into the strict sequential
// naming scheme the encoder consumes.
package frames

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pattern is the printf-style frame filename pattern, without extension.
const Pattern = "frame_%04d"

// Logger is the minimal logging interface needed for rename-failure
// reporting. Defined here (rather than importing the logging package) so
// that frames stays dependency-light and testable with a mock logger.
type Logger interface {
	Warn(string, ...interface{})
}

// NormalizeResult summarizes a normalization pass over one working folder.
type NormalizeResult struct {
	Total   int // Matching frame files found.
	Renamed int // Files renamed (or already carrying their target name).
	Failed  int // Rename failures (logged and skipped; ordinal still advanced).
}

// InputPattern returns the ffmpeg image2 input pattern for workDir.
func InputPattern(workDir, frameExt string) string {
	return filepath.Join(workDir, Pattern+frameExt)
}

// Name returns the canonical filename for ordinal n.
func Name(n int, frameExt string) string {
	return fmt.Sprintf(Pattern, n) + frameExt
}

// Normalize renames every frame file directly in workDir to the zero-padded
// sequential scheme, ordinals from 0. Files are ordered by name ascending;
// this is deliberately distinct from the estimator's timestamp ordering.
// A failure renaming one file is logged and skipped, and the ordinal counter
// still advances, which leaves a gap in the output sequence. A target name
// that is already occupied by something else counts as such a failure;
// renaming over it would silently drop a frame.
func Normalize(workDir, frameExt string, log Logger) (NormalizeResult, error) {
	names, err := listFrames(workDir, frameExt)
	if err != nil {
		return NormalizeResult{}, err
	}

	res := NormalizeResult{Total: len(names)}
	for i, name := range names {
		target := Name(i, frameExt)
		if name == target {
			res.Renamed++
			continue
		}
		oldPath := filepath.Join(workDir, name)
		newPath := filepath.Join(workDir, target)
		if _, err := os.Lstat(newPath); err == nil {
			log.Warn("Rename skipped for %s: %s already exists", name, target)
			res.Failed++
			continue
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			log.Warn("Rename failed for %s: %v", name, err)
			res.Failed++
			continue
		}
		res.Renamed++
	}
	return res, nil
}

// listFrames returns the names of matching image files directly in workDir,
// sorted ascending by name.
func listFrames(workDir, frameExt string) ([]string, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) != frameExt {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
