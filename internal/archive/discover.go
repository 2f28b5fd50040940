// Package archive locates ZIP archives and unpacks them into per-archive
// working folders.
package archive

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover returns the ZIP archives directly inside dir (non-recursive,
// case-insensitive extension match), sorted lexicographically for
// deterministic processing order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".zip" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// BaseName returns the archive filename without directory or extension; it
// names the working folder and the output video.
func BaseName(zipPath string) string {
	base := filepath.Base(zipPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WorkDirFor returns the working-folder path for an archive: a sibling
// directory prefixed with "frames_".
func WorkDirFor(zipPath string) string {
	return filepath.Join(filepath.Dir(zipPath), "frames_"+BaseName(zipPath))
}
