package ffmpeg

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// CleanPassLogs removes the pass-1 statistics files from workDir. Absence is
// not an error; the first real failure is returned so callers can log it.
func CleanPassLogs(workDir string) error {
	side := []string{
		passLogPrefix + "-0.log",
		passLogPrefix + "-0.log.mbtree",
	}
	for _, name := range side {
		err := os.Remove(filepath.Join(workDir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
