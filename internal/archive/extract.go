package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/framereel/framereel/internal/term"
)

// Extract unpacks zipPath into workDir. Any pre-existing workDir is removed
// first: re-running on the same folder discards prior extraction results by
// design. Entry timestamps are preserved so the timestamp-based frame-rate
// fallback still sees the original capture intervals.
func Extract(zipPath, workDir string) error {
	if err := os.RemoveAll(workDir); err != nil {
		return fmt.Errorf("reset working folder: %w", err)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("create working folder: %w", err)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	bar := newBar(len(r.File), filepath.Base(zipPath))
	for _, f := range r.File {
		if err := extractEntry(f, workDir); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return nil
}

// extractEntry writes one archive member under workDir, rejecting paths that
// would escape it.
func extractEntry(f *zip.File, workDir string) error {
	dest, err := securePath(workDir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// Keep the archived mtime; the FPS fallback reads it.
	if mt := f.Modified; !mt.IsZero() {
		_ = os.Chtimes(dest, mt, mt)
	}
	return nil
}

// securePath joins name under workDir and rejects absolute names and
// traversal outside the working folder.
func securePath(workDir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("unsafe entry path %q", name)
	}
	return filepath.Join(workDir, cleaned), nil
}

// newBar builds the extraction progress bar. Invisible when stderr is not a
// terminal so batch logs stay clean.
func newBar(total int, label string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("unpacking "+label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(term.IsTerminal(os.Stderr)),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)
}
