// Package prompt implements the interactive source-folder prompt used when
// no directory argument was given.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/framereel/framereel/internal/term"
)

// ErrCancelled is returned when the user aborts folder selection (empty
// input or EOF). The caller terminates the run with a non-zero exit status.
var ErrCancelled = errors.New("folder selection cancelled")

// ErrNoTerminal is returned when no directory argument was given and stdin
// is not a terminal, so no prompt can be shown.
var ErrNoTerminal = errors.New("no source directory given and stdin is not a terminal")

// ChooseSourceDir asks for the folder containing the ZIP archives. The reply
// may use a leading ~ for the home directory and must name an existing
// directory.
func ChooseSourceDir(in *os.File, out io.Writer) (string, error) {
	if !term.IsTerminal(in) {
		return "", ErrNoTerminal
	}

	fmt.Fprint(out, "Folder containing the ZIP archives (empty to cancel): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", ErrCancelled
	}
	reply := strings.TrimSpace(line)
	if reply == "" {
		return "", ErrCancelled
	}

	dir, err := expandHome(reply)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("cannot use %q: %w", reply, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", reply)
	}
	return filepath.Clean(dir), nil
}

// expandHome resolves a leading ~ or ~/ against the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand ~: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
