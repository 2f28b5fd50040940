package frames

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const ext = ".png"

// mockLogger records Warn calls for assertions.
type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Warn(format string, args ...interface{}) {
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
}

func TestNormalize_SequentialNoGaps(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"shot_c.png", "shot_a.png", "shot_b.png"} {
		touch(t, dir, name)
	}

	log := &mockLogger{}
	res, err := Normalize(dir, ext, log)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Total != 3 || res.Renamed != 3 || res.Failed != 0 {
		t.Fatalf("got total=%d renamed=%d failed=%d, want 3/3/0", res.Total, res.Renamed, res.Failed)
	}

	want := []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"}
	if got := pngNames(t, dir); !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if len(log.warnings) != 0 {
		t.Errorf("unexpected warnings: %v", log.warnings)
	}
}

func TestNormalize_OrdinalsFollowNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.png", "second")
	writeFile(t, dir, "a.png", "first")

	res, err := Normalize(dir, ext, &mockLogger{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Renamed != 2 {
		t.Fatalf("Renamed: got %d, want 2", res.Renamed)
	}

	if got := readFile(t, dir, "frame_0000.png"); got != "first" {
		t.Errorf("frame_0000: got %q, want %q", got, "first")
	}
	if got := readFile(t, dir, "frame_0001.png"); got != "second" {
		t.Errorf("frame_0001: got %q, want %q", got, "second")
	}
}

func TestNormalize_IdempotentInCount(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 4; i++ {
		touch(t, dir, fmt.Sprintf("src%d.png", i))
	}

	for pass := 0; pass < 2; pass++ {
		res, err := Normalize(dir, ext, &mockLogger{})
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		if res.Total != 4 || res.Renamed != 4 || res.Failed != 0 {
			t.Fatalf("pass %d: got total=%d renamed=%d failed=%d, want 4/4/0",
				pass, res.Total, res.Renamed, res.Failed)
		}
	}

	want := []string{"frame_0000.png", "frame_0001.png", "frame_0002.png", "frame_0003.png"}
	if got := pngNames(t, dir); !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalize_RenameFailureLeavesGap(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png")
	touch(t, dir, "b.png")
	touch(t, dir, "c.png")
	// A directory squatting on the second target makes that rename fail.
	if err := os.Mkdir(filepath.Join(dir, "frame_0001.png"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	log := &mockLogger{}
	res, err := Normalize(dir, ext, log)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Total != 3 || res.Renamed != 2 || res.Failed != 1 {
		t.Fatalf("got total=%d renamed=%d failed=%d, want 3/2/1", res.Total, res.Renamed, res.Failed)
	}
	if len(log.warnings) != 1 {
		t.Fatalf("warnings: got %d, want 1 (%v)", len(log.warnings), log.warnings)
	}

	// The failed file keeps its name; the ordinal advanced past the gap.
	want := []string{"b.png", "frame_0000.png", "frame_0002.png"}
	if got := pngNames(t, dir); !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalize_OccupiedTargetIsFailureNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	// a.png sorts first and targets frame_0000.png, a name another source
	// file already holds. That must surface as a failure, not overwrite it.
	writeFile(t, dir, "a.png", "early")
	writeFile(t, dir, "frame_0000.png", "late")

	log := &mockLogger{}
	res, err := Normalize(dir, ext, log)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Total != 2 || res.Renamed != 1 || res.Failed != 1 {
		t.Fatalf("got total=%d renamed=%d failed=%d, want 2/1/1", res.Total, res.Renamed, res.Failed)
	}
	if len(log.warnings) != 1 {
		t.Fatalf("warnings: got %d, want 1 (%v)", len(log.warnings), log.warnings)
	}

	// Both frames survive with their contents: the blocked file keeps its
	// name and the occupying file moves on to its own ordinal.
	want := []string{"a.png", "frame_0001.png"}
	if got := pngNames(t, dir); !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := readFile(t, dir, "a.png"); got != "early" {
		t.Errorf("a.png: got %q, want %q", got, "early")
	}
	if got := readFile(t, dir, "frame_0001.png"); got != "late" {
		t.Errorf("frame_0001: got %q, want %q", got, "late")
	}
}

func TestNormalize_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "SHOT.PNG")
	touch(t, dir, "shot.png")
	touch(t, dir, "readme.txt")

	res, err := Normalize(dir, ext, &mockLogger{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("Total: got %d, want 2", res.Total)
	}
}

func TestNormalize_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	res, err := Normalize(dir, ext, &mockLogger{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Total != 0 {
		t.Errorf("Total: got %d, want 0", res.Total)
	}
}

func TestInputPattern(t *testing.T) {
	got := InputPattern("/tmp/work", ".png")
	want := filepath.Join("/tmp/work", "frame_%04d.png")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestName(t *testing.T) {
	if got := Name(7, ".png"); got != "frame_0007.png" {
		t.Errorf("got %q, want frame_0007.png", got)
	}
	if got := Name(12345, ".png"); got != "frame_12345.png" {
		t.Errorf("got %q, want frame_12345.png (width grows past 4 digits)", got)
	}
}

// --- Helpers ---

func touch(t *testing.T, dir, name string) {
	t.Helper()
	writeFile(t, dir, name, "")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

// pngNames lists the .png files (not directories) in dir, sorted.
func pngNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
