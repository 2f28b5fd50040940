// Package fps derives a frame rate for an extracted frame set.
//
// Two signals are consulted in strict priority order: the per-frame delay
// values of a metadata descriptor shipped inside the archive, then the
// modification-timestamp deltas of the frame files themselves. When neither
// yields a strictly positive mean interval, a configured default applies.
//
// The descriptor is authoritative when it parses and carries at least one
// delay entry: a non-positive mean delay resolves to the default directly,
// without consulting timestamps. Only a missing, unreadable, malformed, or
// empty descriptor falls through to timestamp estimation.
package fps

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source identifies which signal produced the estimate.
type Source string

const (
	SourceMetadata   Source = "metadata"   // Mean of descriptor delay values.
	SourceTimestamps Source = "timestamps" // Mean of file mtime deltas.
	SourceDefault    Source = "default"    // No usable signal; configured fallback.
)

// Result is one frame-rate estimate for a working folder. FPS is always
// strictly positive and rounded to two decimals.
type Result struct {
	FPS     float64
	Source  Source
	Samples int // Delay entries or pairwise deltas that fed the mean.
}

// descriptor is the metadata sidecar layout: a frames collection with one
// delay (milliseconds) per frame. Unknown fields are ignored.
type descriptor struct {
	Frames []struct {
		Delay float64 `json:"delay"`
	} `json:"frames"`
}

// Estimate computes the frame rate for the frames in workDir. metadataName
// is the descriptor filename, frameExt the image extension (lowercase, with
// dot), defaultFPS the fallback (must be positive).
func Estimate(workDir, metadataName, frameExt string, defaultFPS float64) Result {
	if res, decided := fromMetadata(filepath.Join(workDir, metadataName), defaultFPS); decided {
		return res
	}
	return fromTimestamps(workDir, frameExt, defaultFPS)
}

// fromMetadata attempts the descriptor path. decided is false only when the
// descriptor is absent or unusable, in which case timestamp estimation may
// still run. A parsed descriptor with a non-positive mean delay decides the
// outcome as the default.
func fromMetadata(path string, defaultFPS float64) (res Result, decided bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, false
	}

	var d descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Result{}, false
	}
	if len(d.Frames) == 0 {
		return Result{}, false
	}

	var sum float64
	for _, f := range d.Frames {
		sum += f.Delay
	}
	mean := sum / float64(len(d.Frames))
	if mean <= 0 {
		return Result{FPS: defaultFPS, Source: SourceDefault, Samples: len(d.Frames)}, true
	}
	return Result{
		FPS:     round2(1000 / mean),
		Source:  SourceMetadata,
		Samples: len(d.Frames),
	}, true
}

// fromTimestamps sorts the frame files by modification time ascending and
// averages the successive deltas. Fewer than two frames, or a non-positive
// mean (e.g. identical timestamps), yields the default.
func fromTimestamps(workDir, frameExt string, defaultFPS float64) Result {
	times := frameModTimes(workDir, frameExt)
	if len(times) < 2 {
		return Result{FPS: defaultFPS, Source: SourceDefault}
	}

	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	var sum float64
	for i := 1; i < len(times); i++ {
		sum += float64(times[i]-times[i-1]) / 1e6 // ns -> ms
	}
	mean := sum / float64(len(times)-1)
	if mean <= 0 {
		return Result{FPS: defaultFPS, Source: SourceDefault, Samples: len(times) - 1}
	}
	return Result{
		FPS:     round2(1000 / mean),
		Source:  SourceTimestamps,
		Samples: len(times) - 1,
	}
}

// frameModTimes returns the mtimes (UnixNano) of the image files directly in
// workDir. Unreadable entries are skipped.
func frameModTimes(workDir, frameExt string) []int64 {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil
	}
	var times []int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) != frameExt {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		times = append(times, info.ModTime().UnixNano())
	}
	return times
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
