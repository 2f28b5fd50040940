package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int // Archives discovered.
	Current          int // 1-based index of the archive being processed.
	Converted        int
	Skipped          int
	Failed           int
	TotalFrames      int
	TotalOutputBytes int64
}

// Completed returns how many archives reached a terminal state.
func (s *RunStats) Completed() int {
	return s.Converted + s.Skipped + s.Failed
}
