package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
// Kept counts sources accepted as-is (copied with the .orig. marker);
// Encoded counts files that went through the search and refinement.
type RunStats struct {
	Total            int
	Current          int
	Encoded          int
	Kept             int
	Skipped          int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
