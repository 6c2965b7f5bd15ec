package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
// Organized counts placed (or dry-run previewed) files; Scanned counts files
// read in stats-only mode, where nothing is touched.
type RunStats struct {
	Total      int
	Current    int
	Organized  int
	Scanned    int
	Skipped    int
	Failed     int
	TotalBytes int64
}
