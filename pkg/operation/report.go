package operation

// 📊 Report accumulates the outcome of one fix run. It is ephemeral:
// built up while files are processed, emitted once, then discarded.
type Report struct {
	// Scanned is the number of candidate files processed
	Scanned int

	// Fixed lists the root-relative paths of rewritten files, in
	// processing order
	Fixed []string

	// Skipped lists the root-relative paths of files skipped because
	// of per-file I/O errors
	Skipped []string

	// Rewrites is the total number of spans rewritten across all files
	Rewrites int
}

// FixedCount returns the number of files that were rewritten
func (r *Report) FixedCount() int {
	return len(r.Fixed)
}
