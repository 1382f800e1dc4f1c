package types

// GhostComment is the immutable record of one discovered marker line.
// OriginalLine keeps the full unmodified line text, leading whitespace
// included; it is the ground truth compared byte-for-byte before any
// deletion to detect drift.
type GhostComment struct {
	FilePath     string `json:"file_path"`   // relative to the scan root, forward slashes
	LineNumber   int    `json:"line_number"` // 1-based
	Content      string `json:"content"`     // trimmed text after the prefix token
	Prefix       string `json:"prefix"`      // the literal marker token matched
	OriginalLine string `json:"original_line"`
}

// CleanOptions are independent policy switches for a clean operation.
// All combinations are supported except RestoreOnError without
// CreateBackups on a real run, which is rejected up front because there
// would be nothing to restore from.
type CleanOptions struct {
	CreateBackups  bool `json:"create_backups"`
	RestoreOnError bool `json:"restore_on_error"`
	RemoveBackups  bool `json:"remove_backups"`
	DryRun         bool `json:"dry_run"`
}

// CleanResult is the aggregate outcome of one RemoveComments call.
type CleanResult struct {
	FilesProcessed  int      `json:"files_processed"`
	CommentsRemoved int      `json:"comments_removed"`
	ModifiedFiles   []string `json:"modified_files"`
	ErrorFiles      []string `json:"error_files"`
	HasErrors       bool     `json:"has_errors"`
}

// ValidationResult aggregates every problem found by a read-only
// pre-flight check. Errors holds one entry per problem across all files.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
