package core

import (
	"go.uber.org/zap"

	"github.com/ghostcomment/ghostcomment/internal/cleaner"
	"github.com/ghostcomment/ghostcomment/internal/config"
	"github.com/ghostcomment/ghostcomment/internal/engine"
	"github.com/ghostcomment/ghostcomment/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type ScanConfig = config.ScanConfig
type GhostComment = types.GhostComment
type CleanOptions = types.CleanOptions
type CleanResult = types.CleanResult
type ValidationResult = types.ValidationResult

// DefaultConfig returns the configuration used when a caller has no
// opinions: the //_gc_ marker over every file under the root.
func DefaultConfig() ScanConfig {
	return config.Default()
}

// Scan finds ghost comments under root. A nil logger is replaced with a
// no-op one.
func Scan(cfg ScanConfig, root string, logger *zap.Logger) ([]GhostComment, error) {
	return engine.New(cfg, logger).Scan(root)
}

// ScanFile finds ghost comments in a single file, given relative to root
// or absolute but inside it.
func ScanFile(cfg ScanConfig, root, path string, logger *zap.Logger) ([]GhostComment, error) {
	return engine.New(cfg, logger).ScanFile(root, path)
}

// Clean deletes the comment lines from their files under root, with the
// transactional behavior selected by opts.
func Clean(comments []GhostComment, opts CleanOptions, root string, logger *zap.Logger) (CleanResult, error) {
	return cleaner.New(logger).RemoveComments(comments, opts, root)
}

// Validate reports whether comments are still safe to delete without
// touching anything.
func Validate(comments []GhostComment, root string, logger *zap.Logger) ValidationResult {
	return cleaner.New(logger).Validate(comments, root)
}
