package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ghostcomment/ghostcomment/internal/cache"
	"github.com/ghostcomment/ghostcomment/internal/config"
	"github.com/ghostcomment/ghostcomment/internal/gcerr"
	"github.com/ghostcomment/ghostcomment/internal/types"
)

// Resource guards. MaxFileCount is a whole-run guard evaluated before any
// file is read; MaxFileSize is checked per file and only skips that file.
const (
	MaxFileCount = 10000
	MaxFileSize  = 10 * 1024 * 1024
)

// Scanner extracts ghost-comment records from files selected by a
// ScanConfig. Non-fatal per-file problems (oversize, unreadable) are logged
// through the injected logger and the file is skipped; configuration and
// run-level guard violations fail the whole scan.
type Scanner struct {
	Config  config.ScanConfig
	Logger  *zap.Logger
	NoCache bool
}

// New returns a Scanner. A nil logger is replaced with a no-op logger.
func New(cfg config.ScanConfig, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{Config: cfg, Logger: logger}
}

// Scan enumerates candidate files and returns every ghost comment found,
// in file-enumeration order, then per-file line order.
func (s *Scanner) Scan(workingDir string) ([]types.GhostComment, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(workingDir)
	if err != nil {
		return nil, gcerr.Wrap(gcerr.KindFile, "resolve working directory", err)
	}
	paths, err := Enumerate(root, s.Config.Include, s.Config.Exclude)
	if err != nil {
		return nil, gcerr.Wrap(gcerr.KindFile, "enumerate files", err)
	}
	if len(paths) > MaxFileCount {
		return nil, gcerr.Newf(gcerr.KindFile, "too many files to scan: %d (limit %d)", len(paths), MaxFileCount)
	}

	snapshot := cache.DB{Entries: map[string]string{}}
	var out []types.GhostComment
	for _, p := range paths {
		rel := relSlash(root, p)
		data, ok := s.readGuarded(p, rel)
		if !ok {
			continue
		}
		if !s.NoCache {
			snapshot.Entries[rel] = cache.Hash(data)
		}
		out = append(out, extract(string(data), s.Config.Prefix, rel)...)
	}
	if !s.NoCache && len(snapshot.Entries) > 0 {
		if err := cache.Save(root, snapshot); err != nil {
			s.Logger.Warn("failed to save scan snapshot", zap.Error(err))
		}
	}
	return out, nil
}

// ScanFile runs the same extraction restricted to one path, which may be
// relative to workingDir or absolute under it. Emitted paths are always
// the normalized relative form.
func (s *Scanner) ScanFile(workingDir, path string) ([]types.GhostComment, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(workingDir)
	if err != nil {
		return nil, gcerr.Wrap(gcerr.KindFile, "resolve working directory", err)
	}
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(root, path)
		if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return nil, gcerr.Newf(gcerr.KindFile, "%s is outside the working directory %s", path, root)
		}
		rel = r
	}
	abs := filepath.Join(root, rel)
	info, err := os.Stat(abs)
	if err != nil {
		return nil, gcerr.Wrap(gcerr.KindFile, "stat "+rel, err)
	}
	if info.Size() > MaxFileSize {
		s.Logger.Warn("file too large, skipping",
			zap.String("file", filepath.ToSlash(rel)), zap.Int64("size", info.Size()))
		return nil, nil
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, gcerr.Wrap(gcerr.KindFile, "read "+rel, err)
	}
	return extract(string(data), s.Config.Prefix, filepath.ToSlash(rel)), nil
}

// Count performs the same walk as Scan but keeps only a running total, so
// memory use is independent of how many comments exist. Per-file failures
// are skipped the same way Scan skips them.
func (s *Scanner) Count(workingDir string) (int, error) {
	if err := s.Config.Validate(); err != nil {
		return 0, err
	}
	root, err := filepath.Abs(workingDir)
	if err != nil {
		return 0, gcerr.Wrap(gcerr.KindFile, "resolve working directory", err)
	}
	paths, err := Enumerate(root, s.Config.Include, s.Config.Exclude)
	if err != nil {
		return 0, gcerr.Wrap(gcerr.KindFile, "enumerate files", err)
	}
	if len(paths) > MaxFileCount {
		return 0, gcerr.Newf(gcerr.KindFile, "too many files to scan: %d (limit %d)", len(paths), MaxFileCount)
	}
	n := 0
	prefix := []byte(s.Config.Prefix)
	for _, p := range paths {
		data, ok := s.readGuarded(p, relSlash(root, p))
		if !ok {
			continue
		}
		for _, line := range bytes.Split(data, []byte("\n")) {
			if bytes.Contains(line, prefix) {
				n++
			}
		}
	}
	return n, nil
}

// readGuarded applies the per-file guards: stat failures, oversize files,
// read failures, and binary content all skip the file without failing the
// run. The second return is false when the file was skipped.
func (s *Scanner) readGuarded(path, rel string) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil {
		s.Logger.Warn("failed to stat file, skipping", zap.String("file", rel), zap.Error(err))
		return nil, false
	}
	if info.Size() > MaxFileSize {
		s.Logger.Warn("file too large, skipping", zap.String("file", rel), zap.Int64("size", info.Size()))
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.Logger.Warn("failed to read file, skipping", zap.String("file", rel), zap.Error(err))
		return nil, false
	}
	if looksBinary(data) {
		s.Logger.Debug("binary file, skipping", zap.String("file", rel))
		return nil, false
	}
	return data, true
}

// extract finds every line containing prefix. Content is the remainder
// after the prefix with surrounding whitespace trimmed; OriginalLine is the
// verbatim line, indentation included.
func extract(content, prefix, rel string) []types.GhostComment {
	var out []types.GhostComment
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		idx := strings.Index(line, prefix)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(prefix):]
		out = append(out, types.GhostComment{
			FilePath:     rel,
			LineNumber:   i + 1,
			Content:      strings.TrimSpace(rest),
			Prefix:       prefix,
			OriginalLine: line,
		})
	}
	return out
}

func relSlash(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}
