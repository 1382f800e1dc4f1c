package cleaner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ghostcomment/ghostcomment/internal/cache"
	"github.com/ghostcomment/ghostcomment/internal/gcerr"
	"github.com/ghostcomment/ghostcomment/internal/types"
)

// Cleaner removes previously scanned ghost-comment lines from disk with
// per-file transactional semantics: every line is re-verified byte-for-byte
// against the scan-time record before anything is written, and with backups
// enabled a partially failed batch can be rolled back.
type Cleaner struct {
	Logger *zap.Logger
	// NoCache disables the scan-snapshot consultation; line verification
	// is authoritative either way.
	NoCache bool
}

// New returns a Cleaner. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{Logger: logger}
}

type fileStats struct {
	mode  fs.FileMode
	atime time.Time
	mtime time.Time
}

// cleanedFile is the per-file record of one clean operation. It is owned by
// a single RemoveComments call and discarded when the call returns.
type cleanedFile struct {
	absPath         string
	relPath         string
	backupPath      string // empty when no backup was made
	commentsRemoved int
	stats           fileStats
}

// RemoveComments groups comments by file and cleans each file in turn.
// A failure on one file is isolated: the path lands in ErrorFiles and the
// batch continues. After the batch, RestoreOnError rolls back every file
// that was cleaned and has a backup; RemoveBackups deletes backups after a
// fully successful batch.
func (c *Cleaner) RemoveComments(comments []types.GhostComment, opts types.CleanOptions, workingDir string) (types.CleanResult, error) {
	var res types.CleanResult
	if len(comments) == 0 {
		return res, nil
	}
	if err := validateOptions(opts); err != nil {
		return res, err
	}
	root, err := filepath.Abs(workingDir)
	if err != nil {
		return res, gcerr.Wrap(gcerr.KindFile, "resolve working directory", err)
	}

	snapshot := cache.DB{}
	if !c.NoCache {
		if db, err := cache.Load(root); err == nil {
			snapshot = db
		}
	}

	groups := GroupByFile(comments)
	paths := make([]string, 0, len(groups))
	for p := range groups {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var cleaned []cleanedFile
	for _, rel := range paths {
		cf, err := c.cleanFile(root, rel, groups[rel], opts, snapshot)
		if err != nil {
			c.Logger.Warn("failed to clean file", zap.String("file", rel), zap.Error(err))
			res.ErrorFiles = append(res.ErrorFiles, rel)
			res.HasErrors = true
			continue
		}
		res.FilesProcessed++
		res.CommentsRemoved += cf.commentsRemoved
		if !opts.DryRun {
			res.ModifiedFiles = append(res.ModifiedFiles, rel)
			cleaned = append(cleaned, cf)
		}
	}

	if res.HasErrors && opts.RestoreOnError && !opts.DryRun {
		c.restoreAll(cleaned)
		// The batch's net effect is undone wherever a backup existed.
		res.CommentsRemoved = 0
	}
	if !res.HasErrors && opts.RemoveBackups {
		for _, cf := range cleaned {
			if cf.backupPath == "" {
				continue
			}
			if err := os.Remove(cf.backupPath); err != nil {
				c.Logger.Warn("failed to remove backup", zap.String("backup", cf.backupPath), zap.Error(err))
			}
		}
	}
	return res, nil
}

// validateOptions rejects the one combination that cannot do what it
// promises: a real run asking for rollback without taking backups.
func validateOptions(opts types.CleanOptions) error {
	if opts.RestoreOnError && !opts.CreateBackups && !opts.DryRun {
		return gcerr.New(gcerr.KindConfig, "restore_on_error requires create_backups: there would be no backups to restore from")
	}
	return nil
}

// cleanFile is the per-file state machine: stat, backup, read, verify every
// comment, then either stop (dry run) or rewrite and restore metadata.
func (c *Cleaner) cleanFile(root, rel string, group []types.GhostComment, opts types.CleanOptions, snapshot cache.DB) (cleanedFile, error) {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if err != nil {
		return cleanedFile{}, gcerr.Wrap(gcerr.KindFile, "stat "+rel, err)
	}
	stats := fileStats{mode: info.Mode(), atime: accessTime(info), mtime: info.ModTime()}
	cf := cleanedFile{absPath: abs, relPath: rel, stats: stats}

	if opts.CreateBackups && !opts.DryRun {
		backup, err := writeBackup(abs, stats.mode)
		if err != nil {
			return cleanedFile{}, err
		}
		cf.backupPath = backup
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return cleanedFile{}, gcerr.Wrap(gcerr.KindFile, "read "+rel, err)
	}
	if h, ok := snapshot.Entries[rel]; ok && h != cache.Hash(data) {
		c.Logger.Debug("file content changed since scan, relying on per-line verification",
			zap.String("file", rel))
	}

	// Verify every comment before mutating anything, so a drift on the
	// second of three still reports precisely which one.
	lines := strings.Split(string(data), "\n")
	remove := make(map[int]bool, len(group))
	for _, gc := range group {
		idx := gc.LineNumber - 1
		if idx < 0 || idx >= len(lines) {
			return cleanedFile{}, gcerr.Newf(gcerr.KindFile,
				"%s: line %d out of range (file has %d lines)", rel, gc.LineNumber, len(lines))
		}
		if lines[idx] != gc.OriginalLine {
			return cleanedFile{}, gcerr.Newf(gcerr.KindFile,
				"%s: line %d changed since scan: expected %q, found %q", rel, gc.LineNumber, gc.OriginalLine, lines[idx])
		}
		remove[idx] = true
	}
	cf.commentsRemoved = len(remove)

	if opts.DryRun {
		return cf, nil
	}

	kept := make([]string, 0, len(lines)-len(remove))
	for i, line := range lines {
		if !remove[i] {
			kept = append(kept, line)
		}
	}
	if err := os.WriteFile(abs, []byte(strings.Join(kept, "\n")), stats.mode.Perm()); err != nil {
		return cleanedFile{}, gcerr.Wrap(gcerr.KindFile, "write "+rel, err)
	}
	c.restoreStats(abs, rel, stats)
	return cf, nil
}

// writeBackup copies the file to a hidden sibling and verifies the copy by
// content hash before the original is allowed to be mutated.
func writeBackup(abs string, mode fs.FileMode) (string, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", gcerr.Wrap(gcerr.KindFile, "read for backup "+abs, err)
	}
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(time.Now().UTC().Format(time.RFC3339Nano))
	backup := filepath.Join(filepath.Dir(abs),
		fmt.Sprintf(".%s.ghostcomment-backup-%s", filepath.Base(abs), ts))
	if err := os.WriteFile(backup, data, mode.Perm()); err != nil {
		return "", gcerr.Wrap(gcerr.KindFile, "write backup "+backup, err)
	}
	back, err := os.ReadFile(backup)
	if err != nil {
		return "", gcerr.Wrap(gcerr.KindFile, "verify backup "+backup, err)
	}
	if cache.Hash(back) != cache.Hash(data) {
		return "", gcerr.Newf(gcerr.KindFile, "backup verification failed for %s", abs)
	}
	return backup, nil
}

// restoreStats puts mode and timestamps back best-effort; failure here is
// cosmetic and never fails the operation.
func (c *Cleaner) restoreStats(abs, rel string, st fileStats) {
	if err := os.Chmod(abs, st.mode.Perm()); err != nil {
		c.Logger.Warn("failed to restore file mode", zap.String("file", rel), zap.Error(err))
	}
	if err := os.Chtimes(abs, st.atime, st.mtime); err != nil {
		c.Logger.Warn("failed to restore file times", zap.String("file", rel), zap.Error(err))
	}
}

// restoreAll copies each backup over its original. Rollback is only as
// strong as the backups taken: files cleaned without a backup stay cleaned.
func (c *Cleaner) restoreAll(cleaned []cleanedFile) {
	for _, cf := range cleaned {
		if cf.backupPath == "" {
			continue
		}
		data, err := os.ReadFile(cf.backupPath)
		if err != nil {
			c.Logger.Warn("failed to read backup during rollback",
				zap.String("backup", cf.backupPath), zap.Error(err))
			continue
		}
		if err := os.WriteFile(cf.absPath, data, cf.stats.mode.Perm()); err != nil {
			c.Logger.Warn("failed to restore file during rollback",
				zap.String("file", cf.relPath), zap.Error(err))
			continue
		}
		c.restoreStats(cf.absPath, cf.relPath, cf.stats)
	}
}
