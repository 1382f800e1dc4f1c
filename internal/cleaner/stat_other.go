//go:build !linux && !darwin

package cleaner

import (
	"io/fs"
	"time"
)

// Platforms without a portable atime in Stat_t fall back to mtime; the
// restore is best-effort anyway.
func accessTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
