package cleaner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ghostcomment/ghostcomment/internal/types"
)

// Validate performs the same range and drift checks as a real clean but
// never mutates, and unlike the mutating path it aggregates every problem
// across every file and comment so the caller sees the full set at once.
// Empty input is trivially valid.
func (c *Cleaner) Validate(comments []types.GhostComment, workingDir string) types.ValidationResult {
	res := types.ValidationResult{Valid: true}
	if len(comments) == 0 {
		return res
	}
	root, err := filepath.Abs(workingDir)
	if err != nil {
		res.Valid = false
		res.Errors = append(res.Errors, fmt.Sprintf("resolve working directory: %v", err))
		return res
	}

	groups := GroupByFile(comments)
	paths := make([]string, 0, len(groups))
	for p := range groups {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, rel := range paths {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		f, err := os.OpenFile(abs, os.O_RDWR, 0)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: not accessible for read/write: %v", rel, err))
			continue
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: read failed: %v", rel, err))
			continue
		}
		lines := strings.Split(string(data), "\n")
		for _, gc := range groups[rel] {
			idx := gc.LineNumber - 1
			if idx < 0 || idx >= len(lines) {
				res.Errors = append(res.Errors, fmt.Sprintf(
					"%s: line %d out of range (file has %d lines)", rel, gc.LineNumber, len(lines)))
				continue
			}
			if lines[idx] != gc.OriginalLine {
				res.Errors = append(res.Errors, fmt.Sprintf(
					"%s: line %d changed since scan: expected %q, found %q", rel, gc.LineNumber, gc.OriginalLine, lines[idx]))
			}
		}
	}
	res.Valid = len(res.Errors) == 0
	return res
}
