package engine

import (
	"io/fs"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Directories that never hold reviewable source; skipped unconditionally.
var defaultExcludeDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	".venv":        true,
}

// Enumerate expands include/exclude glob patterns into the list of absolute
// candidate paths under root, in lexical walk order. It does not read file
// contents; size and readability guards are applied by the caller per file.
func Enumerate(root string, include, exclude []string) ([]string, error) {
	inc := normalizeGlobs(include)
	exc := normalizeGlobs(exclude)
	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && defaultExcludeDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rp := filepath.ToSlash(rel)
		if !matchAnyGlob(rp, inc) {
			return nil
		}
		if matchAnyGlob(rp, exc) {
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeGlobs trims whitespace and adds a variant without a leading
// "./" or "**/" so patterns like "./src/**/*.go" still match relative paths.
func normalizeGlobs(globs []string) []string {
	var out []string
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		out = append(out, g)
		if t := trimGlobPrefix(g); t != g {
			out = append(out, t)
		}
	}
	return out
}

// matchAnyGlob matches a forward-slash relative path against globs, also
// trying the basename so bare patterns like "*.md" behave intuitively.
func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
