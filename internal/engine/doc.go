// Package engine contains the scanning half of ghostcomment: it expands the
// configured globs into candidate files, applies the run-level and per-file
// resource guards, and extracts marker lines with exact positional metadata.
// It is internal; external consumers should use the facade in pkg/core.
package engine
