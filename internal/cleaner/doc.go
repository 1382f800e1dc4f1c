// Package cleaner removes scanned ghost-comment lines from disk. Each file
// is handled transactionally: optional backup, byte-exact drift and range
// verification of every line before any write, metadata restoration after
// the rewrite, and best-effort multi-file rollback from backups when part
// of a batch fails. A read-only Validate variant pre-flights a clean.
package cleaner
