// Package core provides a small, stable facade over ghostcomment's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so bots and CI tooling can depend on a stable import path without
// exposing internal implementation packages.
//
// Example:
//
//	comments, err := core.Scan(core.DefaultConfig(), ".", nil)
//	if err != nil { /* handle */ }
//	_ = core.MarshalComments(os.Stdout, comments)
package core
