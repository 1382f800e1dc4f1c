package core

import (
	"encoding/json"
	"io"
)

// MarshalComments pretty-prints comments as JSON for humans or pipelines.
// A nil slice renders as [] so downstream parsers never see null.
func MarshalComments(w io.Writer, comments []GhostComment) error {
	if comments == nil {
		comments = []GhostComment{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(comments)
}

// UnmarshalComments reads a JSON array previously produced by
// MarshalComments (or the CLI's --json output).
func UnmarshalComments(r io.Reader) ([]GhostComment, error) {
	var comments []GhostComment
	if err := json.NewDecoder(r).Decode(&comments); err != nil {
		return nil, err
	}
	return comments, nil
}
