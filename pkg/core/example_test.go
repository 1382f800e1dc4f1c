package core_test

import (
	"fmt"
	"os"

	"github.com/ghostcomment/ghostcomment/pkg/core"
)

// ExampleScan demonstrates a simple scan of a directory.
func ExampleScan() {
	comments, err := core.Scan(core.DefaultConfig(), ".", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}
	if len(comments) == 0 {
		fmt.Println("No ghost comments found.")
	} else {
		fmt.Printf("Found %d ghost comments.\n", len(comments))
		_ = core.MarshalComments(os.Stdout, comments)
	}
}

// ExampleClean shows the scan-then-clean flow with backups and rollback.
func ExampleClean() {
	comments, err := core.Scan(core.DefaultConfig(), ".", nil)
	if err != nil {
		panic(err)
	}
	opts := core.CleanOptions{CreateBackups: true, RestoreOnError: true}
	res, err := core.Clean(comments, opts, ".", nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Removed %d comment(s) from %d file(s)\n", res.CommentsRemoved, res.FilesProcessed)
}
