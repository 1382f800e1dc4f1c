// Package ghostcomment provides the command-line interface for the
// ghostcomment tool. It configures subcommands (scan, clean, validate,
// post, review, update), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/ghostcomment/ghostcomment/cmd/ghostcomment"
//	func main() { ghostcomment.Execute() }
package ghostcomment
