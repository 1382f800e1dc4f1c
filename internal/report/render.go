package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/ghostcomment/ghostcomment/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
}

// PrintComments writes a human-readable listing, one row per comment,
// sorted by path then line.
func PrintComments(w io.Writer, comments []types.GhostComment, opts PrintOptions) {
	sorted := make([]types.GhostComment, len(comments))
	copy(sorted, comments)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FilePath == sorted[j].FilePath {
			return sorted[i].LineNumber < sorted[j].LineNumber
		}
		return sorted[i].FilePath < sorted[j].FilePath
	})

	if len(sorted) == 0 {
		fmt.Fprintln(w, "No ghost comments found ✅")
	} else {
		maxLoc := 0
		for _, gc := range sorted {
			if l := len(fmt.Sprintf("%s:%d", gc.FilePath, gc.LineNumber)); l > maxLoc {
				maxLoc = l
			}
		}
		fmt.Fprintf(w, "Ghost comments: %d\n", len(sorted))
		for _, gc := range sorted {
			loc := fmt.Sprintf("%s:%d", gc.FilePath, gc.LineNumber)
			line := strings.TrimSpace(gc.OriginalLine)
			if !opts.NoColor {
				line = highlightLine(line, gc.FilePath)
			}
			fmt.Fprintf(w, "%-*s  %s\n", maxLoc, loc, line)
		}
	}

	if opts.Duration > 0 || opts.FilesScanned > 0 {
		fmt.Fprintln(w)
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
		if opts.FilesScanned > 0 {
			fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
		}
	}
}

// PrintCleanResult summarizes a clean batch.
func PrintCleanResult(w io.Writer, res types.CleanResult, dryRun bool) {
	verb := "Removed"
	if dryRun {
		verb = "Would remove"
	}
	fmt.Fprintf(w, "%s %d ghost comment(s) across %d file(s)\n", verb, res.CommentsRemoved, res.FilesProcessed)
	for _, f := range res.ModifiedFiles {
		fmt.Fprintf(w, "  cleaned %s\n", f)
	}
	if res.HasErrors {
		fmt.Fprintf(w, "Errors in %d file(s):\n", len(res.ErrorFiles))
		for _, f := range res.ErrorFiles {
			fmt.Fprintf(w, "  failed  %s\n", f)
		}
	}
}

// WriteJSON emits the comments as an indented JSON array, the shape other
// tooling consumes. An empty slice renders as [] rather than null.
func WriteJSON(w io.Writer, comments []types.GhostComment) error {
	if comments == nil {
		comments = []types.GhostComment{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(comments)
}

// CopyComments puts the JSON form on the system clipboard.
func CopyComments(comments []types.GhostComment) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, comments); err != nil {
		return err
	}
	return clipboard.WriteAll(buf.String())
}

// StdoutIsTerminal reports whether stdout is attached to a TTY. Callers use
// it to decide between the interactive review UI and plain output.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func highlightLine(line string, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		ext := filepath.Ext(filename)
		if ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return line
	}

	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
