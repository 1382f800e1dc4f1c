package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ghostcomment/ghostcomment/internal/types"
)

var sample = []types.GhostComment{
	{FilePath: "src/b.go", LineNumber: 12, Content: "second", Prefix: "//_gc_", OriginalLine: "  //_gc_ second"},
	{FilePath: "src/a.go", LineNumber: 3, Content: "first", Prefix: "//_gc_", OriginalLine: "//_gc_ first"},
}

func TestPrintComments_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintComments(&buf, nil, PrintOptions{NoColor: true})
	if !strings.Contains(buf.String(), "No ghost comments found") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestPrintComments_SortedRows(t *testing.T) {
	var buf bytes.Buffer
	PrintComments(&buf, sample, PrintOptions{NoColor: true, Duration: 120 * time.Millisecond, FilesScanned: 9})
	out := buf.String()

	first := strings.Index(out, "src/a.go:3")
	second := strings.Index(out, "src/b.go:12")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("rows missing or out of order:\n%s", out)
	}
	if !strings.Contains(out, "//_gc_ second") {
		t.Fatalf("row should show the marked line text:\n%s", out)
	}
	if !strings.Contains(out, "Files scanned: 9") || !strings.Contains(out, "Scan duration: 0.12s") {
		t.Fatalf("missing footer:\n%s", out)
	}
}

func TestPrintComments_NoColorHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	PrintComments(&buf, sample, PrintOptions{NoColor: true})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("NoColor output contains ANSI escapes:\n%q", buf.String())
	}
}

func TestPrintCleanResult(t *testing.T) {
	res := types.CleanResult{
		FilesProcessed:  2,
		CommentsRemoved: 3,
		ModifiedFiles:   []string{"a.go"},
		ErrorFiles:      []string{"b.go"},
		HasErrors:       true,
	}
	var buf bytes.Buffer
	PrintCleanResult(&buf, res, false)
	out := buf.String()
	if !strings.Contains(out, "Removed 3 ghost comment(s) across 2 file(s)") {
		t.Fatalf("missing summary:\n%s", out)
	}
	if !strings.Contains(out, "cleaned a.go") || !strings.Contains(out, "failed  b.go") {
		t.Fatalf("missing per-file lines:\n%s", out)
	}

	buf.Reset()
	PrintCleanResult(&buf, res, true)
	if !strings.Contains(buf.String(), "Would remove") {
		t.Fatalf("dry run should use conditional phrasing:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded []types.GhostComment
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].FilePath != "src/b.go" {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"file_path"`) {
		t.Fatalf("expected snake_case keys:\n%s", buf.String())
	}

	buf.Reset()
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("nil slice must render as []: %q", buf.String())
	}
}

func TestHighlightLine(t *testing.T) {
	code := `//_gc_ remove before merge`
	if got := highlightLine(code, "main.go"); !strings.Contains(got, "remove before merge") {
		t.Fatalf("highlighted output lost the text: %q", got)
	}
	// unknown extension passes through untouched
	if got := highlightLine(code, "file.zzz-unknown"); got != code {
		t.Fatalf("unknown file type should pass through: %q", got)
	}
}
