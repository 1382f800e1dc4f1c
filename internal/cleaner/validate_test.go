package cleaner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghostcomment/ghostcomment/internal/types"
)

func TestValidate_EmptyInput(t *testing.T) {
	c := New(nil)
	res := c.Validate(nil, t.TempDir())
	if !res.Valid || len(res.Errors) != 0 {
		t.Fatalf("empty input must be valid: %+v", res)
	}
}

func TestValidate_AggregatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "short.go"), []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	comments := []types.GhostComment{
		{FilePath: "missing.go", LineNumber: 1, Prefix: "//_gc_", OriginalLine: "//_gc_ a"},
		{FilePath: "short.go", LineNumber: 50, Prefix: "//_gc_", OriginalLine: "//_gc_ b"},
	}
	c := New(nil)
	res := c.Validate(comments, dir)
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if len(res.Errors) < 2 {
		t.Fatalf("expected one error per problem, got %+v", res.Errors)
	}
	joined := strings.Join(res.Errors, "\n")
	if !strings.Contains(joined, "missing.go") || !strings.Contains(joined, "out of range") {
		t.Fatalf("expected both problems reported: %q", joined)
	}
}

func TestValidate_ReadOnlyFileIsAnAccessError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	dir := t.TempDir()
	p := filepath.Join(dir, "ro.go")
	if err := os.WriteFile(p, []byte("//_gc_ a\n"), 0o444); err != nil {
		t.Fatal(err)
	}
	comments := []types.GhostComment{
		{FilePath: "ro.go", LineNumber: 1, Prefix: "//_gc_", OriginalLine: "//_gc_ a"},
	}
	c := New(nil)
	res := c.Validate(comments, dir)
	if res.Valid || !strings.Contains(res.Errors[0], "not accessible") {
		t.Fatalf("expected access error for read-only file: %+v", res)
	}
}

func TestValidate_CleanState(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte("x\n//_gc_ ok\ny\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	comments := []types.GhostComment{
		{FilePath: "a.go", LineNumber: 2, Content: "ok", Prefix: "//_gc_", OriginalLine: "//_gc_ ok"},
	}
	c := New(nil)
	res := c.Validate(comments, dir)
	if !res.Valid || len(res.Errors) != 0 {
		t.Fatalf("expected valid result, got %+v", res)
	}
}
