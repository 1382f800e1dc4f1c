package core

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestScanAndClean_Smoke(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.go")
	if err := os.WriteFile(p, []byte("package a\n//_gc_ drop\nfunc A() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	comments, err := Scan(DefaultConfig(), dir, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(comments) != 1 || comments[0].Content != "drop" {
		t.Fatalf("unexpected comments: %+v", comments)
	}

	if v := Validate(comments, dir, nil); !v.Valid {
		t.Fatalf("expected valid state: %+v", v)
	}

	res, err := Clean(comments, CleanOptions{}, dir, nil)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if res.HasErrors || res.CommentsRemoved != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	got, _ := os.ReadFile(p)
	if string(got) != "package a\nfunc A() {}\n" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	comments := []GhostComment{
		{FilePath: "a.go", LineNumber: 2, Content: "drop", Prefix: "//_gc_", OriginalLine: "//_gc_ drop"},
	}
	var buf bytes.Buffer
	if err := MarshalComments(&buf, comments); err != nil {
		t.Fatal(err)
	}
	back, err := UnmarshalComments(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || back[0] != comments[0] {
		t.Fatalf("round trip mismatch: %+v", back)
	}

	buf.Reset()
	if err := MarshalComments(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Fatalf("nil slice must render as []: %q", got)
	}
}
