package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghostcomment/ghostcomment/internal/gcerr"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestValidate_OK(t *testing.T) {
	cases := []ScanConfig{
		Default(),
		{Prefix: "#_gc_", Include: []string{"**/*.py"}},
		{Prefix: "--gc", Include: []string{"src/**"}, Exclude: []string{"**/vendor/**"}},
		{Prefix: "<!--gc", Include: []string{"docs/**/*.md"}},
	}
	for _, c := range cases {
		require.NoError(t, c.Validate(), "config %+v", c)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := map[string]ScanConfig{
		"empty prefix":     {Include: []string{"**/*"}},
		"no comment token": {Prefix: "_gc_", Include: []string{"**/*"}},
		"space in prefix":  {Prefix: "// gc", Include: []string{"**/*"}},
		"prefix too long":  {Prefix: "//" + strings.Repeat("g", MaxPrefixLength), Include: []string{"**/*"}},
		"no includes":      {Prefix: DefaultPrefix},
		"too many includes": {
			Prefix:  DefaultPrefix,
			Include: make([]string, MaxIncludePatterns+1),
		},
		"too many excludes": {
			Prefix:  DefaultPrefix,
			Include: []string{"**/*"},
			Exclude: make([]string, MaxExcludePatterns+1),
		},
	}
	for name, c := range cases {
		err := c.Validate()
		require.Error(t, err, name)
		require.True(t, gcerr.IsKind(err, gcerr.KindConfig), "%s: expected CONFIG_ERROR, got %v", name, err)
	}
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "ghostcomment.yaml", "prefix: '#_gc_'\ninclude:\n  - '**/*.py'\nexclude:\n  - '**/vendor/**'\nfail_on_found: true\n")
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, cfg.Prefix)
	require.Equal(t, "#_gc_", *cfg.Prefix)
	require.Equal(t, []string{"**/*.py"}, cfg.Include)
	require.NotNil(t, cfg.FailOnFound)
	require.True(t, *cfg.FailOnFound)
}

func TestLoadFile_BadYAML(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "ghostcomment.yaml", "prefix: [unclosed\n")
	_, err := LoadFile(p)
	require.Error(t, err)
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "ghostcomment.yaml", "prefix: '//a'\n")
	writeTemp(t, dir, ".ghostcomment.yaml", "prefix: '//b'\n")
	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Prefix)
	require.Equal(t, "//b", *cfg.Prefix)
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	require.Error(t, err)
}
