package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/ghostcomment/ghostcomment/internal/gcerr"
)

// Static bounds checked by ScanConfig.Validate before any I/O begins.
const (
	MaxPrefixLength    = 20
	MaxIncludePatterns = 50
	MaxExcludePatterns = 50
)

// DefaultPrefix is the marker token used when no configuration supplies one.
const DefaultPrefix = "//_gc_"

// prefixPattern restricts the marker to a comment-start token followed by
// a short tag: //_gc_, #_gc_, --gc, ;note, <!--gc and the like.
var prefixPattern = regexp.MustCompile(`^(//|#|--|;|%|<!--)[A-Za-z0-9_:-]*$`)

// ScanConfig is the validated input of one scan run. It is constructed by
// the CLI (or a library caller), validated once, and immutable afterwards.
type ScanConfig struct {
	Prefix      string
	Include     []string
	Exclude     []string
	FailOnFound bool
}

// Default returns a ScanConfig that finds //_gc_ markers everywhere.
func Default() ScanConfig {
	return ScanConfig{Prefix: DefaultPrefix, Include: []string{"**/*"}}
}

// Validate checks the static constraints. Any violation is a CONFIG_ERROR
// and means no filesystem work has been done.
func (c ScanConfig) Validate() error {
	if c.Prefix == "" {
		return gcerr.New(gcerr.KindConfig, "prefix must not be empty")
	}
	if len(c.Prefix) > MaxPrefixLength {
		return gcerr.Newf(gcerr.KindConfig, "prefix %q exceeds maximum length %d", c.Prefix, MaxPrefixLength)
	}
	if !prefixPattern.MatchString(c.Prefix) {
		return gcerr.Newf(gcerr.KindConfig, "prefix %q must start with a comment token (//, #, --, ;, %%, <!--)", c.Prefix)
	}
	if len(c.Include) == 0 {
		return gcerr.New(gcerr.KindConfig, "at least one include pattern is required")
	}
	if len(c.Include) > MaxIncludePatterns {
		return gcerr.Newf(gcerr.KindConfig, "%d include patterns exceed maximum %d", len(c.Include), MaxIncludePatterns)
	}
	if len(c.Exclude) > MaxExcludePatterns {
		return gcerr.Newf(gcerr.KindConfig, "%d exclude patterns exceed maximum %d", len(c.Exclude), MaxExcludePatterns)
	}
	return nil
}

// FileConfig is the on-disk YAML configuration shape for ghostcomment.
// Pointer fields distinguish "unset" from zero values so CLI > local >
// global precedence works field by field.
type FileConfig struct {
	Prefix      *string  `yaml:"prefix"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	FailOnFound *bool    `yaml:"fail_on_found"`
	NoColor     *bool    `yaml:"no_color"`
	NoCache     *bool    `yaml:"no_cache"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .ghostcomment.yml/.yaml and ghostcomment.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".ghostcomment.yml", ".ghostcomment.yaml", "ghostcomment.yml", "ghostcomment.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "ghostcomment", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
