package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames lists the config file names looked up in each directory, in order.
var FileNames = []string{"stylint.toml", ".stylint.toml", ".stylint.yaml", ".stylint.yml"}

// File is the on-disk configuration. Nil fields were not set.
type File struct {
	MaxLineLength            *int                  `toml:"max_line_length" yaml:"max_line_length"`
	LineLengthMode           *string               `toml:"line_length_mode" yaml:"line_length_mode"`
	AllowedIdentifierCharset *string               `toml:"allowed_identifier_charset" yaml:"allowed_identifier_charset"`
	NoSpaceOperators         *[]string             `toml:"no_space_operators" yaml:"no_space_operators"`
	SpacedOperators          *[]string             `toml:"spaced_operators" yaml:"spaced_operators"`
	BraceSameLine            *bool                 `toml:"brace_same_line" yaml:"brace_same_line"`
	IgnoreIdentifiers        []string              `toml:"ignore_identifiers" yaml:"ignore_identifiers"`
	Include                  *[]string             `toml:"include" yaml:"include"`
	Exclude                  *[]string             `toml:"exclude" yaml:"exclude"`
	Rules                    map[string]RuleConfig `toml:"rules" yaml:"rules"`

	path string
}

// RuleConfig is a [rules.<id>] table.
type RuleConfig struct {
	Enabled  *bool   `toml:"enabled" yaml:"enabled"`
	Severity *string `toml:"severity" yaml:"severity"`
}

// Path returns where the file was loaded from ("" for an in-memory file).
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Find walks up from startDir to locate a config file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, statErr := os.Stat(dir); statErr == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads a TOML or YAML config, picked by extension. Unknown keys are errors.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var f *File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err = DecodeYAML(data)
	default:
		f, err = DecodeTOML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path
	return f, nil
}

// DecodeTOML parses a TOML config.
func DecodeTOML(data []byte) (*File, error) {
	var f File
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// DecodeYAML parses a YAML config.
func DecodeYAML(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &f, nil
}
