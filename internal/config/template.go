package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTOML is the file `stylint init` writes. Values equal the built-in
// defaults.
const DefaultTOML = `# stylint configuration
# Flags win over this file, this file wins over built-in defaults.

max_line_length = 80
# "chars" counts characters, "display" counts terminal columns
line_length_mode = "chars"
allowed_identifier_charset = "[a-z0-9_]"
brace_same_line = true

spaced_operators = ["<-", "<<-", "->", "->>", "=", "==", "!=", "<", ">", "<=", ">=", "+", "-", "*", "/", "&", "&&", "|", "||", "|>", "~"]
no_space_operators = ["^", ":", "::"]

# names the case rule never reports, e.g. base functions
ignore_identifiers = []

include = [".R", ".r", ".Rprofile"]
exclude = [".git", "renv", "packrat"]

[rules.case]
enabled = true
severity = "error"

[rules.spacing]
enabled = true
severity = "error"

[rules.brace-placement]
enabled = true
severity = "error"

[rules.line-length]
enabled = true
severity = "error"

[rules.trailing-whitespace]
enabled = true
severity = "warning"
`

// ErrExists is returned by WriteDefault when the target file already exists.
var ErrExists = errors.New("config file already exists")

// WriteDefault writes DefaultTOML as stylint.toml into dir.
func WriteDefault(dir string) (string, error) {
	target := filepath.Join(dir, FileNames[0])
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%s: %w", target, ErrExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %q: %w", target, err)
	}
	if err := os.WriteFile(target, []byte(DefaultTOML), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	return target, nil
}
