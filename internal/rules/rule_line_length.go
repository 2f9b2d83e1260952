package rules

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"

	"stylint/internal/diag"
)

const lineLengthDescription = "lines do not exceed max_line_length characters"

// LineLengthRule flags lines longer than the limit, counted in runes or in
// terminal cells.
type LineLengthRule struct {
	max     int
	display bool
}

func NewLineLengthRule(opts Options) (*LineLengthRule, error) {
	if opts.MaxLineLength <= 0 {
		return nil, fmt.Errorf("max_line_length must be positive, got %d", opts.MaxLineLength)
	}
	switch opts.LineLengthMode {
	case LengthChars, "":
	case LengthDisplay:
	default:
		return nil, fmt.Errorf("line_length_mode %q: want %q or %q", opts.LineLengthMode, LengthChars, LengthDisplay)
	}
	return &LineLengthRule{max: opts.MaxLineLength, display: opts.LineLengthMode == LengthDisplay}, nil
}

func (r *LineLengthRule) ID() string { return IDLineLength }
func (r *LineLengthRule) Description() string { return lineLengthDescription }
func (r *LineLengthRule) DefaultSeverity() diag.Severity { return diag.SevError }

func (r *LineLengthRule) Check(in *Input) ([]diag.Violation, error) {
	var out []diag.Violation
	unit := "characters"
	if r.display {
		unit = "columns"
	}
	var lineStart uint32
	for n := 1; n <= in.File.LineCount(); n++ {
		num, err := safecast.Conv[uint32](n)
		if err != nil {
			return nil, fmt.Errorf("line number overflow: %w", err)
		}
		line := in.File.GetLine(num)
		// одиночный '\r' (старые Mac-файлы) тоже обрывает строку
		segStart := 0
		for _, seg := range strings.Split(line, "\r") {
			width, over := r.measure(seg)
			if width > r.max {
				off, err := offsetFrom(lineStart, segStart+over)
				if err != nil {
					return nil, err
				}
				tok, ok := in.tokenAt(off)
				if !ok {
					return nil, fmt.Errorf("line %d: no token at offset %d", n, off)
				}
				out = append(out, diag.At(tok, fmt.Sprintf("line is %d %s long (maximum %d)", width, unit, r.max)))
			}
			segStart += len(seg) + 1
		}
		if lineStart, err = offsetFrom(lineStart, len(line)+1); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// measure returns the line width and the byte offset of the first rune that
// ends past the limit (meaningful only when width > max).
func (r *LineLengthRule) measure(line string) (width, over int) {
	over = -1
	for i, ch := range line {
		if r.display {
			width += runewidth.RuneWidth(ch)
		} else {
			width++
		}
		if over < 0 && width > r.max {
			over = i
		}
	}
	if over < 0 {
		over = 0
	}
	return width, over
}

func offsetFrom(base uint32, delta int) (uint32, error) {
	d, err := safecast.Conv[uint32](delta)
	if err != nil {
		return 0, fmt.Errorf("line offset overflow: %w", err)
	}
	return base + d, nil
}
