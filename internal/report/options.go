package report

import (
	"fmt"
	"io"
)

// Format names.
const (
	FormatText   = "text"
	FormatShort  = "short"
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatSARIF  = "sarif"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatText, FormatShort, FormatPretty, FormatJSON, FormatSARIF}

// Renderer writes reports in one format. Begin and End frame the run;
// Report is called once per file in input order.
type Renderer interface {
	Begin(w io.Writer) error
	Report(w io.Writer, r *Report) error
	End(w io.Writer) error
}

// PrettyOpts configures the pretty renderer.
type PrettyOpts struct {
	Color bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
}

// Options selects and configures a renderer.
type Options struct {
	Format string
	Pretty PrettyOpts
	Sarif  SarifRunMeta
}

// NewRenderer returns the renderer for opts.Format.
func NewRenderer(opts Options) (Renderer, error) {
	switch opts.Format {
	case FormatText, "":
		return &textRenderer{}, nil
	case FormatShort:
		return &shortRenderer{}, nil
	case FormatPretty:
		return newPrettyRenderer(opts.Pretty), nil
	case FormatJSON:
		return &jsonRenderer{}, nil
	case FormatSARIF:
		return &sarifRenderer{meta: opts.Sarif}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", opts.Format, Formats)
}
