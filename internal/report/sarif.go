package report

import (
	"encoding/json"
	"io"
	"path/filepath"

	"stylint/internal/diag"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

// RuleMeta describes one rule in SARIF tool metadata.
type RuleMeta struct {
	ID           string
	Description  string
	DefaultLevel string
}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID                   string       `json:"id"`
	ShortDescription     sarifMessage `json:"shortDescription"`
	DefaultConfiguration sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
}

type sarifInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Descriptor *sarifRef       `json:"descriptor,omitempty"`
	Locations  []sarifLocation `json:"locations,omitempty"`
}

type sarifRef struct {
	ID string `json:"id"`
}

// sarifRenderer собирает весь лог и пишет его в End (SARIF — один документ).
type sarifRenderer struct {
	meta          SarifRunMeta
	rules         []RuleMeta
	results       []sarifResult
	notifications []sarifNotification
}

// WithRules attaches rule metadata to SARIF output; other renderers ignore it.
func WithRules(r Renderer, rules []RuleMeta) Renderer {
	if s, ok := r.(*sarifRenderer); ok {
		s.rules = rules
	}
	return r
}

func (s *sarifRenderer) Begin(io.Writer) error { return nil }

func (s *sarifRenderer) Report(_ io.Writer, r *Report) error {
	uri := filepath.ToSlash(r.Path)
	for _, v := range r.Violations {
		s.results = append(s.results, sarifResult{
			RuleID:  v.RuleID,
			Level:   sarifLevel(v.Severity),
			Message: sarifMessage{Text: diag.SanitizeMessage(v.Message)},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
				ArtifactLocation: sarifArtifact{URI: uri},
				Region:           &sarifRegion{StartLine: v.Line, StartColumn: v.Column},
			}}},
		})
	}
	for _, f := range r.Failures {
		n := sarifNotification{
			Level:     "error",
			Message:   sarifMessage{Text: f.Kind.String() + ": " + diag.SanitizeMessage(f.Message)},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{ArtifactLocation: sarifArtifact{URI: uri}}}},
		}
		if f.RuleID != "" {
			n.Descriptor = &sarifRef{ID: f.RuleID}
		}
		s.notifications = append(s.notifications, n)
	}
	return nil
}

func (s *sarifRenderer) End(w io.Writer) error {
	driver := sarifDriver{
		Name:           s.meta.ToolName,
		Version:        s.meta.ToolVersion,
		InformationURI: s.meta.InformationURI,
	}
	for _, r := range s.rules {
		driver.Rules = append(driver.Rules, sarifRule{
			ID:                   r.ID,
			ShortDescription:     sarifMessage{Text: r.Description},
			DefaultConfiguration: sarifConfig{Level: r.DefaultLevel},
		})
	}
	results := s.results
	if results == nil {
		results = []sarifResult{}
	}
	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: driver},
			Invocations: []sarifInvocation{{
				ExecutionSuccessful:        len(s.notifications) == 0,
				ToolExecutionNotifications: s.notifications,
			}},
			Results: results,
		}},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func sarifLevel(sev diag.Severity) string {
	if sev == diag.SevError {
		return "error"
	}
	return "warning"
}
