package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cedartree/cedar/pkg/analysis"
)

// SARIF version used by this renderer.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// sarifRuleID is the single rule every syntax error reports under: this
// tool has no configurable checks, only the grammar itself.
const sarifRuleID = "syntax-error"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a reported rule.
type SARIFRule struct {
	ID               string               `json:"id"`
	ShortDescription SARIFMultiformatText `json:"shortDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	ByteOffset  int `json:"charOffset,omitempty"`
	ByteLength  int `json:"charLength,omitempty"`
}

// SARIFRenderer formats reports as SARIF.
type SARIFRenderer struct {
	opts Options
	out  io.Writer
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{
		opts: opts,
		out:  opts.Writer,
	}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) error {
	output := r.buildOutput(report)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func (r *SARIFRenderer) buildOutput(report *analysis.Report) *SARIFOutput {
	output := &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{
				Driver: SARIFDriver{
					Name:           "cedar",
					Version:        analysis.ReportVersion,
					InformationURI: "https://github.com/cedartree/cedar",
					Rules: []SARIFRule{{
						ID:               sarifRuleID,
						ShortDescription: SARIFMultiformatText{Text: "The input does not conform to the language grammar"},
						DefaultConfig:    &SARIFRuleConfig{Level: "error"},
					}},
				},
			},
			Results: make([]SARIFResult, 0),
		}},
	}

	if report == nil {
		return output
	}

	for _, diag := range report.Diagnostics {
		output.Runs[0].Results = append(output.Runs[0].Results, SARIFResult{
			RuleID:  sarifRuleID,
			Level:   "error",
			Message: SARIFMessage{Text: diag.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: diag.FilePath},
					Region: SARIFRegion{
						StartLine:   diag.Line,
						StartColumn: diag.Column,
						ByteOffset:  diag.ByteOffset,
						ByteLength:  diag.SizeBytes,
					},
				},
			}},
		})
	}

	return output
}
