// Package manualjson parses manual/LLM review findings. These arrive already
// close to the canonical schema, so parsing is a thin shape check rather than
// a format translation.
package manualjson

import (
	"encoding/json"
	"time"

	"bytemomo/remora/internal/domain"
)

const toolName = "manual"

type finding struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Evidence    string `json:"evidence"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	URL         string `json:"url"`
	Method      string `json:"method"`
	Severity    string `json:"severity"`
	Confidence  string `json:"confidence"` // defaults to confirmed downstream
	Reviewer    string `json:"reviewer"`
}

type Adapter struct{}

func New() Adapter { return Adapter{} }

func (Adapter) Tool() domain.SourceTool { return domain.ToolManual }

func (Adapter) Format() string { return "json" }

// Parse reads an array of review findings.
func (Adapter) Parse(sourceFile string, data []byte) ([]domain.RawFinding, error) {
	var items []finding
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, domain.NewJSONParseError(sourceFile, data, err)
	}

	now := time.Now().UTC()
	findings := make([]domain.RawFinding, 0, len(items))
	for i, f := range items {
		findings = append(findings, domain.RawFinding{
			SourceTool:  domain.ToolManual,
			ToolName:    toolName,
			SourceID:    f.ID,
			Type:        f.Type,
			Severity:    f.Severity,
			Confidence:  f.Confidence,
			Title:       f.Title,
			Description: f.Description,
			Evidence:    f.Evidence,
			FilePath:    f.File,
			LineNumber:  f.Line,
			URL:         f.URL,
			HTTPMethod:  f.Method,
			SourceFile:  sourceFile,
			SourceIndex: i,
			IngestedAt:  now,
		})
	}
	return findings, nil
}
