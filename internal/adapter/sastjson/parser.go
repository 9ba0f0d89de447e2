// Package sastjson parses Brakeman-style SAST scanner output.
package sastjson

import (
	"encoding/json"
	"time"

	"bytemomo/remora/internal/domain"
)

const toolName = "brakeman"

type report struct {
	ScanInfo struct {
		AppPath string `json:"app_path"`
	} `json:"scan_info"`
	Warnings []warning `json:"warnings"`
}

type warning struct {
	WarningType string `json:"warning_type"`
	WarningCode int    `json:"warning_code"`
	Fingerprint string `json:"fingerprint"`
	CheckName   string `json:"check_name"`
	Message     string `json:"message"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	Code        string `json:"code"`
	Confidence  string `json:"confidence"`
	Link        string `json:"link"`
}

type Adapter struct{}

func New() Adapter { return Adapter{} }

func (Adapter) Tool() domain.SourceTool { return domain.ToolSAST }

func (Adapter) Format() string { return "json" }

// Parse converts one Brakeman JSON report into RawFindings, one per warning.
func (Adapter) Parse(sourceFile string, data []byte) ([]domain.RawFinding, error) {
	var rep report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, domain.NewJSONParseError(sourceFile, data, err)
	}

	now := time.Now().UTC()
	findings := make([]domain.RawFinding, 0, len(rep.Warnings))
	for i, w := range rep.Warnings {
		findings = append(findings, domain.RawFinding{
			SourceTool:  domain.ToolSAST,
			ToolName:    toolName,
			SourceID:    w.Fingerprint,
			Type:        w.WarningType,
			Severity:    w.CheckName,
			Confidence:  w.Confidence,
			Title:       w.WarningType,
			Description: w.Message,
			Evidence:    w.Code,
			FilePath:    w.File,
			LineNumber:  w.Line,
			SourceFile:  sourceFile,
			SourceIndex: i,
			IngestedAt:  now,
		})
	}
	return findings, nil
}
