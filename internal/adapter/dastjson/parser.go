// Package dastjson parses ZAP-style DAST scanner output.
package dastjson

import (
	"encoding/json"
	"time"

	"bytemomo/remora/internal/domain"
)

const toolName = "zap"

type report struct {
	Site []site `json:"site"`
}

type site struct {
	Name   string  `json:"@name"`
	Alerts []alert `json:"alerts"`
}

type alert struct {
	PluginID   string     `json:"pluginid"`
	AlertRef   string     `json:"alertRef"`
	Name       string     `json:"name"`
	RiskDesc   string     `json:"riskdesc"` // e.g. "High (Medium)"
	Confidence string     `json:"confidence"`
	Desc       string     `json:"desc"`
	Instances  []instance `json:"instances"`
}

type instance struct {
	URI      string `json:"uri"`
	Method   string `json:"method"`
	Param    string `json:"param"`
	Evidence string `json:"evidence"`
}

type Adapter struct{}

func New() Adapter { return Adapter{} }

func (Adapter) Tool() domain.SourceTool { return domain.ToolDAST }

func (Adapter) Format() string { return "json" }

// Parse converts one ZAP JSON report into RawFindings, one per alert
// instance. An alert without instances still yields one finding so nothing
// is silently lost.
func (Adapter) Parse(sourceFile string, data []byte) ([]domain.RawFinding, error) {
	var rep report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, domain.NewJSONParseError(sourceFile, data, err)
	}

	now := time.Now().UTC()
	var findings []domain.RawFinding
	idx := 0
	for _, s := range rep.Site {
		for _, a := range s.Alerts {
			instances := a.Instances
			if len(instances) == 0 {
				instances = []instance{{URI: s.Name}}
			}
			for _, in := range instances {
				findings = append(findings, domain.RawFinding{
					SourceTool:  domain.ToolDAST,
					ToolName:    toolName,
					SourceID:    a.AlertRef,
					Type:        a.Name,
					Severity:    a.RiskDesc,
					Confidence:  a.Confidence,
					Title:       a.Name,
					Description: a.Desc,
					Evidence:    in.Evidence,
					URL:         in.URI,
					HTTPMethod:  in.Method,
					SourceFile:  sourceFile,
					SourceIndex: idx,
					IngestedAt:  now,
				})
				idx++
			}
		}
	}
	return findings, nil
}
