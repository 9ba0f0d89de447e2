package dastjson

import (
	"errors"
	"testing"

	"bytemomo/remora/internal/domain"
)

const sampleReport = `{
  "site": [
    {
      "@name": "https://example.com",
      "alerts": [
        {
          "pluginid": "40018",
          "alertRef": "40018",
          "name": "SQL Injection",
          "riskdesc": "High (Medium)",
          "confidence": "Medium",
          "desc": "SQL injection may be possible.",
          "instances": [
            {"uri": "https://example.com/users?id=1", "method": "GET", "evidence": "You have an error in your SQL syntax"},
            {"uri": "https://example.com/users?id=2", "method": "GET"}
          ]
        },
        {
          "pluginid": "10202",
          "name": "Absence of Anti-CSRF Tokens",
          "riskdesc": "Medium (Low)",
          "confidence": "Low",
          "desc": "No Anti-CSRF tokens were found."
        }
      ]
    }
  ]
}`

func TestParse_InstanceFanOut(t *testing.T) {
	findings, err := New().Parse("dast/zap.json", []byte(sampleReport))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Two instances of the first alert plus one placeholder for the
	// instance-less alert.
	if len(findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(findings))
	}

	f := findings[0]
	if f.SourceTool != domain.ToolDAST || f.ToolName != "zap" {
		t.Errorf("unexpected tool identity: %s/%s", f.SourceTool, f.ToolName)
	}
	if f.URL != "https://example.com/users?id=1" || f.HTTPMethod != "GET" {
		t.Errorf("unexpected endpoint: %s %s", f.HTTPMethod, f.URL)
	}
	if f.Evidence == "" {
		t.Error("expected instance evidence carried over")
	}

	// The instance-less alert falls back to the site name so the finding
	// still carries a location.
	last := findings[2]
	if last.Type != "Absence of Anti-CSRF Tokens" {
		t.Errorf("unexpected type: %q", last.Type)
	}
	if last.URL != "https://example.com" {
		t.Errorf("expected site name fallback URL, got %q", last.URL)
	}
}

func TestParse_SourceIndexSequential(t *testing.T) {
	findings, err := New().Parse("dast/zap.json", []byte(sampleReport))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for i, f := range findings {
		if f.SourceIndex != i {
			t.Errorf("finding %d has source index %d", i, f.SourceIndex)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := New().Parse("dast/broken.json", []byte(`{"site": [}`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var pe *domain.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T", err)
	}
}
