package sastjson

import (
	"errors"
	"testing"

	"bytemomo/remora/internal/domain"
)

const sampleReport = `{
  "scan_info": {"app_path": "/rails/app"},
  "warnings": [
    {
      "warning_type": "SQL Injection",
      "warning_code": 0,
      "fingerprint": "abc123",
      "check_name": "SQL",
      "message": "Possible SQL injection",
      "file": "app/models/user.rb",
      "line": 42,
      "code": "User.where(\"name = '#{params[:name]}'\")",
      "confidence": "High"
    },
    {
      "warning_type": "Cross-Site Scripting",
      "fingerprint": "def456",
      "check_name": "CrossSiteScripting",
      "message": "Unescaped model attribute",
      "file": "app/views/users/show.html.erb",
      "line": 3,
      "confidence": "Medium"
    }
  ]
}`

func TestParse_Warnings(t *testing.T) {
	findings, err := New().Parse("sast/brakeman.json", []byte(sampleReport))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}

	f := findings[0]
	if f.SourceTool != domain.ToolSAST {
		t.Errorf("expected source tool sast, got %q", f.SourceTool)
	}
	if f.ToolName != "brakeman" {
		t.Errorf("expected tool name brakeman, got %q", f.ToolName)
	}
	if f.Type != "SQL Injection" {
		t.Errorf("expected native type preserved, got %q", f.Type)
	}
	if f.FilePath != "app/models/user.rb" || f.LineNumber != 42 {
		t.Errorf("unexpected location: %s:%d", f.FilePath, f.LineNumber)
	}
	if f.SourceID != "abc123" {
		t.Errorf("expected fingerprint as source ID, got %q", f.SourceID)
	}
	if f.Confidence != "High" {
		t.Errorf("expected native confidence preserved, got %q", f.Confidence)
	}
	if findings[1].SourceIndex != 1 {
		t.Errorf("expected source index 1, got %d", findings[1].SourceIndex)
	}
}

func TestParse_EmptyReport(t *testing.T) {
	findings, err := New().Parse("sast/empty.json", []byte(`{"warnings": []}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %d", len(findings))
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := New().Parse("sast/broken.json", []byte("{\n  \"warnings\": [,\n"))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}

	var pe *domain.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if pe.SourceFile != "sast/broken.json" {
		t.Errorf("expected source file in error, got %q", pe.SourceFile)
	}
	if pe.Line != 2 {
		t.Errorf("expected syntax error on line 2, got %d", pe.Line)
	}
}
