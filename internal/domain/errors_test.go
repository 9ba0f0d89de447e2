package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewJSONParseError_SyntaxErrorLine(t *testing.T) {
	data := []byte("{\n  \"warnings\": [,\n")
	var v map[string]any
	err := json.Unmarshal(data, &v)
	if err == nil {
		t.Fatal("expected a syntax error")
	}

	pe := NewJSONParseError("sast/broken.json", data, err)
	if pe.SourceFile != "sast/broken.json" {
		t.Errorf("source file = %q", pe.SourceFile)
	}
	if pe.Line != 2 {
		t.Errorf("line = %d, want 2 (offset resolved against newlines)", pe.Line)
	}
	if pe.Offset == 0 {
		t.Error("offset not carried over from the syntax error")
	}
	if !strings.Contains(pe.Error(), ":2:") {
		t.Errorf("message should include the line: %q", pe.Error())
	}
	if !errors.Is(pe, err) {
		t.Error("wrapped error not reachable via Unwrap")
	}
}

func TestNewJSONParseError_NonSyntaxError(t *testing.T) {
	data := []byte(`{"not": "an array"}`)
	var v []string
	err := json.Unmarshal(data, &v)
	if err == nil {
		t.Fatal("expected a type error")
	}

	pe := NewJSONParseError("manual/broken.json", data, err)
	if pe.Line != 0 || pe.Offset != 0 {
		t.Errorf("non-syntax errors carry no position, got line %d offset %d", pe.Line, pe.Offset)
	}
	if !strings.Contains(pe.Error(), "manual/broken.json") {
		t.Errorf("message should name the file: %q", pe.Error())
	}
}
