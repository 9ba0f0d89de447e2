package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Rejection reasons recorded in the rejected-findings output.
const (
	ReasonInsufficientSignal = "insufficient_signal"
)

// ParseError reports a malformed raw input file. It aborts that file only;
// the rest of the run continues.
type ParseError struct {
	SourceFile string
	Line       int // 0 when unknown
	Offset     int64
	Err        error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.SourceFile, e.Line, e.Err)
	}
	if e.Offset > 0 {
		return fmt.Sprintf("parse %s (offset %d): %v", e.SourceFile, e.Offset, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.SourceFile, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewJSONParseError wraps a JSON decoding failure as a ParseError, resolving
// the syntax-error byte offset to a line number when one is available.
func NewJSONParseError(sourceFile string, data []byte, err error) *ParseError {
	pe := &ParseError{SourceFile: sourceFile, Err: err}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		pe.Offset = syn.Offset
		pe.Line = 1 + bytes.Count(data[:syn.Offset], []byte("\n"))
	}
	return pe
}

// NormalizationError reports a finding that carries too little signal to be
// merged or scored. Such findings are routed to the rejected output.
type NormalizationError struct {
	Reason     string
	SourceFile string
	Detail     string
}

func (e *NormalizationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("normalize (%s): %s [%s]", e.SourceFile, e.Reason, e.Detail)
	}
	return fmt.Sprintf("normalize (%s): %s", e.SourceFile, e.Reason)
}

// ConfigurationError reports missing or invalid taxonomy/scoring
// configuration. It is fatal: the run aborts before any processing.
type ConfigurationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("config %s: %s: %v", e.Field, e.Msg, e.Err)
	case e.Field != "":
		return fmt.Sprintf("config %s: %s", e.Field, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("config: %s: %v", e.Msg, e.Err)
	default:
		return "config: " + e.Msg
	}
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
