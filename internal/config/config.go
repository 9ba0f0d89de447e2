package config

import (
	"fmt"

	"bytemomo/remora/internal/domain"
)

// Config is the full pipeline configuration. Mapping and scoring tables are
// data, not code: new tools and taxonomies are added here, not in the stages.
type Config struct {
	Inputs      InputLayout       `yaml:"inputs"`
	Correlation CorrelationConfig `yaml:"correlation"`
	Scoring     ScoringConfig     `yaml:"scoring"`

	// Taxonomy maps a canonical vulnerability type to its taxonomy labels.
	Taxonomy map[string][]CategoryRef `yaml:"taxonomy"`

	// TypeMappings maps, per tool name, a native vulnerability label to the
	// canonical vulnerability type vocabulary.
	TypeMappings map[string]map[string]string `yaml:"type_mappings"`

	// ConfidenceMappings maps, per tool name, a native confidence label to
	// the canonical confidence vocabulary.
	ConfidenceMappings map[string]map[string]domain.Confidence `yaml:"confidence_mappings"`

	// RootPrefixes are repository-root path prefixes stripped during file
	// path canonicalization, so the same file reported by different tools
	// compares equal.
	RootPrefixes []string `yaml:"root_prefixes"`
}

// InputLayout names the subdirectories of the input directory scanned per
// source tool.
type InputLayout struct {
	SASTDir   string `yaml:"sast_dir"`
	DASTDir   string `yaml:"dast_dir"`
	ManualDir string `yaml:"manual_dir"`
}

// CorrelationConfig tunes the correlator.
type CorrelationConfig struct {
	// LineWindow is the maximum line distance (inclusive) for two same-file
	// findings of the same type to be considered the same vulnerability.
	LineWindow int `yaml:"line_window"`
}

// ScoringConfig holds the OWASP factor tables, keyed by canonical
// vulnerability type. Unknown types fall back to Default.
type ScoringConfig struct {
	Factors map[string]FactorSet `yaml:"factors"`
	Default FactorSet            `yaml:"default"`
}

// FactorSet is one row of the OWASP risk-rating table, all values 0-9.
// Likelihood: threat agent, exploitability, awareness, intrusion detection.
// Impact: four technical and three business sub-factors.
type FactorSet struct {
	ThreatAgent     float64 `yaml:"threat_agent"`
	Exploitability  float64 `yaml:"exploitability"`
	Awareness       float64 `yaml:"awareness"`
	Detection       float64 `yaml:"detection"`
	Confidentiality float64 `yaml:"confidentiality"`
	Integrity       float64 `yaml:"integrity"`
	Availability    float64 `yaml:"availability"`
	Accountability  float64 `yaml:"accountability"`
	Financial       float64 `yaml:"financial"`
	Reputation      float64 `yaml:"reputation"`
	Compliance      float64 `yaml:"compliance"`
}

func (f FactorSet) values() []float64 {
	return []float64{
		f.ThreatAgent, f.Exploitability, f.Awareness, f.Detection,
		f.Confidentiality, f.Integrity, f.Availability, f.Accountability,
		f.Financial, f.Reputation, f.Compliance,
	}
}

// FactorsFor returns the factor row for a vulnerability type, falling back to
// the default row for types without a dedicated entry.
func (s ScoringConfig) FactorsFor(vulnType string) FactorSet {
	if f, ok := s.Factors[vulnType]; ok {
		return f
	}
	return s.Default
}

// CategoryRef is one taxonomy assignment in the taxonomy table.
type CategoryRef struct {
	Taxonomy   string            `yaml:"taxonomy"`
	Label      string            `yaml:"label"`
	Confidence domain.Confidence `yaml:"confidence"`
}

// Validate checks the configuration before any processing starts. A broken
// table here would silently corrupt every downstream score, so violations are
// fatal ConfigurationErrors.
func (c *Config) Validate() error {
	if c.Correlation.LineWindow < 0 {
		return &domain.ConfigurationError{
			Field: "correlation.line_window",
			Msg:   fmt.Sprintf("must be >= 0, got %d", c.Correlation.LineWindow),
		}
	}

	if err := validateFactorSet("scoring.default", c.Scoring.Default); err != nil {
		return err
	}
	for vulnType, f := range c.Scoring.Factors {
		if err := validateFactorSet("scoring.factors."+vulnType, f); err != nil {
			return err
		}
	}

	if len(c.Taxonomy) == 0 {
		return &domain.ConfigurationError{Field: "taxonomy", Msg: "table is empty"}
	}
	for vulnType, refs := range c.Taxonomy {
		if len(refs) == 0 {
			return &domain.ConfigurationError{
				Field: "taxonomy." + vulnType,
				Msg:   "no categories assigned",
			}
		}
		for _, ref := range refs {
			if ref.Taxonomy == "" || ref.Label == "" {
				return &domain.ConfigurationError{
					Field: "taxonomy." + vulnType,
					Msg:   "taxonomy and label are required",
				}
			}
			if ref.Confidence != "" && ref.Confidence != domain.ConfidenceConfirmed &&
				ref.Confidence != domain.ConfidenceLikely && ref.Confidence != domain.ConfidenceTentative {
				return &domain.ConfigurationError{
					Field: "taxonomy." + vulnType,
					Msg:   fmt.Sprintf("unknown confidence %q", ref.Confidence),
				}
			}
		}
	}

	for tool, m := range c.ConfidenceMappings {
		for native, conf := range m {
			if conf != domain.ConfidenceConfirmed && conf != domain.ConfidenceLikely && conf != domain.ConfidenceTentative {
				return &domain.ConfigurationError{
					Field: fmt.Sprintf("confidence_mappings.%s.%s", tool, native),
					Msg:   fmt.Sprintf("unknown confidence %q", conf),
				}
			}
		}
	}

	if c.Inputs.SASTDir == "" || c.Inputs.DASTDir == "" || c.Inputs.ManualDir == "" {
		return &domain.ConfigurationError{Field: "inputs", Msg: "all input subdirectories must be named"}
	}

	return nil
}

func validateFactorSet(field string, f FactorSet) error {
	for _, v := range f.values() {
		if v < 0 || v > 9 {
			return &domain.ConfigurationError{
				Field: field,
				Msg:   fmt.Sprintf("factor values must be within [0,9], got %v", v),
			}
		}
	}
	return nil
}
