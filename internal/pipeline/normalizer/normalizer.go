// Package normalizer maps tool-agnostic raw findings onto the canonical
// schema using the per-tool mapping tables from the configuration.
package normalizer

import (
	"strings"

	"bytemomo/remora/internal/config"
	"bytemomo/remora/internal/domain"
)

type Normalizer struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Normalize maps one raw finding to its canonical form. A finding with no
// file location, no URL and an empty title carries no discriminating signal
// and is rejected with a NormalizationError.
func (n *Normalizer) Normalize(raw domain.RawFinding) (domain.NormalizedFinding, error) {
	loc := domain.Location{
		FilePath:   CanonicalPath(raw.FilePath, n.cfg.RootPrefixes),
		LineNumber: raw.LineNumber,
		URL:        CanonicalURL(raw.URL),
		HTTPMethod: strings.ToUpper(strings.TrimSpace(raw.HTTPMethod)),
	}
	if !loc.HasFileLocation() {
		loc.LineNumber = 0
	}
	if !loc.HasURLLocation() {
		loc.HTTPMethod = ""
	}

	title := strings.TrimSpace(raw.Title)
	if !loc.HasFileLocation() && !loc.HasURLLocation() && title == "" {
		return domain.NormalizedFinding{}, &domain.NormalizationError{
			Reason:     domain.ReasonInsufficientSignal,
			SourceFile: raw.SourceFile,
			Detail:     "no location and no title",
		}
	}

	vulnType := n.mapType(raw)

	return domain.NormalizedFinding{
		ID:                domain.NewFindingID(vulnType, loc, raw.SourceTool),
		SourceTool:        raw.SourceTool,
		ToolName:          raw.ToolName,
		SourceIdentifier:  raw.SourceID,
		VulnerabilityType: vulnType,
		Location:          loc,
		Title:             title,
		Description:       strings.TrimSpace(raw.Description),
		Evidence:          strings.TrimSpace(raw.Evidence),
		RawSeverity:       strings.TrimSpace(raw.Severity),
		Confidence:        n.mapConfidence(raw),
	}, nil
}

// NormalizeAll normalizes a batch, splitting the output into accepted
// findings and rejected ones. Nothing is silently dropped.
func (n *Normalizer) NormalizeAll(raws []domain.RawFinding) ([]domain.NormalizedFinding, []domain.RejectedFinding) {
	var accepted []domain.NormalizedFinding
	var rejected []domain.RejectedFinding

	for _, raw := range raws {
		nf, err := n.Normalize(raw)
		if err != nil {
			rej := domain.RejectedFinding{
				SourceTool: raw.SourceTool,
				ToolName:   raw.ToolName,
				SourceFile: raw.SourceFile,
				Title:      strings.TrimSpace(raw.Title),
				Reason:     domain.ReasonInsufficientSignal,
			}
			if ne, ok := err.(*domain.NormalizationError); ok {
				rej.Reason = ne.Reason
				rej.Detail = ne.Detail
			}
			rejected = append(rejected, rej)
			continue
		}
		accepted = append(accepted, nf)
	}
	return accepted, rejected
}

// mapType resolves the tool-native vulnerability label through the per-tool
// mapping table. Labels already in the canonical vocabulary pass through;
// everything else becomes "unclassified" rather than being dropped.
func (n *Normalizer) mapType(raw domain.RawFinding) string {
	token := NormalizeToken(raw.Type)
	if token == "" {
		return config.TypeUnclassified
	}
	if mapped, ok := n.cfg.TypeMappings[raw.ToolName][token]; ok {
		return mapped
	}
	if config.CanonicalTypes[token] {
		return token
	}
	return config.TypeUnclassified
}

func (n *Normalizer) mapConfidence(raw domain.RawFinding) domain.Confidence {
	token := NormalizeToken(raw.Confidence)
	if mapped, ok := n.cfg.ConfidenceMappings[raw.ToolName][token]; ok {
		return mapped
	}
	if raw.SourceTool == domain.ToolManual {
		return domain.ConfidenceConfirmed
	}
	return domain.ConfidenceTentative
}
