// Package scorer computes OWASP risk-rating scores for finding groups.
// Scoring is a pure function of group content and the static factor tables,
// so a re-run over identical input produces identical scores.
package scorer

import (
	"math"

	"bytemomo/remora/internal/config"
	"bytemomo/remora/internal/domain"
)

type Scorer struct {
	cfg config.ScoringConfig
}

func New(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score rates one finding group. Likelihood is the average of the four OWASP
// likelihood factors, impact the average of the technical and business impact
// sub-factors, both on the 0-9 scale.
func (s *Scorer) Score(g domain.FindingGroup) domain.RiskScore {
	f := s.cfg.FactorsFor(g.VulnerabilityType)

	// Exploitability follows the strongest member confidence: a confirmed
	// finding is demonstrably exploitable, a tentative-only group less so.
	exploitability := f.Exploitability
	switch g.BestConfidence() {
	case domain.ConfidenceConfirmed:
		exploitability = clamp(exploitability + 1)
	case domain.ConfidenceTentative:
		exploitability = clamp(exploitability - 1)
	}

	// A human-validated finding counts as public knowledge: its likelihood
	// must never fall below that of an automatically flagged one.
	awareness := f.Awareness
	if g.HasConfirmedManual() && awareness < 9 {
		awareness = 9
	}

	likelihood := (f.ThreatAgent + exploitability + awareness + f.Detection) / 4
	impact := (f.Confidentiality + f.Integrity + f.Availability + f.Accountability +
		f.Financial + f.Reputation + f.Compliance) / 7

	return domain.RiskScore{
		LikelihoodScore: round2(likelihood),
		ImpactScore:     round2(impact),
		SeverityBand:    OverallBand(likelihood, impact),
	}
}

// factorBand is a coarse low/medium/high bucket of a 0-9 factor score,
// following the standard OWASP thresholds.
type factorBand int

const (
	bandLow factorBand = iota
	bandMedium
	bandHigh
)

func bandOf(score float64) factorBand {
	switch {
	case score < 3:
		return bandLow
	case score < 6:
		return bandMedium
	default:
		return bandHigh
	}
}

// severityMatrix is the fixed OWASP likelihood x impact lookup.
var severityMatrix = [3][3]domain.SeverityBand{
	//                 impact: low            medium             high
	bandLow:    {domain.BandInfo, domain.BandLow, domain.BandMedium},
	bandMedium: {domain.BandLow, domain.BandMedium, domain.BandHigh},
	bandHigh:   {domain.BandMedium, domain.BandHigh, domain.BandCritical},
}

// OverallBand reads the severity band for a likelihood/impact pair off the
// OWASP matrix.
func OverallBand(likelihood, impact float64) domain.SeverityBand {
	return severityMatrix[bandOf(likelihood)][bandOf(impact)]
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(9, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
