package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// SourceTool identifies the class of tool that produced a finding.
type SourceTool string

const (
	ToolSAST   SourceTool = "sast"
	ToolDAST   SourceTool = "dast"
	ToolManual SourceTool = "manual"
)

// Confidence expresses how certain a source is that a finding is real.
type Confidence string

const (
	ConfidenceConfirmed Confidence = "confirmed"
	ConfidenceLikely    Confidence = "likely"
	ConfidenceTentative Confidence = "tentative"
)

var confidenceRank = map[Confidence]int{
	ConfidenceTentative: 0,
	ConfidenceLikely:    1,
	ConfidenceConfirmed: 2,
}

// Rank orders confidence levels; higher means more certain.
func (c Confidence) Rank() int { return confidenceRank[c] }

// SeverityBand is the overall risk band read off the likelihood/impact matrix.
type SeverityBand string

const (
	BandInfo     SeverityBand = "info"
	BandLow      SeverityBand = "low"
	BandMedium   SeverityBand = "medium"
	BandHigh     SeverityBand = "high"
	BandCritical SeverityBand = "critical"
)

var bandRank = map[SeverityBand]int{
	BandInfo:     0,
	BandLow:      1,
	BandMedium:   2,
	BandHigh:     3,
	BandCritical: 4,
}

// Rank orders severity bands; higher means worse.
func (b SeverityBand) Rank() int { return bandRank[b] }

// RawFinding is the tool-agnostic record an adapter produces from one native
// finding. Fields still carry the tool's own vocabulary; the normalizer maps
// them onto the canonical schema.
type RawFinding struct {
	SourceTool  SourceTool `json:"source_tool"`
	ToolName    string     `json:"tool_name"`
	SourceID    string     `json:"source_id"` // tool-native finding ID, if any
	Type        string     `json:"type"`      // tool-native vulnerability label
	Severity    string     `json:"severity"`  // tool-native severity label
	Confidence  string     `json:"confidence"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Evidence    string     `json:"evidence"`
	FilePath    string     `json:"file_path,omitempty"`
	LineNumber  int        `json:"line_number,omitempty"`
	URL         string     `json:"url,omitempty"`
	HTTPMethod  string     `json:"http_method,omitempty"`
	SourceFile  string     `json:"source_file"`  // input file this came from
	SourceIndex int        `json:"source_index"` // position within the input file
	IngestedAt  time.Time  `json:"ingested_at"`
}

// Location is the canonical place a finding points at. Either a file position
// (SAST-style) or an endpoint (DAST-style); both may be absent.
type Location struct {
	FilePath   string `json:"file_path,omitempty"`
	LineNumber int    `json:"line_number,omitempty"`
	URL        string `json:"url,omitempty"`
	HTTPMethod string `json:"http_method,omitempty"`
}

func (l Location) HasFileLocation() bool { return l.FilePath != "" }

func (l Location) HasURLLocation() bool { return l.URL != "" }

// Key renders the location in a stable textual form for hashing.
func (l Location) Key() string {
	return l.FilePath + "#" + strconv.Itoa(l.LineNumber) + "|" + l.HTTPMethod + " " + l.URL
}

func (l Location) String() string {
	switch {
	case l.HasFileLocation() && l.LineNumber > 0:
		return fmt.Sprintf("%s:%d", l.FilePath, l.LineNumber)
	case l.HasFileLocation():
		return l.FilePath
	case l.HasURLLocation() && l.HTTPMethod != "":
		return l.HTTPMethod + " " + l.URL
	case l.HasURLLocation():
		return l.URL
	default:
		return "(no location)"
	}
}

// NormalizedFinding is the canonical representation of one finding from one
// source. Immutable once built.
type NormalizedFinding struct {
	ID                string     `json:"id"`
	SourceTool        SourceTool `json:"source_tool"`
	ToolName          string     `json:"tool_name"`
	SourceIdentifier  string     `json:"source_identifier"`
	VulnerabilityType string     `json:"vulnerability_type"`
	Location          Location   `json:"location"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Evidence          string     `json:"evidence"`
	RawSeverity       string     `json:"raw_severity"`
	Confidence        Confidence `json:"confidence"`
}

// NewFindingID derives the content-hash identifier of a normalized finding.
// It is a pure function of the vulnerability type, the canonical location and
// the source tool, so re-ingesting identical raw input yields identical IDs.
func NewFindingID(vulnType string, loc Location, tool SourceTool) string {
	sum := sha256.Sum256([]byte(vulnType + "|" + loc.Key() + "|" + string(tool)))
	return hex.EncodeToString(sum[:16])
}

// TaggedEvidence is one member's evidence, labelled with where it came from.
type TaggedEvidence struct {
	SourceTool SourceTool `json:"source_tool"`
	ToolName   string     `json:"tool_name"`
	Evidence   string     `json:"evidence"`
}

// FindingGroup is a cluster of normalized findings believed to describe the
// same underlying vulnerability. Members are sorted by ID and the group ID is
// the smallest member ID, so groups are stable across runs.
type FindingGroup struct {
	GroupID           string              `json:"group_id"`
	VulnerabilityType string              `json:"vulnerability_type"`
	Members           []NormalizedFinding `json:"members"`
	MergedLocation    Location            `json:"merged_location"`
	MergedEvidence    []TaggedEvidence    `json:"merged_evidence"`
}

// BestConfidence returns the strongest confidence among the members.
func (g FindingGroup) BestConfidence() Confidence {
	best := ConfidenceTentative
	for _, m := range g.Members {
		if m.Confidence.Rank() > best.Rank() {
			best = m.Confidence
		}
	}
	return best
}

// HasConfirmedManual reports whether a human-validated member is present.
func (g FindingGroup) HasConfirmedManual() bool {
	for _, m := range g.Members {
		if m.SourceTool == ToolManual && m.Confidence == ConfidenceConfirmed {
			return true
		}
	}
	return false
}

// SourceTools returns the distinct source tools contributing to the group.
func (g FindingGroup) SourceTools() []SourceTool {
	seen := map[SourceTool]bool{}
	var out []SourceTool
	for _, m := range g.Members {
		if !seen[m.SourceTool] {
			seen[m.SourceTool] = true
			out = append(out, m.SourceTool)
		}
	}
	return out
}

// RiskScore is the OWASP likelihood/impact rating of one finding group.
type RiskScore struct {
	LikelihoodScore float64      `json:"likelihood_score"` // 0-9
	ImpactScore     float64      `json:"impact_score"`     // 0-9
	SeverityBand    SeverityBand `json:"severity_band"`
}

// Category is one taxonomy label assigned to a finding group.
type Category struct {
	Taxonomy   string     `json:"taxonomy"` // e.g. "owasp-top10", "rails-guide"
	Label      string     `json:"label"`    // e.g. "A03:Injection"
	Confidence Confidence `json:"confidence"`
}

// CategorizedFinding is the final output unit: a correlated group with its
// risk score and a non-empty set of taxonomy categories.
type CategorizedFinding struct {
	Group      FindingGroup `json:"group"`
	Risk       RiskScore    `json:"risk"`
	Categories []Category   `json:"categories"`
}

// RejectedFinding records a finding that failed normalization, kept for audit.
type RejectedFinding struct {
	SourceTool SourceTool `json:"source_tool"`
	ToolName   string     `json:"tool_name"`
	SourceFile string     `json:"source_file"`
	Title      string     `json:"title,omitempty"`
	Reason     string     `json:"reason"`
	Detail     string     `json:"detail,omitempty"`
}

// Summary aggregates counts over one pipeline run.
type Summary struct {
	SchemaVersion  string             `json:"schema_version"`
	GeneratedAt    time.Time          `json:"generated_at"`
	TotalGroups    int                `json:"total_groups"`
	TotalFindings  int                `json:"total_findings"`
	BySeverity     map[string]int     `json:"by_severity"`
	ByCategory     map[string]int     `json:"by_category"`
	BySourceTool   map[string]int     `json:"by_source_tool"`
	SourceCoverage map[string]float64 `json:"source_coverage"` // % of groups seen per tool
	RejectedCount  int                `json:"rejected_count"`
	ParseFailures  []string           `json:"parse_failures,omitempty"`
}
